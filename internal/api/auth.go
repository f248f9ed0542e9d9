package api

import (
	"net/http"

	"github.com/probtrack/probtrack/internal/auth"
	"github.com/probtrack/probtrack/internal/database"
	"github.com/probtrack/probtrack/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// authorize performs the one-time login exchange: code -> provider token ->
// identity, upserts the internal user and issues the session cookie. This
// is the only place the OAuth provider is contacted.
func (h *Handler) authorize(c *gin.Context) {
	code := c.Query("code")
	ctx := c.Request.Context()

	token, err := h.auth.GetToken(ctx, code)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, err)
		return
	}

	ghUser, err := h.auth.GetUserID(ctx, token)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, err)
		return
	}

	user, err := database.GetOrCreateUser(h.db.WithContext(ctx), ghUser.InternalID())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	sessionToken, err := auth.GenerateSessionToken(user.ID, h.cfg.Auth.JWT.Secret, h.cfg.Auth.JWT.ExpireHours)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	zap.S().Infof("user %s logged in", user.ID)
	c.SetCookie(sessionCookie, sessionToken, h.cfg.Auth.JWT.ExpireHours*3600, "/", "", false, true)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) getUser(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db.WithContext(c.Request.Context()), userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// updateUser links the caller's judge-site handle.
func (h *Handler) updateUser(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		AtCoderUserID string `json:"atcoder_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())
	if err := database.UpdateAtCoderUserID(db, userID, req.AtCoderUserID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	user, err := database.GetUserByID(db, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
