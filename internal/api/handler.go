package api

import (
	"errors"
	"net/http"

	"github.com/probtrack/probtrack/internal/auth"
	"github.com/probtrack/probtrack/internal/config"
	"github.com/probtrack/probtrack/internal/contest"
	"github.com/probtrack/probtrack/internal/ranking"
	"github.com/probtrack/probtrack/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the API handlers.
type Handler struct {
	cfg  *config.Config
	db   *gorm.DB
	auth auth.Authenticator
}

// NewHandler creates a new handler with its dependencies. The Authenticator
// is injected so tests can run the whole router against a mock provider.
func NewHandler(cfg *config.Config, db *gorm.DB, authenticator auth.Authenticator) *Handler {
	return &Handler{
		cfg:  cfg,
		db:   db,
		auth: authenticator,
	}
}

// fail maps a core error to its boundary status code. Anything not in the
// client-facing taxonomy is a storage fault.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contest.ErrNotFound), errors.Is(err, ranking.ErrNotFound):
		util.Error(c, http.StatusNotFound, err)
	case errors.Is(err, contest.ErrForbidden):
		util.Error(c, http.StatusForbidden, err)
	case errors.Is(err, ranking.ErrInvalidRange):
		util.Error(c, http.StatusBadRequest, err)
	default:
		util.Error(c, http.StatusInternalServerError, err)
	}
}
