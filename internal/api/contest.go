package api

import (
	"net/http"

	"github.com/probtrack/probtrack/internal/contest"
	"github.com/probtrack/probtrack/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// contestParams is the mutable part of a contest request body. IsPublic is
// a pointer on purpose: omitting it means public, on update as well as on
// create.
type contestParams struct {
	Title            string  `json:"title"`
	Memo             string  `json:"memo"`
	StartEpochSecond int64   `json:"start_epoch_second"`
	DurationSecond   int64   `json:"duration_second"`
	PenaltySecond    int64   `json:"penalty_second"`
	Mode             *string `json:"mode"`
	IsPublic         *bool   `json:"is_public"`
}

func (p contestParams) params() contest.Params {
	return contest.Params{
		Title:            p.Title,
		Memo:             p.Memo,
		StartEpochSecond: p.StartEpochSecond,
		DurationSecond:   p.DurationSecond,
		PenaltySecond:    p.PenaltySecond,
		Mode:             p.Mode,
		IsPublic:         p.IsPublic,
	}
}

func (h *Handler) createContest(c *gin.Context) {
	userID := c.GetString("userID")

	var req contestParams
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	id, err := contest.Create(h.db.WithContext(c.Request.Context()), userID, req.params())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contest_id": id})
}

func (h *Handler) updateContest(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		ID string `json:"id" binding:"required"`
		contestParams
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if err := contest.Update(h.db.WithContext(c.Request.Context()), userID, req.ID, req.params()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contest_id": req.ID})
}

func (h *Handler) getContest(c *gin.Context) {
	detail, err := contest.Get(h.db.WithContext(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getMyContests(c *gin.Context) {
	userID := c.GetString("userID")
	contests, err := contest.ListOwned(h.db.WithContext(c.Request.Context()), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

func (h *Handler) getJoinedContests(c *gin.Context) {
	userID := c.GetString("userID")
	contests, err := contest.ListJoined(h.db.WithContext(c.Request.Context()), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

func (h *Handler) getRecentContests(c *gin.Context) {
	contests, err := contest.ListRecent(h.db.WithContext(c.Request.Context()))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

func (h *Handler) joinContest(c *gin.Context) {
	h.membership(c, contest.Join)
}

func (h *Handler) leaveContest(c *gin.Context) {
	h.membership(c, contest.Leave)
}

func (h *Handler) membership(c *gin.Context, op func(db *gorm.DB, userID, contestID string) error) {
	userID := c.GetString("userID")

	var req struct {
		ContestID string `json:"contest_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if err := op(h.db.WithContext(c.Request.Context()), userID, req.ContestID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contest_id": req.ContestID})
}

func (h *Handler) updateContestItems(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		ContestID string `json:"contest_id" binding:"required"`
		Problems  []struct {
			ID    string `json:"id" binding:"required"`
			Point *int64 `json:"point"`
			Order *int64 `json:"order"`
		} `json:"problems"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	items := make([]contest.Item, 0, len(req.Problems))
	for _, p := range req.Problems {
		items = append(items, contest.Item{ProblemID: p.ID, Point: p.Point, Order: p.Order})
	}

	if err := contest.UpdateItems(h.db.WithContext(c.Request.Context()), userID, req.ContestID, items); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contest_id": req.ContestID})
}
