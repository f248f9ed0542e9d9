package api

import (
	"net/http"
	"strconv"

	"github.com/probtrack/probtrack/internal/ranking"
	"github.com/probtrack/probtrack/internal/util"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getRatedPointSumRanking(c *gin.Context) {
	from, err := strconv.ParseInt(c.Query("from"), 10, 64)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid 'from' parameter")
		return
	}
	to, err := strconv.ParseInt(c.Query("to"), 10, 64)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid 'to' parameter")
		return
	}

	entries, err := ranking.RankRange(h.db.WithContext(c.Request.Context()), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) getUserRatedPointSumRank(c *gin.Context) {
	user := c.Query("user")

	rank, err := ranking.RankOfUser(h.db.WithContext(c.Request.Context()), user)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rank)
}
