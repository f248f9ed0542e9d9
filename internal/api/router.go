package api

import (
	"github.com/probtrack/probtrack/internal/auth"
	"github.com/probtrack/probtrack/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter creates and configures the Gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, authenticator auth.Authenticator) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db, authenticator)

	// Public ranking API.
	atcoder := r.Group("/atcoder-api/v3")
	{
		atcoder.GET("/rated_point_sum_ranking", h.getRatedPointSumRanking)
		atcoder.GET("/user/rated_point_sum_rank", h.getUserRatedPointSumRank)
	}

	internalAPI := r.Group("/internal-api")
	{
		// Login exchange and publicly readable contest views.
		internalAPI.GET("/authorize", h.authorize)
		internalAPI.GET("/contest/get/:id", h.getContest)
		internalAPI.GET("/contest/recent", h.getRecentContests)

		// Session-authenticated routes.
		authed := internalAPI.Group("/")
		authed.Use(AuthMiddleware(cfg.Auth.JWT.Secret))
		{
			authed.GET("/user/get", h.getUser)
			authed.POST("/user/update", h.updateUser)

			authed.POST("/contest/create", h.createContest)
			authed.POST("/contest/update", h.updateContest)
			authed.GET("/contest/my", h.getMyContests)
			authed.GET("/contest/joined", h.getJoinedContests)
			authed.POST("/contest/join", h.joinContest)
			authed.POST("/contest/leave", h.leaveContest)
			authed.POST("/contest/item/update", h.updateContestItems)
		}
	}

	return r
}
