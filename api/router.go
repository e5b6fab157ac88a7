package api

import (
	"time"

	"github.com/connectsphere/backend/api/handlers"
	"github.com/connectsphere/backend/api/middleware"
	"github.com/connectsphere/backend/configs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter 设置API路由
func SetupRouter(router *gin.Engine, cfg *configs.Config) {
	origins := cfg.Server.ClientOrigin
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestID())

	// 公共API
	public := router.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
	}

	// 需要认证的API
	authorized := router.Group("/api")
	authorized.Use(middleware.Auth())
	{
		// 用户与档案
		authorized.GET("/user", handlers.GetCurrentUser)
		authorized.POST("/auth/logout", handlers.Logout)
		authorized.GET("/profile", handlers.GetProfile)
		authorized.PUT("/profile", handlers.UpdateProfile)

		// 月度匹配参与开关
		authorized.POST("/matching/opt-in", handlers.OptIn)
		authorized.POST("/matching/opt-out", handlers.OptOut)

		// 匹配结果
		authorized.GET("/matches", handlers.ListMatches)
		authorized.POST("/matches/:id/accept", handlers.AcceptMatch)
		authorized.POST("/matches/:id/decline", handlers.DeclineMatch)

		// 会议
		authorized.POST("/meetings", handlers.CreateMeeting)
		authorized.GET("/meetings", handlers.ListMeetings)
		authorized.PATCH("/meetings/:id", handlers.RescheduleMeeting)
		authorized.POST("/meetings/:id/cancel", handlers.CancelMeeting)
	}

	// 管理端API
	admin := router.Group("/api/admin")
	admin.Use(middleware.Auth(), middleware.RequireAdmin())
	{
		admin.POST("/trigger-matching", handlers.TriggerMatching)
		admin.GET("/score-cache", handlers.ScoreCacheStats)
		admin.GET("/users", handlers.ListUsers)
	}
}
