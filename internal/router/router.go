package router

import (
	"github.com/arcanalog/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("arcanalog_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公开的分享视图，无需登录
	r.GET("/share/entries/:publicId", api.GetSharedEntry)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/login", api.Login)
		apiGroup.POST("/logout", api.Logout)

		// 需要认证的日志本路由
		journal := apiGroup.Group("/journal")
		journal.Use(handler.AuthRequired())
		{
			journal.GET("/entries", api.GetEntries)
			journal.POST("/entries", api.CreateEntry)
			journal.GET("/entries/:id", api.GetEntry)
			journal.PUT("/entries/:id", api.UpdateEntry)
			journal.DELETE("/entries/:id", api.DeleteEntry)
			journal.POST("/entries/:id/patterns", api.RecordEntryPatterns)

			journal.GET("/stats", api.GetJourneyStats)
			journal.GET("/pattern-alerts", api.GetPatternAlerts)

			journal.GET("/preferences/focus-areas", api.GetFocusAreas)
			journal.PUT("/preferences/focus-areas", api.UpdateFocusAreas)
		}
	}

	return r
}
