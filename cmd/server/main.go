package main

import (
	"log"

	"github.com/arcanalog/internal/config"
	"github.com/arcanalog/internal/db"
	"github.com/arcanalog/internal/handler"
	"github.com/arcanalog/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时静默跳过，环境变量仍然生效
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 首次启动时按环境变量引导根账号
	if err := db.EnsureUser(cfg.RootUserName, cfg.RootUserPassword); err != nil {
		log.Fatalf("failed to ensure root user: %v", err)
	}

	api, err := handler.NewAPI(db.DB, cfg.StatsCacheSize)
	if err != nil {
		log.Fatalf("failed to construct handlers: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
