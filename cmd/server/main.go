package main

import (
	"os"
	"syscall"

	"github.com/yfdecor/storefront/internal/app"
	"github.com/yfdecor/storefront/internal/config"
	"github.com/yfdecor/storefront/internal/logger"
	"github.com/yfdecor/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 初始化本地存储（购物车 / 会话）
	if err := models.InitDB(cfg.Store.Driver, cfg.Store.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Store.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Store.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Store.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Store.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("本地存储初始化失败: %v", err)
	}

	// 自动迁移本地存储表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("本地存储迁移失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}
