package provider

import (
	"time"

	"github.com/yfdecor/storefront/internal/auth"
	"github.com/yfdecor/storefront/internal/cache"
	"github.com/yfdecor/storefront/internal/cart"
	"github.com/yfdecor/storefront/internal/catalog"
	"github.com/yfdecor/storefront/internal/checkout"
	"github.com/yfdecor/storefront/internal/config"
	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/logger"
	"github.com/yfdecor/storefront/internal/models"
	"github.com/yfdecor/storefront/internal/session"
)

// Container 依赖注入容器。控制器在应用启动时构建一次并全程存活，
// 状态重置只通过显式的 Clear / SignOut。
type Container struct {
	Config *config.Config

	SessionStore         *session.Store
	Gateway              *gateway.Client
	AuthController       *auth.Controller
	CartController       *cart.Controller
	CheckoutOrchestrator *checkout.Orchestrator
	CatalogService       *catalog.Service
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cache.InitRedis(&cfg.Cache); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	sessionStore := session.NewStore(models.DB)

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL:   cfg.Backend.BaseURL,
		APIPrefix: cfg.Backend.APIPrefix,
		Timeout:   time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	}, sessionStore)
	if err != nil {
		return nil, err
	}

	cartController, err := cart.NewController(models.DB)
	if err != nil {
		return nil, err
	}

	authController := auth.NewController(gw, sessionStore)

	return &Container{
		Config:               cfg,
		SessionStore:         sessionStore,
		Gateway:              gw,
		AuthController:       authController,
		CartController:       cartController,
		CheckoutOrchestrator: checkout.NewOrchestrator(gw, cartController, authController, cfg.Checkout.DefaultCountry),
		CatalogService:       catalog.NewService(gw, time.Duration(cfg.Catalog.TTLSeconds)*time.Second),
	}, nil
}
