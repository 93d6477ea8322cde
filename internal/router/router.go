package router

import (
	"fmt"
	"strings"

	"github.com/yfdecor/storefront/internal/cache"
	"github.com/yfdecor/storefront/internal/config"
	storefronthandlers "github.com/yfdecor/storefront/internal/http/handlers/storefront"
	"github.com/yfdecor/storefront/internal/logger"
	"github.com/yfdecor/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := storefronthandlers.New(c)

	cachePrefix := strings.TrimSpace(cfg.Cache.Prefix)
	if cachePrefix == "" {
		cachePrefix = "yf"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", cachePrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	redisClient := cache.Client()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), handler.Login)
			authGroup.POST("/register", RateLimitMiddleware(redisClient, loginRule, KeyByIP), handler.Register)
			authGroup.POST("/logout", handler.Logout)
			authGroup.GET("/me", handler.Me)
		}

		// 购物车（独立于登录状态）
		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", handler.GetCart)
			cartGroup.POST("", handler.AddCartItem)
			cartGroup.DELETE("", handler.ClearCart)
			cartGroup.GET("/totals", handler.GetCartTotals)
			cartGroup.PUT("/items/:product_id", handler.SetCartItemQuantity)
			cartGroup.DELETE("/items/:product_id", handler.DeleteCartItem)
		}

		// 结算
		apiV1.POST("/checkout", handler.PlaceOrder)
		apiV1.GET("/checkout/status", handler.CheckoutStatus)

		// 目录（读缓存）
		catalogGroup := apiV1.Group("/catalog")
		{
			catalogGroup.GET("/categories", handler.GetCategories)
			catalogGroup.GET("/products", handler.GetProducts)
		}

		// 账户镜像（后端所有，仅展示）
		accountGroup := apiV1.Group("/account")
		{
			accountGroup.GET("/profile", handler.GetProfile)
			accountGroup.GET("/orders", handler.GetOrders)
			accountGroup.GET("/addresses", handler.ListAddresses)
			accountGroup.POST("/addresses", handler.CreateAddress)
			accountGroup.PUT("/addresses/:address_id", handler.UpdateAddress)
			accountGroup.DELETE("/addresses/:address_id", handler.DeleteAddress)
			accountGroup.GET("/wishlist", handler.GetWishlist)
			accountGroup.POST("/wishlist", handler.AddWishlistItem)
			accountGroup.DELETE("/wishlist/:item_id", handler.RemoveWishlistItem)
		}
	}

	return r
}
