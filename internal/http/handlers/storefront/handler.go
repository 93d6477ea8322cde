package storefront

import (
	"github.com/yfdecor/storefront/internal/auth"
	"github.com/yfdecor/storefront/internal/cart"
	"github.com/yfdecor/storefront/internal/catalog"
	"github.com/yfdecor/storefront/internal/checkout"
	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/provider"
)

// Handler 店面接口处理器
type Handler struct {
	Auth     *auth.Controller
	Cart     *cart.Controller
	Checkout *checkout.Orchestrator
	Catalog  *catalog.Service
	Gateway  *gateway.Client
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{
		Auth:     c.AuthController,
		Cart:     c.CartController,
		Checkout: c.CheckoutOrchestrator,
		Catalog:  c.CatalogService,
		Gateway:  c.Gateway,
	}
}
