package storefront

import (
	"github.com/yfdecor/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类列表（读缓存）
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetProducts 获取商品列表（读缓存），支持 ?category= 过滤
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.Catalog.Products(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"products": products})
}
