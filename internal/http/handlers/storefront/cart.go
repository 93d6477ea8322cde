package storefront

import (
	"strings"

	"github.com/yfdecor/storefront/internal/cart"
	"github.com/yfdecor/storefront/internal/http/response"
	"github.com/yfdecor/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求：携带加入时的商品展示快照
type AddCartItemRequest struct {
	ProductID     string       `json:"product_id" binding:"required"`
	Name          string       `json:"name" binding:"required"`
	UnitPrice     models.Money `json:"unit_price"`
	ImageRef      string       `json:"image_ref"`
	CategoryLabel string       `json:"category_label"`
	Quantity      int          `json:"quantity"`
}

// SetQuantityRequest 数量更新请求
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车与汇总
func (h *Handler) GetCart(c *gin.Context) {
	response.Success(c, gin.H{
		"items":  h.Cart.Items(),
		"totals": h.Cart.Totals(),
	})
}

// AddCartItem 加入商品：已存在则累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "product snapshot is required")
		return
	}
	if req.UnitPrice.IsNegative() {
		response.BadRequest(c, "unit price must not be negative")
		return
	}
	if err := h.Cart.AddItem(cart.ProductSnapshot{
		ProductID:     req.ProductID,
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		ImageRef:      req.ImageRef,
		CategoryLabel: req.CategoryLabel,
	}, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"items":  h.Cart.Items(),
		"totals": h.Cart.Totals(),
	})
}

// SetCartItemQuantity 替换数量，0 及以下等价于删除
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		response.BadRequest(c, "product id is required")
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "quantity is required")
		return
	}
	if err := h.Cart.SetQuantity(productID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"items":  h.Cart.Items(),
		"totals": h.Cart.Totals(),
	})
}

// DeleteCartItem 删除行项，不存在时同样返回成功
func (h *Handler) DeleteCartItem(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		response.BadRequest(c, "product id is required")
		return
	}
	if err := h.Cart.RemoveItem(productID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Cart.Clear(); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// GetCartTotals 获取派生汇总
func (h *Handler) GetCartTotals(c *gin.Context) {
	response.Success(c, h.Cart.Totals())
}
