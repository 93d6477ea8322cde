package storefront

import (
	"strconv"
	"strings"

	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 账户页数据均为后端所有，这里只做镜像转发供展示。

// GetProfile 获取用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	profile, err := h.Gateway.Profile(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"profile": profile})
}

// GetOrders 获取订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	orders, err := h.Gateway.Orders(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// ListAddresses 获取地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	addresses, err := h.Gateway.ListAddresses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"addresses": addresses})
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	var address gateway.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		response.BadRequest(c, "address payload is invalid")
		return
	}
	address.UserID = user.ID
	saved, err := h.Gateway.CreateAddress(c.Request.Context(), address)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"address": saved})
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(c, "address_id")
	if !ok {
		return
	}
	var address gateway.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		response.BadRequest(c, "address payload is invalid")
		return
	}
	address.ID = addressID
	address.UserID = user.ID
	saved, err := h.Gateway.UpdateAddress(c.Request.Context(), address)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"address": saved})
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	addressID, ok := parseIDParam(c, "address_id")
	if !ok {
		return
	}
	if err := h.Gateway.DeleteAddress(c.Request.Context(), addressID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	items, err := h.Gateway.Wishlist(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem 加入心愿单
func (h *Handler) AddWishlistItem(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "product id is required")
		return
	}
	if err := h.Gateway.AddWishlistItem(c.Request.Context(), req.ProductID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"added": true})
}

// RemoveWishlistItem 移出心愿单
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.Gateway.RemoveWishlistItem(c.Request.Context(), itemID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, name+" is invalid")
		return 0, false
	}
	return id, true
}
