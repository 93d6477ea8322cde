package storefront

import (
	"github.com/yfdecor/storefront/internal/checkout"
	"github.com/yfdecor/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PlaceOrder 执行结算：校验表单、提交地址、创建订单。
// 成功后购物车已被清空，响应携带订单结果供确认页展示。
func (h *Handler) PlaceOrder(c *gin.Context) {
	var form checkout.ShippingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "shipping form is required")
		return
	}
	order, err := h.Checkout.Run(c.Request.Context(), form)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "order placed", gin.H{"order": order})
}

// CheckoutStatus 返回结算状态机的当前状态
func (h *Handler) CheckoutStatus(c *gin.Context) {
	state, failReason := h.Checkout.Status()
	response.Success(c, gin.H{
		"state":       state,
		"fail_reason": failReason,
	})
}
