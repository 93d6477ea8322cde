package storefront

import (
	"github.com/yfdecor/storefront/internal/http/response"
	"github.com/yfdecor/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// requireUser 要求已认证会话，匿名时返回 401 并终止处理
func (h *Handler) requireUser(c *gin.Context) (*models.SessionUser, bool) {
	user := h.Auth.CurrentUser()
	if user == nil {
		response.Unauthorized(c, "sign in required")
		return nil, false
	}
	return user, true
}
