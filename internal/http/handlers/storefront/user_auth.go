package storefront

import (
	"github.com/yfdecor/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 凭据登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}
	user, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// Register 注册新账号并登录
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, email and password are required")
		return
	}
	user, err := h.Auth.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// Logout 登出，总是成功
func (h *Handler) Logout(c *gin.Context) {
	h.Auth.SignOut()
	response.Success(c, gin.H{"signed_out": true})
}

// Me 返回当前会话用户
func (h *Handler) Me(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"user": user})
}
