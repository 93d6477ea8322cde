package storefront

import (
	"errors"

	"github.com/yfdecor/storefront/internal/auth"
	"github.com/yfdecor/storefront/internal/checkout"
	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/http/response"
	"github.com/yfdecor/storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

// respondError 将各层错误映射为统一响应。后端给出的消息原样透出，
// 会话过期时顺带登出，其他情况退回通用描述。
func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *checkout.ValidationError
	var backendErr *gateway.BackendError

	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, validationErr.Error())
	case errors.Is(err, checkout.ErrCartEmpty):
		response.BadRequest(c, "cart is empty")
	case errors.Is(err, checkout.ErrNotSignedIn):
		response.ErrorWithData(c, response.CodeUnauthorized, "please sign in to proceed to checkout", gin.H{
			"redirect": "/login?redirect=checkout",
		})
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		response.Error(c, response.CodeConflict, "checkout already in progress")
	case errors.Is(err, gateway.ErrSessionExpired):
		h.Auth.SignOut()
		response.Unauthorized(c, "session expired, please sign in again")
	case errors.Is(err, auth.ErrCredentialsRequired), errors.Is(err, auth.ErrNameRequired):
		response.BadRequest(c, err.Error())
	case errors.As(err, &backendErr):
		code := response.CodeBadGateway
		if backendErr.StatusCode == 401 || backendErr.StatusCode == 403 {
			code = response.CodeUnauthorized
		}
		response.Error(c, code, backendErr.Message)
	case errors.Is(err, gateway.ErrResponseInvalid):
		response.Error(c, response.CodeBadGateway, "unexpected response from backend")
	case errors.Is(err, gateway.ErrRequestFailed):
		response.Error(c, response.CodeBadGateway, "backend is unreachable")
	default:
		logger.Errorw("storefront_internal_error", "error", err)
		response.Error(c, response.CodeInternal, "internal error")
	}
}
