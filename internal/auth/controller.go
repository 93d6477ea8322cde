package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/logger"
	"github.com/yfdecor/storefront/internal/models"
	"github.com/yfdecor/storefront/internal/session"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrNameRequired        = errors.New("name is required")
)

// Observer 会话变更回调，登出时收到 nil。
type Observer func(*models.SessionUser)

// Controller 认证会话控制器：内存 user 值的唯一持有者，负责保持
// 持久化会话与内存状态一致。状态只有两种：匿名 / 已认证。
type Controller struct {
	mu        sync.RWMutex
	gateway   *gateway.Client
	store     *session.Store
	user      *models.SessionUser
	observers []Observer
}

// NewController 创建控制器并从持久化存储恢复初始状态。
// 记录缺失、损坏或令牌缺失都按匿名处理，残留的半套会话会被清除。
func NewController(gw *gateway.Client, store *session.Store) *Controller {
	c := &Controller{gateway: gw, store: store}

	user, err := store.LoadUser()
	if err != nil {
		logger.Warnw("session_rehydrate_failed", "error", err)
		return c
	}
	if user == nil {
		// 只剩 jwt 的半套会话同样清除，否则网关会带着孤儿令牌出门
		if strings.TrimSpace(store.Token()) != "" {
			if err := store.Clear(); err != nil {
				logger.Warnw("session_clear_failed", "error", err)
			}
		}
		return c
	}
	// 令牌存在是“已认证”的充要条件
	if strings.TrimSpace(store.Token()) == "" {
		if err := store.Clear(); err != nil {
			logger.Warnw("session_clear_failed", "error", err)
		}
		return c
	}
	c.user = user
	return c
}

// CurrentUser 返回当前会话用户，匿名时为 nil
func (c *Controller) CurrentUser() *models.SessionUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// IsAuthenticated 当前是否已认证
func (c *Controller) IsAuthenticated() bool {
	return c.CurrentUser() != nil
}

// Subscribe 订阅会话状态变更。组件应响应变更而不是轮询。
func (c *Controller) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// SignIn 凭据登录。失败时保持匿名并返回错误值，绝不向上抛出异常。
func (c *Controller) SignIn(ctx context.Context, email, password string) (*models.SessionUser, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	payload, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return c.establish(payload)
}

// SignUp 注册并登录，契约与 SignIn 相同
func (c *Controller) SignUp(ctx context.Context, name, email, password string) (*models.SessionUser, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	payload, err := c.gateway.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return c.establish(payload)
}

// SignOut 无条件清除持久化会话并回到匿名态，总是成功。
func (c *Controller) SignOut() {
	if err := c.store.Clear(); err != nil {
		logger.Warnw("session_clear_failed", "error", err)
	}
	c.mu.Lock()
	c.user = nil
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(nil)
	}
}

func (c *Controller) establish(payload *gateway.AuthPayload) (*models.SessionUser, error) {
	if err := c.store.SaveSession(payload.JWT, payload.User); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.user = payload.User
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(payload.User)
	}
	logger.Infow("session_established", "user_id", payload.User.ID)
	return payload.User, nil
}
