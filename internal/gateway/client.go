package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yfdecor/storefront/internal/logger"
	"github.com/yfdecor/storefront/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrConfigInvalid   = errors.New("backend config invalid")
	ErrRequestFailed   = errors.New("backend request failed")
	ErrResponseInvalid = errors.New("backend response invalid")
	ErrSessionExpired  = errors.New("session expired")
)

const defaultTimeout = 15 * time.Second

// TokenSource 提供当前持久化的 bearer 令牌，缺失时返回空串。
type TokenSource interface {
	Token() string
}

// BackendError 后端失败的统一错误形态：优先携带后端给出的消息。
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// Config 请求网关配置
type Config struct {
	BaseURL   string
	APIPrefix string
	Timeout   time.Duration
}

// Client 请求网关：唯一的后端 HTTP 客户端。每个请求附加持久化令牌，
// 单次尝试、不重试，失败统一归一化为 BackendError。
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

// NewClient 创建请求网关
func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("%w: base_url is invalid", ErrConfigInvalid)
	}
	prefix := strings.TrimSpace(cfg.APIPrefix)
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:   base + strings.TrimRight(prefix, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
	}, nil
}

// Login 凭据登录
func (c *Client) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	return c.exchangeAuth(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register 注册新账号
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthPayload, error) {
	return c.exchangeAuth(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) exchangeAuth(ctx context.Context, path string, payload map[string]string) (*AuthPayload, error) {
	var result AuthPayload
	if err := c.do(ctx, http.MethodPost, path, payload, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.JWT) == "" || result.User == nil {
		return nil, fmt.Errorf("%w: missing jwt or user", ErrResponseInvalid)
	}
	return &result, nil
}

// Profile 获取当前用户资料
func (c *Client) Profile(ctx context.Context) (*models.SessionUser, error) {
	var user models.SessionUser
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrResponseInvalid)
	}
	return &user, nil
}

// Orders 获取当前用户订单列表
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder 创建订单，地址必须已在后端落库
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if req.UserID == 0 || req.AddressID == 0 {
		return nil, fmt.Errorf("%w: order request is invalid", ErrConfigInvalid)
	}
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
	}
	return &order, nil
}

// ListAddresses 获取地址列表
func (c *Client) ListAddresses(ctx context.Context) ([]Address, error) {
	var addresses []Address
	if err := c.do(ctx, http.MethodGet, "/addresses", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress 提交地址，要求响应携带可解析的地址 ID
func (c *Client) CreateAddress(ctx context.Context, address Address) (*Address, error) {
	var saved Address
	if err := c.do(ctx, http.MethodPost, "/addresses", address, &saved); err != nil {
		return nil, err
	}
	if saved.ID == 0 {
		return nil, fmt.Errorf("%w: missing address id", ErrResponseInvalid)
	}
	return &saved, nil
}

// UpdateAddress 更新地址
func (c *Client) UpdateAddress(ctx context.Context, address Address) (*Address, error) {
	if address.ID == 0 {
		return nil, fmt.Errorf("%w: address id is required", ErrConfigInvalid)
	}
	var saved Address
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/addresses/%d", address.ID), address, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteAddress 删除地址
func (c *Client) DeleteAddress(ctx context.Context, addressID int64) error {
	if addressID == 0 {
		return fmt.Errorf("%w: address id is required", ErrConfigInvalid)
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/addresses/%d", addressID), nil, nil)
}

// Categories 获取分类列表
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Products 获取商品列表，category 为空时返回全部
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	path := "/products"
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		path += "?category=" + url.QueryEscape(trimmed)
	}
	var products []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Wishlist 获取心愿单
func (c *Client) Wishlist(ctx context.Context) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddWishlistItem 加入心愿单
func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return fmt.Errorf("%w: product id is required", ErrConfigInvalid)
	}
	return c.do(ctx, http.MethodPost, "/wishlist", map[string]string{"productId": productID}, nil)
}

// RemoveWishlistItem 移出心愿单
func (c *Client) RemoveWishlistItem(ctx context.Context, itemID int64) error {
	if itemID == 0 {
		return fmt.Errorf("%w: wishlist item id is required", ErrConfigInvalid)
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/%d", itemID), nil, nil)
}

// do 执行一次后端请求：附加令牌、归一化失败、在边界严格解码。
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token := strings.TrimSpace(c.tokens.Token())
		if token != "" {
			if tokenExpired(token) {
				return ErrSessionExpired
			}
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Errorw("backend_request_failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Errorw("backend_read_failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		backendErr := &BackendError{
			StatusCode: resp.StatusCode,
			Message:    extractBackendMessage(respBody),
		}
		logger.Errorw("backend_error_response",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", backendErr.Message,
		)
		return backendErr
	}

	if out == nil {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(respBody))
	if err := decoder.Decode(out); err != nil {
		logger.Errorw("backend_decode_failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return nil
}

// extractBackendMessage 取后端给出的错误消息，缺失时退回通用描述。
func extractBackendMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}
	return "unknown error"
}

// tokenExpired 本地检查令牌是否已过期。签名密钥属于后端，这里只读取
// exp 声明；无法解析的令牌按不透明凭据原样透传。
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
