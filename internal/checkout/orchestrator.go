package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yfdecor/storefront/internal/auth"
	"github.com/yfdecor/storefront/internal/cart"
	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/logger"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrNotSignedIn      = errors.New("sign in required")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// 结算状态机的命名状态
const (
	StateIdle            = "idle"
	StateValidatingForm  = "validating_form"
	StateCreatingAddress = "creating_address"
	StateCreatingOrder   = "creating_order"
	StateSucceeded       = "succeeded"
	StateFailed          = "failed"
)

// ValidationError 表单校验失败：在任何网络调用之前拦截
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ShippingForm 收货地址表单
type ShippingForm struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

// Orchestrator 结算编排器：两步远端事务（建地址、再下单）的状态机。
// 地址提交严格先于下单；两步之间没有事务保证，失败不做补偿，
// 购物车保持原样供用户重试（孤儿地址是已知缺口）。
type Orchestrator struct {
	mu             sync.Mutex
	inFlight       bool
	state          string
	failReason     string
	gateway        *gateway.Client
	cart           *cart.Controller
	auth           *auth.Controller
	defaultCountry string
}

// NewOrchestrator 创建结算编排器
func NewOrchestrator(gw *gateway.Client, cartCtl *cart.Controller, authCtl *auth.Controller, defaultCountry string) *Orchestrator {
	return &Orchestrator{
		gateway:        gw,
		cart:           cartCtl,
		auth:           authCtl,
		defaultCountry: strings.TrimSpace(defaultCountry),
		state:          StateIdle,
	}
}

// Status 返回当前状态与最近一次失败原因
func (o *Orchestrator) Status() (state string, failReason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.failReason
}

// Run 执行结算。前置条件不满足（匿名 / 空购物车）时不进入状态机、
// 不发出任何网络调用。购物车内容在提交时刻快照，执行期间的并发
// 变更不影响在途请求。
func (o *Orchestrator) Run(ctx context.Context, form ShippingForm) (*gateway.Order, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	o.inFlight = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	user := o.auth.CurrentUser()
	if user == nil {
		return nil, ErrNotSignedIn
	}
	snapshot := o.cart.Items()
	if len(snapshot) == 0 {
		return nil, ErrCartEmpty
	}

	o.setState(StateValidatingForm, "")
	if err := validateForm(form); err != nil {
		o.setState(StateFailed, err.Error())
		return nil, err
	}

	o.setState(StateCreatingAddress, "")
	address := o.buildAddress(user.ID, form)
	saved, err := o.gateway.CreateAddress(ctx, address)
	if err != nil {
		o.setState(StateFailed, err.Error())
		logger.Errorw("checkout_address_failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	o.setState(StateCreatingOrder, "")
	order, err := o.gateway.CreateOrder(ctx, gateway.OrderRequest{
		UserID:    user.ID,
		AddressID: saved.ID,
	})
	if err != nil {
		// 地址可能已落库而订单未建：不做补偿，购物车原样保留
		o.setState(StateFailed, err.Error())
		logger.Errorw("checkout_order_failed",
			"user_id", user.ID,
			"address_id", saved.ID,
			"error", err,
		)
		return nil, err
	}

	// 订单确认后同步清空购物车，且只清一次
	if err := o.cart.Clear(); err != nil {
		logger.Warnw("checkout_cart_clear_failed", "order_id", order.ID, "error", err)
	}
	o.setState(StateSucceeded, "")
	logger.Infow("checkout_succeeded",
		"user_id", user.ID,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"items", len(snapshot),
	)
	return order, nil
}

func (o *Orchestrator) setState(state, failReason string) {
	o.mu.Lock()
	o.state = state
	o.failReason = failReason
	o.mu.Unlock()
}

func (o *Orchestrator) buildAddress(userID int64, form ShippingForm) gateway.Address {
	name := strings.TrimSpace(strings.TrimSpace(form.FirstName) + " " + strings.TrimSpace(form.LastName))
	country := strings.TrimSpace(form.Country)
	if country == "" {
		country = o.defaultCountry
	}
	return gateway.Address{
		UserID:       userID,
		Name:         name,
		Phone:        strings.TrimSpace(form.Phone),
		AddressLine1: strings.TrimSpace(form.AddressLine1),
		AddressLine2: strings.TrimSpace(form.AddressLine2),
		City:         strings.TrimSpace(form.City),
		State:        strings.TrimSpace(form.State),
		Country:      country,
		ZipCode:      strings.TrimSpace(form.ZipCode),
		IsDefault:    true,
	}
}

func validateForm(form ShippingForm) error {
	var missing []string
	if strings.TrimSpace(form.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(form.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(form.AddressLine1) == "" {
		missing = append(missing, "address_line1")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
