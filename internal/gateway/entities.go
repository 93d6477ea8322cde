package gateway

import (
	"github.com/yfdecor/storefront/internal/models"
)

// AuthPayload 登录/注册返回
type AuthPayload struct {
	JWT  string              `json:"jwt"`
	User *models.SessionUser `json:"user"`
}

// Address 收货地址（后端持有，本地仅草稿/镜像）
type Address struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zipCode"`
	IsDefault    bool   `json:"isDefault"`
}

// OrderRequest 下单请求：地址必须已在后端落库
type OrderRequest struct {
	UserID    int64 `json:"userId"`
	AddressID int64 `json:"addressId"`
}

// OrderItem 订单行项（仅展示）
type OrderItem struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"unitPrice"`
	Quantity  int          `json:"quantity"`
}

// 订单状态（仅展示）
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order 订单结果
type Order struct {
	ID             int64        `json:"id"`
	OrderNumber    string       `json:"orderNumber"`
	TotalAmount    models.Money `json:"totalAmount"`
	DeliveryCharge models.Money `json:"deliveryCharge"`
	Status         string       `json:"status"`
	Items          []OrderItem  `json:"items"`
}

// Category 商品分类
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// Product 商品
type Product struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       models.Money `json:"price"`
	Image       string       `json:"image"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
}

// WishlistItem 心愿单项
type WishlistItem struct {
	ID      int64   `json:"id"`
	Product Product `json:"product"`
}
