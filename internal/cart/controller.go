package cart

import (
	"strings"
	"sync"

	"github.com/yfdecor/storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductSnapshot 加入购物车时采集的商品展示快照
type ProductSnapshot struct {
	ProductID     string       `json:"product_id"`
	Name          string       `json:"name"`
	UnitPrice     models.Money `json:"unit_price"`
	ImageRef      string       `json:"image_ref"`
	CategoryLabel string       `json:"category_label"`
}

// Totals 购物车汇总，每次读取重新计算
type Totals struct {
	ItemCount  int          `json:"item_count"`
	TotalPrice models.Money `json:"total_price"`
}

// Controller 购物车控制器：持有当前会话的行项列表（插入序即展示序），
// 每个商品至多一行、数量恒 >=1。每次变更同步重写本地存储，
// 因此购物车独立于登录状态、跨重启存活。
type Controller struct {
	mu    sync.Mutex
	db    *gorm.DB
	lines []models.CartLine
}

// NewController 创建控制器并恢复已持久化的购物车
func NewController(db *gorm.DB) (*Controller, error) {
	c := &Controller{db: db}
	if err := db.Order("position asc").Find(&c.lines).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem 加入商品：已存在则累加数量，否则追加新行。数量下限为 1。
func (c *Controller) AddItem(product ProductSnapshot, quantity int) error {
	if strings.TrimSpace(product.ProductID) == "" {
		return nil
	}
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == product.ProductID {
			c.lines[i].Quantity += quantity
			return c.persist()
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ProductID:     product.ProductID,
		Name:          product.Name,
		UnitPrice:     product.UnitPrice,
		ImageRef:      product.ImageRef,
		CategoryLabel: product.CategoryLabel,
		Quantity:      quantity,
	})
	return c.persist()
}

// RemoveItem 删除行项，商品不存在时不算错误
func (c *Controller) RemoveItem(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(productID)
}

// SetQuantity 替换数量。newQuantity <= 0 等价于删除该行。
func (c *Controller) SetQuantity(productID string, newQuantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if newQuantity <= 0 {
		return c.removeLocked(productID)
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = newQuantity
			return c.persist()
		}
	}
	return nil
}

// Clear 无条件清空购物车
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return c.persist()
}

// Items 返回行项副本（插入序）
func (c *Controller) Items() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLine(nil), c.lines...)
}

// IsEmpty 购物车是否为空
func (c *Controller) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Totals 派生汇总：从当前状态重新计算，从不缓存
func (c *Controller) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	total := decimal.Zero
	for _, line := range c.lines {
		count += line.Quantity
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return Totals{
		ItemCount:  count,
		TotalPrice: models.NewMoneyFromDecimal(total),
	}
}

func (c *Controller) removeLocked(productID string) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

// persist 同步重写整个购物车。调用方必须持有锁。
func (c *Controller) persist() error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		for i := range c.lines {
			line := c.lines[i]
			line.ID = 0
			line.Position = i
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
