package models

import (
	"time"
)

// CartLine 购物车行项。商品名称、单价等为加入时的展示快照。
type CartLine struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                  // 主键
	ProductID     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"product_id"` // 商品ID
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`                // 商品名称快照
	UnitPrice     Money     `gorm:"type:decimal(12,2);not null" json:"unit_price"`         // 单价快照
	ImageRef      string    `gorm:"type:varchar(512)" json:"image_ref"`                    // 图片快照
	CategoryLabel string    `gorm:"type:varchar(128)" json:"category_label"`               // 分类标签快照
	Quantity      int       `gorm:"not null" json:"quantity"`                              // 数量（>=1）
	Position      int       `gorm:"not null;index" json:"-"`                               // 插入顺序
	CreatedAt     time.Time `json:"created_at"`                                            // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                            // 更新时间
}

// TableName 指定表名
func (CartLine) TableName() string {
	return "cart_lines"
}
