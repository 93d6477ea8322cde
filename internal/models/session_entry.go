package models

import (
	"time"
)

// SessionEntry 会话键值项（user / jwt），每个键只有单一写入方。
type SessionEntry struct {
	Key       string    `gorm:"type:varchar(32);primarykey" json:"key"` // 存储键
	Value     string    `gorm:"type:text;not null" json:"value"`        // 序列化内容
	UpdatedAt time.Time `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (SessionEntry) TableName() string {
	return "session_entries"
}
