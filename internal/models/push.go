package models

import (
	"time"
)

// PushSubscription 浏览器推送订阅
// Endpoint 由推送服务下发，全局唯一；密钥对用于消息加密
type PushSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Endpoint  string    `gorm:"uniqueIndex;not null" json:"endpoint"`
	P256dh    string    `gorm:"size:200" json:"p256dh"`
	Auth      string    `gorm:"size:100" json:"auth"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
