package models

import (
	"time"
)

// Favorite 收藏模型 - 用户收藏政客，同一对用户/政客只允许一条
type Favorite struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index;uniqueIndex:idx_user_politician" json:"user_id"`
	PoliticianID uint       `gorm:"not null;index;uniqueIndex:idx_user_politician" json:"politician_id"`
	Politician   Politician `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"politician"`
	CreatedAt    time.Time  `json:"created_at"`
}
