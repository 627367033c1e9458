package models

import (
	"time"
)

// InteractionType 互动事件类型
type InteractionType string

const (
	InteractionView       InteractionType = "view"
	InteractionSearch     InteractionType = "search"
	InteractionFavorite   InteractionType = "favorite"
	InteractionUnfavorite InteractionType = "unfavorite"
	InteractionShare      InteractionType = "share"
	InteractionCompare    InteractionType = "compare"
)

// ValidInteractionType 校验客户端上报的事件类型
func ValidInteractionType(t string) bool {
	switch InteractionType(t) {
	case InteractionView, InteractionSearch, InteractionFavorite,
		InteractionUnfavorite, InteractionShare, InteractionCompare:
		return true
	}
	return false
}

// Interaction 只追加的互动事件日志，驱动热度和推荐
// 未登录用户通过 SessionKey 归因
type Interaction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       *uint           `gorm:"index" json:"user_id"`
	SessionKey   string          `gorm:"size:36;index" json:"session_key"`
	PoliticianID *uint           `gorm:"index" json:"politician_id"`
	Type         InteractionType `gorm:"size:20;not null;index" json:"type"`
	Query        string          `gorm:"size:200" json:"query"` // 搜索事件的原始查询
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
}
