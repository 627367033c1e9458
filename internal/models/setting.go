package models

import (
	"time"
)

// Setting 运行时配置项
// Public 为 true 的配置可以被前台匿名读取
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	Public    bool      `gorm:"default:false" json:"public"`
	UpdatedAt time.Time `json:"updated_at"`
}
