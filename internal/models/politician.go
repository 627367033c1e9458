package models

import (
	"time"
)

// Politician 政客档案，后台 CMS 维护，前台只读
type Politician struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Pid          string         `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	Name         string         `gorm:"not null;index" json:"name"`
	PartyID      uint           `gorm:"index" json:"party_id"`
	Party        PoliticalParty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"party"`
	Position     string         `gorm:"size:100;index" json:"position"` // e.g. "Chief Minister"
	Constituency string         `gorm:"size:100" json:"constituency"`
	State        string         `gorm:"size:50;index" json:"state"`
	Gender       string         `gorm:"size:10" json:"gender"`
	BirthDate    string         `gorm:"size:10" json:"birth_date"` // YYYY-MM-DD，入库前归一化
	Education    string         `gorm:"size:200" json:"education"`
	Bio          string         `gorm:"type:text" json:"bio"` // Markdown
	PhotoURL     string         `json:"photo_url"`
	Website      string         `json:"website"`
	Twitter      string         `json:"twitter"`
	Active       bool           `gorm:"default:true;index" json:"active"`
	Score        int            `gorm:"default:0;index" json:"score"` // 热度分，后台异步更新
	Views        int            `gorm:"default:0" json:"views"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	FavoriteCount int `gorm:"-" json:"favorite_count"`
}

// ElectoralRecord 政客历次参选记录
type ElectoralRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PoliticianID uint       `gorm:"not null;index" json:"politician_id"`
	Politician   Politician `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Year         int        `gorm:"not null" json:"year"`
	Election     string     `gorm:"size:100;not null" json:"election"`
	Constituency string     `gorm:"size:100" json:"constituency"`
	Result       string     `gorm:"size:20" json:"result"` // won / lost
	VoteShare    float64    `json:"vote_share"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PolicyStance 政客在某议题上的立场
type PolicyStance struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PoliticianID uint       `gorm:"not null;index" json:"politician_id"`
	Politician   Politician `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Topic        string     `gorm:"size:100;not null;index" json:"topic"`
	Position     string     `gorm:"type:text" json:"position"`
	StatedOn     string     `gorm:"size:10" json:"stated_on"` // YYYY-MM-DD
	CreatedAt    time.Time  `json:"created_at"`
}
