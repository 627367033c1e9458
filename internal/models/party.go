package models

import (
	"time"
)

// PoliticalParty 政党
type PoliticalParty struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;unique" json:"name"`
	Abbreviation string    `gorm:"size:20;index" json:"abbreviation"`
	Ideology     string    `gorm:"size:200" json:"ideology"`
	FoundedOn    string    `gorm:"size:10" json:"founded_on"` // YYYY-MM-DD，入库前归一化
	Symbol       string    `gorm:"size:100" json:"symbol"`
	Leader       string    `gorm:"size:100" json:"leader"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	MemberCount int `gorm:"-" json:"member_count"`
}

// PartyPerformance 政党历次选举表现
type PartyPerformance struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PartyID   uint           `gorm:"not null;index" json:"party_id"`
	Party     PoliticalParty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Year      int            `gorm:"not null" json:"year"`
	Election  string         `gorm:"size:100;not null" json:"election"` // e.g. "Lok Sabha", "Delhi Assembly"
	SeatsWon  int            `json:"seats_won"`
	VoteShare float64        `json:"vote_share"`
	CreatedAt time.Time      `json:"created_at"`
}
