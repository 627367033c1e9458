package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/models"
	"netapedia/internal/utils"
)

type PartyHandler struct{}

func NewPartyHandler() *PartyHandler {
	return &PartyHandler{}
}

// List 政党列表，附带成员数量
func (h *PartyHandler) List(c *gin.Context) {
	cacheKey := "party:list"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			OK(c, data)
			return
		}
	}

	var parties []models.PoliticalParty
	db.DB.Order("name ASC").Find(&parties)

	// 批量统计各党在职成员数
	type CountResult struct {
		PartyID uint
		Count   int
	}
	var results []CountResult
	db.DB.Model(&models.Politician{}).
		Select("party_id, COUNT(*) as count").
		Where("active = ?", true).
		Group("party_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PartyID] = r.Count
	}
	for i := range parties {
		parties[i].MemberCount = countMap[parties[i].ID]
	}

	data := gin.H{"parties": parties}
	utils.GetCache().Set(cacheKey, data, 10*time.Minute)
	OK(c, data)
}

// Detail 政党详情：基本信息 + 历次选举表现 + 现任成员
func (h *PartyHandler) Detail(c *gin.Context) {
	var party models.PoliticalParty
	if err := db.DB.First(&party, c.Param("id")).Error; err != nil {
		Fail(c, wrapDBError(err, "party not found"))
		return
	}

	var performances []models.PartyPerformance
	db.DB.Where("party_id = ?", party.ID).Order("year DESC").Find(&performances)

	var members []models.Politician
	db.DB.Where("party_id = ? AND active = ?", party.ID, true).
		Order("score DESC").
		Limit(50).
		Find(&members)
	fillFavoriteCounts(members)

	var memberCount int64
	db.DB.Model(&models.Politician{}).Where("party_id = ? AND active = ?", party.ID, true).Count(&memberCount)
	party.MemberCount = int(memberCount)

	OK(c, gin.H{
		"party":        party,
		"performances": performances,
		"members":      members,
	})
}

type partyRequest struct {
	Name         string `json:"name" binding:"required"`
	Abbreviation string `json:"abbreviation"`
	FoundedOn    string `json:"founded_on"`
	Ideology     string `json:"ideology"`
	Leader       string `json:"leader"`
	Symbol       string `json:"symbol"`
	Description  string `json:"description"`
}

// Create 后台新建政党
func (h *PartyHandler) Create(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "name is required")
		return
	}

	party := models.PoliticalParty{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		FoundedOn:    utils.NormalizeDate(req.FoundedOn),
		Ideology:     req.Ideology,
		Leader:       req.Leader,
		Symbol:       req.Symbol,
		Description:  req.Description,
	}
	if err := db.DB.Create(&party).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to create party"))
		return
	}

	utils.GetCache().Delete("party:list")
	OK(c, gin.H{"party": party})
}

// Update 后台更新政党
func (h *PartyHandler) Update(c *gin.Context) {
	var party models.PoliticalParty
	if err := db.DB.First(&party, c.Param("id")).Error; err != nil {
		Fail(c, wrapDBError(err, "party not found"))
		return
	}

	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "name is required")
		return
	}

	party.Name = req.Name
	party.Abbreviation = req.Abbreviation
	party.FoundedOn = utils.NormalizeDate(req.FoundedOn)
	party.Ideology = req.Ideology
	party.Leader = req.Leader
	party.Symbol = req.Symbol
	party.Description = req.Description

	if err := db.DB.Save(&party).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to update party"))
		return
	}

	utils.GetCache().Delete("party:list")
	OK(c, gin.H{"party": party})
}

// Delete 后台删除政党。仍有成员时拒绝（外键 RESTRICT 会报错，先行检查给出友好提示）
func (h *PartyHandler) Delete(c *gin.Context) {
	var party models.PoliticalParty
	if err := db.DB.First(&party, c.Param("id")).Error; err != nil {
		Fail(c, wrapDBError(err, "party not found"))
		return
	}

	var memberCount int64
	db.DB.Model(&models.Politician{}).Where("party_id = ?", party.ID).Count(&memberCount)
	if memberCount > 0 {
		Fail(c, apperrors.Validation("party still has politicians, reassign them first"))
		return
	}

	if err := db.DB.Delete(&party).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to delete party"))
		return
	}

	utils.GetCache().Delete("party:list")
	OK(c, nil)
}

type partyPerformanceRequest struct {
	Year      int     `json:"year" binding:"required"`
	Election  string  `json:"election" binding:"required"`
	SeatsWon  int     `json:"seats_won"`
	VoteShare float64 `json:"vote_share"`
}

// AddPerformance 后台新增政党选举表现
func (h *PartyHandler) AddPerformance(c *gin.Context) {
	var party models.PoliticalParty
	if err := db.DB.First(&party, c.Param("id")).Error; err != nil {
		Fail(c, wrapDBError(err, "party not found"))
		return
	}

	var req partyPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "year and election are required")
		return
	}

	perf := models.PartyPerformance{
		PartyID:   party.ID,
		Year:      req.Year,
		Election:  req.Election,
		SeatsWon:  req.SeatsWon,
		VoteShare: req.VoteShare,
	}
	if err := db.DB.Create(&perf).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to create party performance"))
		return
	}
	OK(c, gin.H{"performance": perf})
}

// DeletePerformance 后台删除政党选举表现
func (h *PartyHandler) DeletePerformance(c *gin.Context) {
	if err := db.DB.Delete(&models.PartyPerformance{}, c.Param("perfId")).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to delete party performance"))
		return
	}
	OK(c, nil)
}
