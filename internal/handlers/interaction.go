package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"netapedia/internal/db"
	"netapedia/internal/middleware"
	"netapedia/internal/models"
	"netapedia/internal/services"
	"netapedia/internal/utils"
)

type InteractionHandler struct{}

func NewInteractionHandler() *InteractionHandler {
	return &InteractionHandler{}
}

type trackRequest struct {
	Type         string `json:"type" binding:"required"`
	PoliticianID uint   `json:"politician_id"`
	Query        string `json:"query"`
}

// Track 客户端上报互动事件（share / compare 等不经过专用接口的类型）
func (h *InteractionHandler) Track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "type is required")
		return
	}

	if !models.ValidInteractionType(req.Type) {
		FailValidation(c, "unknown interaction type")
		return
	}

	event := models.Interaction{
		UserID:     currentUserID(c),
		SessionKey: middleware.SessionKey(c),
		Type:       models.InteractionType(req.Type),
		Query:      utils.Excerpt(req.Query, 200),
	}
	if req.PoliticianID != 0 {
		var politician models.Politician
		if err := db.DB.Select("id").First(&politician, req.PoliticianID).Error; err != nil {
			Fail(c, wrapDBError(err, "politician not found"))
			return
		}
		id := politician.ID
		event.PoliticianID = &id
	}

	if err := services.RecordInteraction(event); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// Trending 热门政客榜单，按热度分倒序
func (h *InteractionHandler) Trending(c *gin.Context) {
	cacheKey := "trending:top"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			OK(c, data)
			return
		}
	}

	var politicians []models.Politician
	db.DB.Preload("Party").
		Where("active = ? AND score > 0", true).
		Order("score DESC").
		Limit(20).
		Find(&politicians)

	fillFavoriteCounts(politicians)

	data := gin.H{"politicians": politicians}
	utils.GetCache().Set(cacheKey, data, 5*time.Minute)
	OK(c, data)
}

// Recommendations 登录用户的个性化推荐
func (h *InteractionHandler) Recommendations(c *gin.Context) {
	user := CurrentUser(c)
	recommendations := services.GetRecommendService().ForUser(user.ID, 10)
	OK(c, gin.H{"recommendations": recommendations})
}
