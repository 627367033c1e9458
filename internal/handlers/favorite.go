package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/middleware"
	"netapedia/internal/models"
	"netapedia/internal/services"
)

type FavoriteHandler struct{}

func NewFavoriteHandler() *FavoriteHandler {
	return &FavoriteHandler{}
}

// Toggle 收藏/取消收藏。已收藏则取消，未收藏则添加，返回最新状态
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	user := CurrentUser(c)

	pid := c.Param("pid")
	var politician models.Politician
	if err := db.DB.Select("id").Where("pid = ?", pid).First(&politician).Error; err != nil {
		Fail(c, wrapDBError(err, "politician not found"))
		return
	}

	var favorite models.Favorite
	err := db.DB.Where("user_id = ? AND politician_id = ?", user.ID, politician.ID).First(&favorite).Error

	favorited := false
	eventType := models.InteractionUnfavorite
	switch {
	case err == nil:
		// 已收藏，取消
		if err := db.DB.Delete(&favorite).Error; err != nil {
			Fail(c, apperrors.Database(err, "failed to remove favorite"))
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		favorite = models.Favorite{UserID: user.ID, PoliticianID: politician.ID}
		if err := db.DB.Create(&favorite).Error; err != nil {
			Fail(c, apperrors.Database(err, "failed to add favorite"))
			return
		}
		favorited = true
		eventType = models.InteractionFavorite
	default:
		Fail(c, apperrors.Database(err, "failed to query favorite"))
		return
	}

	userID := user.ID
	politicianID := politician.ID
	services.RecordInteractionAsync(models.Interaction{
		UserID:       &userID,
		SessionKey:   middleware.SessionKey(c),
		PoliticianID: &politicianID,
		Type:         eventType,
	})

	var count int64
	db.DB.Model(&models.Favorite{}).Where("politician_id = ?", politician.ID).Count(&count)

	OK(c, gin.H{
		"favorited":      favorited,
		"favorite_count": count,
	})
}

// List 当前用户的收藏列表，按收藏时间倒序
func (h *FavoriteHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	page, perPage, offset := parsePage(c)

	var total int64
	db.DB.Model(&models.Favorite{}).Where("user_id = ?", user.ID).Count(&total)

	var favorites []models.Favorite
	db.DB.Preload("Politician").Preload("Politician.Party").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&favorites)

	OK(c, gin.H{
		"favorites": favorites,
		"page":      page,
		"total":     total,
	})
}
