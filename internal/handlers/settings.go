package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/models"
	"netapedia/internal/utils"
)

type SettingHandler struct{}

func NewSettingHandler() *SettingHandler {
	return &SettingHandler{}
}

// Public 前台可见配置，key-value 形式返回
func (h *SettingHandler) Public(c *gin.Context) {
	cacheKey := "settings:public"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			OK(c, data)
			return
		}
	}

	var settings []models.Setting
	db.DB.Where("public = ?", true).Find(&settings)

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}

	data := gin.H{"settings": values}
	utils.GetCache().Set(cacheKey, data, 5*time.Minute)
	OK(c, data)
}

// List 后台查看全部配置
func (h *SettingHandler) List(c *gin.Context) {
	var settings []models.Setting
	db.DB.Order("key ASC").Find(&settings)
	OK(c, gin.H{"settings": settings})
}

type settingRequest struct {
	Value  string `json:"value"`
	Public *bool  `json:"public"`
}

// Update 后台更新单个配置项，key 不存在时新建
func (h *SettingHandler) Update(c *gin.Context) {
	key := c.Param("key")

	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "invalid request body")
		return
	}

	var setting models.Setting
	err := db.DB.Where("key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		setting.Value = req.Value
		if req.Public != nil {
			setting.Public = *req.Public
		}
		if err := db.DB.Save(&setting).Error; err != nil {
			Fail(c, apperrors.Database(err, "failed to update setting"))
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.Setting{Key: key, Value: req.Value}
		if req.Public != nil {
			setting.Public = *req.Public
		}
		if err := db.DB.Create(&setting).Error; err != nil {
			Fail(c, apperrors.Database(err, "failed to create setting"))
			return
		}
	default:
		Fail(c, apperrors.Database(err, "failed to query setting"))
		return
	}

	utils.GetCache().Delete("settings:public")
	OK(c, gin.H{"setting": setting})
}
