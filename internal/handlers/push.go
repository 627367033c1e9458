package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/models"
	"netapedia/internal/services"
)

type PushHandler struct{}

func NewPushHandler() *PushHandler {
	return &PushHandler{}
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256dh   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// Subscribe 保存浏览器推送订阅。同一 endpoint 重复提交时更新密钥
func (h *PushHandler) Subscribe(c *gin.Context) {
	if !services.GetPushService().Enabled {
		Fail(c, apperrors.Validation("push notifications are disabled"))
		return
	}

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "endpoint, p256dh and auth are required")
		return
	}

	var sub models.PushSubscription
	err := db.DB.Where("endpoint = ?", req.Endpoint).First(&sub).Error
	switch {
	case err == nil:
		sub.P256dh = req.P256dh
		sub.Auth = req.Auth
		sub.UserID = currentUserID(c)
		if err := db.DB.Save(&sub).Error; err != nil {
			Fail(c, apperrors.Database(err, "failed to update subscription"))
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.PushSubscription{
			Endpoint: req.Endpoint,
			P256dh:   req.P256dh,
			Auth:     req.Auth,
			UserID:   currentUserID(c),
		}
		if err := db.DB.Create(&sub).Error; err != nil {
			Fail(c, apperrors.Database(err, "failed to save subscription"))
			return
		}
	default:
		Fail(c, apperrors.Database(err, "failed to query subscription"))
		return
	}

	OK(c, gin.H{"id": sub.ID})
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// Unsubscribe 按 endpoint 删除订阅
func (h *PushHandler) Unsubscribe(c *gin.Context) {
	var req unsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "endpoint is required")
		return
	}

	if err := db.DB.Where("endpoint = ?", req.Endpoint).Delete(&models.PushSubscription{}).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to remove subscription"))
		return
	}
	OK(c, nil)
}

type broadcastRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	URL   string `json:"url"`
}

// Broadcast 后台向全部订阅广播通知，投递异步执行
func (h *PushHandler) Broadcast(c *gin.Context) {
	if !services.GetPushService().Enabled {
		Fail(c, apperrors.Validation("push notifications are disabled"))
		return
	}

	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "title and body are required")
		return
	}

	var total int64
	db.DB.Model(&models.PushSubscription{}).Count(&total)

	services.GetPushService().Broadcast(services.PushMessage{
		Title: req.Title,
		Body:  req.Body,
		URL:   req.URL,
	})

	OK(c, gin.H{"subscriptions": total})
}
