package handlers

import (
	"github.com/gin-gonic/gin"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/models"
	"netapedia/internal/services"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// ListUsers 后台用户列表
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, perPage, offset := parsePage(c)

	var total int64
	db.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	db.DB.Order("created_at DESC").Limit(perPage).Offset(offset).Find(&users)

	OK(c, gin.H{
		"users": users,
		"page":  page,
		"total": total,
	})
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole 调整用户角色，仅超级管理员可操作，且不能降级自己
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "role is required")
		return
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin && req.Role != models.RoleSuperAdmin {
		FailValidation(c, "unknown role")
		return
	}

	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		Fail(c, wrapDBError(err, "user not found"))
		return
	}

	if current := CurrentUser(c); current != nil && current.ID == user.ID {
		Fail(c, apperrors.Validation("cannot change your own role"))
		return
	}

	user.Role = req.Role
	if err := db.DB.Save(&user).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to update role"))
		return
	}
	OK(c, gin.H{"user": user})
}

type statusRequest struct {
	Status int `json:"status"`
}

// UpdateStatus 封禁/解封用户
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "invalid request body")
		return
	}
	if req.Status != 0 && req.Status != 1 {
		FailValidation(c, "status must be 0 or 1")
		return
	}

	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		Fail(c, wrapDBError(err, "user not found"))
		return
	}

	if current := CurrentUser(c); current != nil && current.ID == user.ID {
		Fail(c, apperrors.Validation("cannot change your own status"))
		return
	}

	user.Status = req.Status
	if err := db.DB.Save(&user).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to update status"))
		return
	}
	OK(c, gin.H{"user": user})
}

// Alerts 查看当前告警窗口内各错误类别的计数
func (h *AdminHandler) Alerts(c *gin.Context) {
	OK(c, gin.H{"alerts": apperrors.GetAlertMonitor().Snapshot()})
}

// RecalculateTrending 手动触发全量热度重算
func (h *AdminHandler) RecalculateTrending(c *gin.Context) {
	updated := services.GetTrendingService().RefreshScores()
	OK(c, gin.H{"updated": updated})
}
