package handlers

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/models"
	"netapedia/internal/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册新用户
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "email and password are required")
		return
	}

	parts := strings.Split(req.Email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		FailValidation(c, "invalid email address")
		return
	}
	if len(req.Password) < 6 {
		FailValidation(c, "password must be at least 6 characters")
		return
	}

	username := req.Username
	if username == "" {
		// 缺省用邮箱前缀
		username = parts[0]
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		Fail(c, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityHigh, "failed to hash password"))
		return
	}

	user := models.User{
		Username: username,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// 邮箱唯一索引冲突
		Fail(c, apperrors.Validation("email already registered"))
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "email and password are required")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		Fail(c, apperrors.Unauthorized("invalid email or password"))
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		Fail(c, apperrors.Unauthorized("invalid email or password"))
		return
	}
	if user.Status != 0 {
		Fail(c, apperrors.Unauthorized("account suspended"))
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"user": user})
}

// Logout 退出登录，保留匿名 session key
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete("user_id")
	session.Save()
	OK(c, nil)
}

// Me 返回当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, apperrors.Unauthorized("not logged in"))
		return
	}
	OK(c, gin.H{"user": user})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 修改密码
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "old and new passwords are required")
		return
	}
	if !utils.CheckPasswordHash(req.OldPassword, user.Password) {
		Fail(c, apperrors.Unauthorized("old password incorrect"))
		return
	}
	if len(req.NewPassword) < 6 {
		FailValidation(c, "password must be at least 6 characters")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		Fail(c, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityHigh, "failed to hash password"))
		return
	}
	if err := db.DB.Model(user).Update("password", hash).Error; err != nil {
		Fail(c, wrapDBError(err, "user not found"))
		return
	}
	OK(c, nil)
}
