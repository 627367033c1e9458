package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"netapedia/internal/apperrors"
	"netapedia/internal/middleware"
	"netapedia/internal/models"
)

// OK 统一成功响应
func OK(c *gin.Context, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["ok"] = true
	c.JSON(http.StatusOK, data)
}

// Fail 统一错误响应：状态码由错误类别推导，并计入告警
func Fail(c *gin.Context, err error) {
	apperrors.GetAlertMonitor().Record(err)

	status := apperrors.HTTPStatus(err)
	body := gin.H{
		"ok":       false,
		"error":    err.Error(),
		"category": apperrors.CategoryOf(err),
	}
	c.JSON(status, body)
}

// FailValidation 参数校验失败的快捷返回
func FailValidation(c *gin.Context, message string) {
	Fail(c, apperrors.Validation(message))
}

// wrapDBError 把 GORM 错误翻译为结构化错误
func wrapDBError(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	return apperrors.Database(err, "database query failed")
}

// CurrentUser 取当前登录用户，未登录返回 nil
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// currentUserID 取当前用户 ID 指针，匿名时为 nil（互动归因用）
func currentUserID(c *gin.Context) *uint {
	if user := CurrentUser(c); user != nil {
		id := user.ID
		return &id
	}
	return nil
}

// parsePage 解析分页参数，页码从 1 开始
func parsePage(c *gin.Context) (page, perPage, offset int) {
	page = 1
	if p := c.Query("page"); p != "" {
		if n, err := parsePositive(p); err == nil {
			page = n
		}
	}
	perPage = 30
	if p := c.Query("per_page"); p != "" {
		if n, err := parsePositive(p); err == nil && n <= 100 {
			perPage = n
		}
	}
	offset = (page - 1) * perPage
	return
}

func parsePositive(s string) (int, error) {
	var n int
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("not a number")
		}
		n = n*10 + int(r-'0')
		if n > 1<<20 {
			return 0, errors.New("too large")
		}
	}
	if n < 1 {
		return 0, errors.New("not positive")
	}
	return n, nil
}
