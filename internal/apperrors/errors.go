package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Category 错误类别 - decides HTTP status and retry eligibility
type Category string

const (
	CategoryNetwork       Category = "network"
	CategoryDatabase      Category = "database"
	CategoryExternalAPI   Category = "external_api"
	CategoryAuthorization Category = "authorization"
	CategoryValidation    Category = "validation"
	CategoryNotFound      Category = "not_found"
	CategoryInternal      Category = "internal"
)

// Severity 错误严重程度 - drives alert thresholds
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError 带类别和严重程度的结构化错误
type AppError struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Err      error    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建结构化错误
func New(category Category, severity Severity, message string) *AppError {
	return &AppError{Category: category, Severity: severity, Message: message}
}

// Wrap 包装底层错误并附加类别信息
func Wrap(err error, category Category, severity Severity, message string) *AppError {
	return &AppError{Category: category, Severity: severity, Message: message, Err: err}
}

// Validation 参数校验错误的快捷构造
func Validation(message string) *AppError {
	return New(CategoryValidation, SeverityLow, message)
}

// NotFound 资源不存在错误的快捷构造
func NotFound(message string) *AppError {
	return New(CategoryNotFound, SeverityLow, message)
}

// Unauthorized 认证/授权错误的快捷构造
func Unauthorized(message string) *AppError {
	return New(CategoryAuthorization, SeverityMedium, message)
}

// Database 数据库错误的快捷构造
func Database(err error, message string) *AppError {
	return Wrap(err, CategoryDatabase, SeverityHigh, message)
}

// CategoryOf 提取错误类别，非 AppError 一律归为 internal
func CategoryOf(err error) Category {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Category
	}
	return CategoryInternal
}

// SeverityOf 提取错误严重程度，非 AppError 默认 medium
func SeverityOf(err error) Severity {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Severity
	}
	return SeverityMedium
}

// IsRetryable 判断错误是否可重试
// 网络/数据库/外部接口错误视为瞬态，授权和校验错误立即失败
func IsRetryable(err error) bool {
	switch CategoryOf(err) {
	case CategoryNetwork, CategoryDatabase, CategoryExternalAPI:
		return true
	default:
		return false
	}
}

// HTTPStatus 根据错误类别映射 HTTP 状态码
func HTTPStatus(err error) int {
	switch CategoryOf(err) {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryAuthorization:
		return http.StatusForbidden
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryNetwork, CategoryExternalAPI:
		return http.StatusBadGateway
	case CategoryDatabase:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
