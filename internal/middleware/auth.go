package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"netapedia/internal/db"
	"netapedia/internal/models"
)

const CheckUserKey = "user"
const SessionKeyName = "session_key"

// LoadUser retrieves user from session and sets to context
// 同时保证每个会话（包括匿名）都有一个用于互动归因的 session key
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		// 匿名互动追踪用的会话标识
		if session.Get(SessionKeyName) == nil {
			session.Set(SessionKeyName, uuid.NewString())
			session.Save()
		}

		userID := session.Get("user_id")
		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil && user.Status == 0 {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// AdminRequired ensures the current user has an admin role
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		if !u.(*models.User).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// SuperAdminRequired ensures the current user is a super admin
func SuperAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		if !u.(*models.User).IsSuperAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "super admin access required"})
			return
		}
		c.Next()
	}
}

// SessionKey 取当前会话的匿名标识
func SessionKey(c *gin.Context) string {
	session := sessions.Default(c)
	if key, ok := session.Get(SessionKeyName).(string); ok {
		return key
	}
	return ""
}
