package router

import (
	"netapedia/internal/handlers"
	"netapedia/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	politicianHandler := handlers.NewPoliticianHandler()
	partyHandler := handlers.NewPartyHandler()
	favoriteHandler := handlers.NewFavoriteHandler()
	interactionHandler := handlers.NewInteractionHandler()
	settingHandler := handlers.NewSettingHandler()
	pushHandler := handlers.NewPushHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.GET("/politicians", politicianHandler.List)             // 政客列表（筛选/排序/分页）
	api.GET("/politicians/:pid", politicianHandler.Detail)      // 政客详情
	api.GET("/politicians/:pid/related", politicianHandler.Related) // 相关人物
	api.GET("/parties", partyHandler.List)                      // 政党列表
	api.GET("/parties/:id", partyHandler.Detail)                // 政党详情
	api.GET("/search", politicianHandler.Search)                // 自然语言搜索
	api.GET("/trending", interactionHandler.Trending)           // 热门榜单
	api.GET("/settings", settingHandler.Public)                 // 前台可见配置
	api.POST("/interactions", interactionHandler.Track)         // 上报互动事件

	api.POST("/auth/register", authHandler.Register) // 注册
	api.POST("/auth/login", authHandler.Login)       // 登录
	api.POST("/auth/logout", authHandler.Logout)     // 退出登录
	api.GET("/auth/me", authHandler.Me)              // 当前登录用户

	api.POST("/push/subscribe", pushHandler.Subscribe)     // 保存推送订阅
	api.POST("/push/unsubscribe", pushHandler.Unsubscribe) // 删除推送订阅

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/auth/password", authHandler.ChangePassword)        // 修改密码
		authorized.POST("/favorites/:pid", favoriteHandler.Toggle)           // 收藏/取消收藏
		authorized.GET("/favorites", favoriteHandler.List)                   // 我的收藏
		authorized.GET("/recommendations", interactionHandler.Recommendations) // 个性化推荐
	}

	// 后台管理路由 (Admin Routes)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/politicians", politicianHandler.Create)        // 新建政客
		admin.PUT("/politicians/:pid", politicianHandler.Update)    // 更新政客
		admin.DELETE("/politicians/:pid", politicianHandler.Delete) // 删除政客
		admin.POST("/import/bio", politicianHandler.Import)         // 外部简介抓取预览

		admin.POST("/politicians/:pid/records", politicianHandler.AddElectoralRecord) // 新增参选记录
		admin.DELETE("/records/:id", politicianHandler.DeleteElectoralRecord)         // 删除参选记录
		admin.POST("/politicians/:pid/stances", politicianHandler.AddStance)          // 新增政策立场
		admin.DELETE("/stances/:id", politicianHandler.DeleteStance)                  // 删除政策立场

		admin.POST("/parties", partyHandler.Create)                               // 新建政党
		admin.PUT("/parties/:id", partyHandler.Update)                            // 更新政党
		admin.DELETE("/parties/:id", partyHandler.Delete)                         // 删除政党
		admin.POST("/parties/:id/performances", partyHandler.AddPerformance)      // 新增选举表现
		admin.DELETE("/parties/:id/performances/:perfId", partyHandler.DeletePerformance) // 删除选举表现

		admin.GET("/settings", settingHandler.List)        // 全部配置
		admin.PUT("/settings/:key", settingHandler.Update) // 更新配置

		admin.GET("/users", adminHandler.ListUsers)                    // 用户列表
		admin.PUT("/users/:id/status", adminHandler.UpdateStatus)      // 封禁/解封
		admin.POST("/push/broadcast", pushHandler.Broadcast)           // 广播推送
		admin.GET("/alerts", adminHandler.Alerts)                      // 告警计数
		admin.POST("/trending/refresh", adminHandler.RecalculateTrending) // 手动刷新热度
	}

	// 超级管理员路由 (Super Admin Routes)
	super := api.Group("/admin")
	super.Use(middleware.AuthRequired(), middleware.SuperAdminRequired())
	{
		super.PUT("/users/:id/role", adminHandler.UpdateRole) // 调整用户角色
	}
}
