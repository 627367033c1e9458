package main

import (
	"os"
	"time"

	"netapedia/internal/db"
	"netapedia/internal/logging"
	"netapedia/internal/middleware"
	"netapedia/internal/router"
	"netapedia/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logging.Get().Info().Msg("no .env file found, reading env vars from system")
	}
	log := logging.Get()

	// Initialize Database
	db.Init()

	// 初始化异步热度服务并启动定时刷新
	services.GetTrendingService().StartScheduledScoreUpdate()

	// 推送服务（VAPID 私钥缺失时自动禁用）
	services.GetPushService()

	// Initialize Gin
	r := gin.Default()

	// CORS：PWA 前端跨域访问
	corsCfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsCfg.AllowOrigins = []string{origins}
	} else {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsCfg.AllowCredentials = true
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("netapedia_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("netapedia server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
