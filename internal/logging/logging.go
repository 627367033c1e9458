package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger zerolog.Logger
	once   sync.Once
)

// Get 获取全局 logger 单例
// 日志级别由 LOG_LEVEL 环境变量控制，开发模式下输出彩色控制台格式
func Get() *zerolog.Logger {
	once.Do(func() {
		level := zerolog.InfoLevel
		if l, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && l != zerolog.NoLevel {
			level = l
		}

		if os.Getenv("GIN_MODE") == "release" {
			logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
		} else {
			writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
			logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
		}
	})
	return &logger
}
