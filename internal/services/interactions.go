package services

import (
	"gorm.io/gorm"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/models"
)

// RecordInteraction 事务内写入互动事件并更新相关聚合
// 事件日志只追加，浏览事件同时累加政客的 views 计数
func RecordInteraction(event models.Interaction) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if event.Type == models.InteractionView && event.PoliticianID != nil {
			if err := tx.Model(&models.Politician{}).
				Where("id = ?", *event.PoliticianID).
				UpdateColumn("views", gorm.Expr("views + ?", 1)).
				Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return apperrors.Database(err, "failed to record interaction")
	}

	// 异步重算热度
	if event.PoliticianID != nil {
		GetTrendingService().ScheduleUpdate(*event.PoliticianID)
	}
	return nil
}

// RecordInteractionAsync 异步记录互动（在 goroutine 中调用）
// 失败只计入告警，不影响主请求
func RecordInteractionAsync(event models.Interaction) {
	go func() {
		if err := RecordInteraction(event); err != nil {
			apperrors.GetAlertMonitor().Record(err)
		}
	}()
}
