package services

import (
	"strconv"
	"sync"
	"time"

	"netapedia/internal/db"
	"netapedia/internal/logging"
	"netapedia/internal/models"
	"netapedia/internal/utils"
)

// TrendingService 提供异步计算和更新政客热度分的服务
type TrendingService struct {
	queue   chan uint // 待更新的政客 ID 队列
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	trendingService *TrendingService
	trendingOnce    sync.Once
)

// GetTrendingService 获取单例热度服务
func GetTrendingService() *TrendingService {
	trendingOnce.Do(func() {
		trendingService = &TrendingService{
			queue:   make(chan uint, 1000), // 缓冲队列，防止阻塞
			pending: make(map[uint]bool),
		}
		// 启动后台 worker
		go trendingService.worker()
	})
	return trendingService
}

// ScheduleUpdate 将政客加入更新队列（异步）
// 使用去重机制避免短时间内重复计算同一政客
func (s *TrendingService) ScheduleUpdate(politicianID uint) {
	s.mu.Lock()
	if s.pending[politicianID] {
		// 已在队列中，跳过
		s.mu.Unlock()
		return
	}
	s.pending[politicianID] = true
	s.mu.Unlock()

	// 非阻塞发送到队列
	select {
	case s.queue <- politicianID:
		// 成功加入队列
	default:
		// 队列满了，移除 pending 标记
		s.mu.Lock()
		delete(s.pending, politicianID)
		s.mu.Unlock()
		logging.Get().Warn().Uint("politician_id", politicianID).Msg("trending queue full, skipping update")
	}
}

// worker 后台处理队列中的更新请求
func (s *TrendingService) worker() {
	// 批量处理：收集一批请求后统一处理
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond) // 每 500ms 处理一批
	defer ticker.Stop()

	for {
		select {
		case politicianID := <-s.queue:
			batch = append(batch, politicianID)
			// 如果达到批量大小，立即处理
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			// 定时处理剩余的
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// processBatch 批量处理热度分更新
func (s *TrendingService) processBatch(politicianIDs []uint) {
	for _, id := range politicianIDs {
		s.updateScore(id)

		// 清除 pending 状态
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

// trendingWindow 从设置里读取统计窗口，默认 7 天
func trendingWindow() time.Duration {
	days := 7
	var setting models.Setting
	if err := db.DB.Where("key = ?", "trending_window_days").First(&setting).Error; err == nil {
		if d, err := strconv.Atoi(setting.Value); err == nil && d > 0 {
			days = d
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// updateScore 计算并更新单个政客的热度分
func (s *TrendingService) updateScore(politicianID uint) {
	log := logging.Get()

	var politician models.Politician
	if err := db.DB.First(&politician, politicianID).Error; err != nil {
		log.Warn().Uint("politician_id", politicianID).Msg("trending update skipped, politician missing")
		return
	}

	since := time.Now().Add(-trendingWindow())

	countEvents := func(t models.InteractionType) int64 {
		var count int64
		db.DB.Model(&models.Interaction{}).
			Where("politician_id = ? AND type = ? AND created_at >= ?", politicianID, t, since).
			Count(&count)
		return count
	}

	views := countEvents(models.InteractionView)
	shares := countEvents(models.InteractionShare)
	compares := countEvents(models.InteractionCompare)
	searches := countEvents(models.InteractionSearch)

	// 收藏取当前真实数量，而非窗口内事件数
	var favorites int64
	db.DB.Model(&models.Favorite{}).Where("politician_id = ?", politicianID).Count(&favorites)

	// 窗口内最近一次互动时间，没有互动时退回建档时间
	lastActivity := politician.CreatedAt
	var latest models.Interaction
	if err := db.DB.Where("politician_id = ? AND created_at >= ?", politicianID, since).
		Order("created_at DESC").First(&latest).Error; err == nil {
		lastActivity = latest.CreatedAt
	}

	newScore := utils.CalculateTrendScore(
		lastActivity,
		int(views),
		int(favorites),
		int(shares),
		int(compares),
		int(searches),
	)

	// 更新数据库（Score 是 0-100 区间的整数）
	scoreInt := int(newScore)

	if err := db.DB.Model(&politician).UpdateColumn("score", scoreInt).Error; err != nil {
		log.Error().Err(err).Uint("politician_id", politicianID).Msg("failed to update trend score")
	}
}

// UpdateScoreSync 同步更新热度分（用于需要立即生效的场景）
func UpdateScoreSync(politicianID uint) {
	GetTrendingService().updateScore(politicianID)
}

// StartScheduledScoreUpdate 启动定时分数刷新任务（每天凌晨 3 点执行）
// 让长期无互动的政客分数随时间回落
func (s *TrendingService) StartScheduledScoreUpdate() {
	go func() {
		for {
			// 计算到下一个凌晨 3 点的时间
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(time.Until(next))

			logging.Get().Info().Msg("scheduled trend score refresh starting")
			s.refreshHotPoliticians()
			logging.Get().Info().Msg("scheduled trend score refresh done")
		}
	}()
}

// RefreshScores 全量刷新热度分，返回本次处理的政客数（后台手动触发用）
func (s *TrendingService) RefreshScores() int {
	return s.refreshHotPoliticians()
}

// refreshHotPoliticians 刷新窗口内有互动的政客和当前分数最高的 30 位（边遍历边去重）
func (s *TrendingService) refreshHotPoliticians() int {
	processed := make(map[uint]bool)
	count := 0

	// 1. 窗口内有互动的政客
	since := time.Now().Add(-trendingWindow())
	var recentIDs []uint
	db.DB.Model(&models.Interaction{}).
		Where("created_at >= ? AND politician_id IS NOT NULL", since).
		Distinct("politician_id").
		Pluck("politician_id", &recentIDs)
	for _, id := range recentIDs {
		s.updateScore(id)
		processed[id] = true
		count++
	}

	// 2. 当前分数最高的 30 位（跳过已处理的）
	var topPoliticians []models.Politician
	db.DB.Order("score DESC").Limit(30).Select("id").Find(&topPoliticians)
	for _, p := range topPoliticians {
		if !processed[p.ID] {
			s.updateScore(p.ID)
			count++
		}
	}

	logging.Get().Info().Int("count", count).Msg("trend scores refreshed")
	return count
}
