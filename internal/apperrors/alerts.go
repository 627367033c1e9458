package apperrors

import (
	"sync"
	"time"

	"netapedia/internal/logging"
)

// 各类别的告警阈值：窗口期内超过该次数则触发告警
var alertThresholds = map[Category]int{
	CategoryNetwork:       10,
	CategoryDatabase:      5,
	CategoryExternalAPI:   10,
	CategoryAuthorization: 20,
	CategoryValidation:    50,
	CategoryNotFound:      100,
	CategoryInternal:      3,
}

const (
	alertWindow   = 5 * time.Minute  // 计数窗口
	alertCooldown = 15 * time.Minute // 同一类别两次告警之间的最短间隔，防止告警风暴
)

// AlertMonitor 按类别统计错误并在超过阈值时输出告警日志
type AlertMonitor struct {
	mu          sync.Mutex
	counts      map[Category]int
	windowStart map[Category]time.Time
	lastAlert   map[Category]time.Time
	now         func() time.Time // 可注入，方便测试
}

var (
	monitor     *AlertMonitor
	monitorOnce sync.Once
)

// GetAlertMonitor 获取全局告警监控单例
func GetAlertMonitor() *AlertMonitor {
	monitorOnce.Do(func() {
		monitor = NewAlertMonitor()
	})
	return monitor
}

// NewAlertMonitor 创建独立的告警监控实例
func NewAlertMonitor() *AlertMonitor {
	return &AlertMonitor{
		counts:      make(map[Category]int),
		windowStart: make(map[Category]time.Time),
		lastAlert:   make(map[Category]time.Time),
		now:         time.Now,
	}
}

// Record 记录一次错误，返回本次是否触发了告警
func (m *AlertMonitor) Record(err error) bool {
	if err == nil {
		return false
	}
	category := CategoryOf(err)
	severity := SeverityOf(err)

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	// 窗口过期则重新计数
	if start, ok := m.windowStart[category]; !ok || now.Sub(start) > alertWindow {
		m.windowStart[category] = now
		m.counts[category] = 0
	}
	m.counts[category]++

	threshold := alertThresholds[category]
	if threshold == 0 {
		threshold = 10
	}
	// critical 错误阈值减半，更快触发
	if severity == SeverityCritical && threshold > 1 {
		threshold = threshold / 2
	}

	if m.counts[category] < threshold {
		return false
	}

	// 冷却期内不重复告警
	if last, ok := m.lastAlert[category]; ok && now.Sub(last) < alertCooldown {
		return false
	}
	m.lastAlert[category] = now

	logging.Get().Warn().
		Str("category", string(category)).
		Str("severity", string(severity)).
		Int("count", m.counts[category]).
		Int("threshold", threshold).
		Str("last_error", err.Error()).
		Msg("error rate alert triggered")

	return true
}

// AlertSnapshot 当前窗口内各类别的错误计数，供管理后台查看
type AlertSnapshot struct {
	Category    Category   `json:"category"`
	Count       int        `json:"count"`
	Threshold   int        `json:"threshold"`
	WindowStart time.Time  `json:"window_start"`
	LastAlert   *time.Time `json:"last_alert,omitempty"`
}

// Snapshot 导出当前计数状态
func (m *AlertMonitor) Snapshot() []AlertSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots := make([]AlertSnapshot, 0, len(m.counts))
	for category, count := range m.counts {
		s := AlertSnapshot{
			Category:    category,
			Count:       count,
			Threshold:   alertThresholds[category],
			WindowStart: m.windowStart[category],
		}
		if last, ok := m.lastAlert[category]; ok {
			t := last
			s.LastAlert = &t
		}
		snapshots = append(snapshots, s)
	}
	return snapshots
}
