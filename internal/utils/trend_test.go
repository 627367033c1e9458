package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrendScoreZeroWithoutActivity(t *testing.T) {
	score := CalculateTrendScore(time.Now(), 0, 0, 0, 0, 0)
	assert.Equal(t, 0.0, score)
}

func TestTrendScoreFavoriteOutweighsView(t *testing.T) {
	now := time.Now()
	favScore := CalculateTrendScore(now, 0, 10, 0, 0, 0)
	viewScore := CalculateTrendScore(now, 10, 0, 0, 0, 0)
	assert.Greater(t, favScore, viewScore)
}

func TestTrendScoreDecaysOverTime(t *testing.T) {
	fresh := CalculateTrendScore(time.Now().Add(-1*time.Hour), 100, 10, 5, 2, 20)
	stale := CalculateTrendScore(time.Now().Add(-72*time.Hour), 100, 10, 5, 2, 20)
	assert.Greater(t, fresh, stale)
}

func TestTrendScoreFutureTimestampClamped(t *testing.T) {
	// 时钟偏差导致的未来时间不应产生爆炸分数
	score := CalculateTrendScore(time.Now().Add(time.Hour), 10, 1, 0, 0, 0)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 200.0)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 10))
	assert.Equal(t, "abcde...", Excerpt("abcdefgh", 5))
}
