package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBirthDateRange(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	earliest, latest := birthDateRange(30, 0, now)
	assert.Empty(t, earliest)
	assert.Equal(t, "1996-08-27", latest) // 当天满 30 岁的人正好入选

	earliest, latest = birthDateRange(0, 40, now)
	assert.Equal(t, "1985-08-28", earliest) // 明天才满 41 岁，今天仍是 40
	assert.Empty(t, latest)

	earliest, latest = birthDateRange(30, 40, now)
	assert.Equal(t, "1985-08-28", earliest)
	assert.Equal(t, "1996-08-27", latest)

	earliest, latest = birthDateRange(0, 0, now)
	assert.Empty(t, earliest)
	assert.Empty(t, latest)
}

func TestBirthDateRangeOrdering(t *testing.T) {
	now := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	earliest, latest := birthDateRange(25, 60, now)

	// 区间必须非空：earliest <= latest（字符串比较与日期比较一致）
	assert.LessOrEqual(t, earliest, latest)
}
