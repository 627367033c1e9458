package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		category Category
		want     int
	}{
		{CategoryValidation, http.StatusBadRequest},
		{CategoryAuthorization, http.StatusForbidden},
		{CategoryNotFound, http.StatusNotFound},
		{CategoryNetwork, http.StatusBadGateway},
		{CategoryExternalAPI, http.StatusBadGateway},
		{CategoryDatabase, http.StatusServiceUnavailable},
		{CategoryInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		err := New(tc.category, SeverityMedium, "boom")
		assert.Equal(t, tc.want, HTTPStatus(err), "category %s", tc.category)
	}

	// 普通 error 归为 internal
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(CategoryNetwork, SeverityLow, "timeout")))
	assert.True(t, IsRetryable(Database(errors.New("conn reset"), "query failed")))
	assert.True(t, IsRetryable(New(CategoryExternalAPI, SeverityMedium, "502")))

	assert.False(t, IsRetryable(Unauthorized("no session")))
	assert.False(t, IsRetryable(Validation("bad id")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestWrapPreservesChain(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := Wrap(inner, CategoryNetwork, SeverityHigh, "fetch failed")

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, CategoryNetwork, CategoryOf(fmt.Errorf("outer: %w", err)))
}

func TestAlertFiresAtThreshold(t *testing.T) {
	m := NewAlertMonitor()
	now := time.Now()
	m.now = func() time.Time { return now }

	err := New(CategoryDatabase, SeverityHigh, "down") // threshold 5

	for i := 0; i < 4; i++ {
		assert.False(t, m.Record(err), "below threshold at %d", i+1)
	}
	assert.True(t, m.Record(err), "should alert at threshold")
}

func TestAlertCooldownSuppressesRepeat(t *testing.T) {
	m := NewAlertMonitor()
	now := time.Now()
	m.now = func() time.Time { return now }

	err := New(CategoryDatabase, SeverityHigh, "down")
	for i := 0; i < 5; i++ {
		m.Record(err)
	}

	// 冷却期内继续报错不再触发
	assert.False(t, m.Record(err))

	// 冷却期过后再次达到阈值可以触发
	now = now.Add(alertCooldown + time.Minute)
	fired := false
	for i := 0; i < 10; i++ {
		if m.Record(err) {
			fired = true
			break
		}
	}
	assert.True(t, fired)
}

func TestAlertWindowResets(t *testing.T) {
	m := NewAlertMonitor()
	now := time.Now()
	m.now = func() time.Time { return now }

	err := New(CategoryDatabase, SeverityHigh, "down")
	for i := 0; i < 4; i++ {
		m.Record(err)
	}

	// 窗口过期后计数清零
	now = now.Add(alertWindow + time.Second)
	assert.False(t, m.Record(err))

	snap := m.Snapshot()
	assert.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Count)
}
