package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsSharedLogger(t *testing.T) {
	a := Get()
	b := Get()
	assert.Same(t, a, b)

	// 链式调用直接作用在返回的句柄上
	a.Info().Str("check", "ok").Msg("logger smoke test")
}
