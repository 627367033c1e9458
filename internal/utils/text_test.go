package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerptShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "BJP leaders", Excerpt("  BJP leaders  ", 50))
}

func TestExcerptNeverExceedsMax(t *testing.T) {
	long := strings.Repeat("chief minister of delhi ", 20)
	got := Excerpt(long, 200)

	// 截断结果连同省略号必须放得进 size:200 的列
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 200)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExcerptTinyMax(t *testing.T) {
	assert.Equal(t, "ab", Excerpt("abcdef", 2))
}

func TestSanitizeHTMLStripsScript(t *testing.T) {
	out := SanitizeHTML(`<p>profile</p><script>alert(1)</script>`)
	assert.Contains(t, out, "profile")
	assert.NotContains(t, out, "script")
}
