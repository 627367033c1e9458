package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"May 2019", "2019-05-01"},
		{"15 May 2019", "2019-05-15"},
		{"may 2019", "2019-05-01"},
		{"January 2005", "2005-01-01"},
		{"2014", "2014-01-01"},
		{"2019-05-15", "2019-05-15"},
		{"15/05/2019", "2019-05-15"},
		{"05/12/2019", "2019-12-05"}, // 日在前：12 月 5 日
		{"26/01/1950", "1950-01-26"},
		{"not a date", "1970-01-01"},
		{"", "1970-01-01"},
		{"   ", "1970-01-01"},
		{"Mayish 2019", "1970-01-01"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeDate(tc.in), "input %q", tc.in)
	}
}
