package termui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	for _, tc := range []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "C:\\>", 10, []string{"C:\\>"}},
		{"empty", "", 10, []string{""}},
		{"lines", "a\nb\n", 10, []string{"a", "b", ""}},
		{"breaks", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"wide runes", "日本語です", 4, []string{"日本", "語で", "す"}},
		{"combining", "e\u0301e\u0301e\u0301", 2, []string{"e\u0301e\u0301", "e\u0301"}},
		{"no width", "abcdef", 0, []string{"abcdef"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrapText(tc.text, tc.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "日本", padRight("日本", 3))
	assert.Equal(t, "日 ", padRight("日", 3))
}
