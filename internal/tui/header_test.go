package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"winter giveaway", "Winter Giveaway"},
		{"  spring sale  ", "Spring Sale"},
		{"iPhone Launch", "iPhone Launch"},
		{"겨울 이벤트", "겨울 이벤트"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}

func TestHeader_NarrowMode(t *testing.T) {
	t.Parallel()

	out := RenderHeader("winter giveaway", 40)

	assert.Contains(t, out, "Winter Giveaway")
	assert.NotContains(t, out, "═══")
	assert.Equal(t, 1, strings.Count(out, "\n")+1)
}

func TestHeader_WideMode(t *testing.T) {
	t.Parallel()

	out := RenderHeader("winter giveaway", 100)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "═══ Winter Giveaway ═══")
	assert.True(t, strings.HasPrefix(lines[1], " "), "title should be centered")
}

func TestHeader_DefaultTitle(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderHeader("", 0), "Countdown")
}

func TestHeader_WithWidth(t *testing.T) {
	t.Parallel()

	h := NewHeader("launch", 20)
	wide := h.WithWidth(120)

	assert.NotSame(t, h, wide)
	assert.Equal(t, 20, h.width)
	assert.Equal(t, 120, wide.width)
	assert.Equal(t, "launch", wide.title)
}

func TestCenterText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "   abcd", centerText("abcd", "abcd", 10))
	assert.Equal(t, "abcd", centerText("abcd", "abcd", 0))
	assert.Equal(t, "abcd", centerText("abcd", "abcd", 3))
	// "이벤트" is 6 columns wide, so it gets 2 columns of padding in 10.
	assert.Equal(t, "  이벤트", centerText("이벤트", "이벤트", 10))
}
