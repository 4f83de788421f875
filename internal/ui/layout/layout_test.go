package layout

import (
	"strings"
	"testing"
)

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = string(rune('a' + i))
	}
	return strings.Join(lines, "\n")
}

func TestViewport(t *testing.T) {
	content := numbered(10) // a..j

	tests := []struct {
		name       string
		offset     int
		height     int
		want       string
		wantOffset int
	}{
		{"top", 0, 3, "a\nb\nc", 0},
		{"middle", 4, 3, "e\nf\ng", 4},
		{"clamped past end", 99, 3, "h\ni\nj", 7},
		{"negative", -5, 3, "a\nb\nc", 0},
		{"taller than content", 2, 20, content, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off := Viewport(content, tt.offset, tt.height)
			if got != tt.want || off != tt.wantOffset {
				t.Errorf("Viewport(%d, %d) = %q, %d; want %q, %d", tt.offset, tt.height, got, off, tt.want, tt.wantOffset)
			}
		})
	}
}

func TestScrollFraction(t *testing.T) {
	tests := []struct {
		offset, total, height int
		want                  float64
	}{
		{0, 100, 20, 0},
		{40, 100, 20, 0.5},
		{80, 100, 20, 1},
		{200, 100, 20, 1},
		{0, 10, 20, 0}, // fits: max(1, negative) guards the divide
		{1, 21, 20, 1},
	}
	for _, tt := range tests {
		if got := ScrollFraction(tt.offset, tt.total, tt.height); got != tt.want {
			t.Errorf("ScrollFraction(%d, %d, %d) = %v, want %v", tt.offset, tt.total, tt.height, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("below minimum should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum should fit")
	}
}

func TestRenderFrame_Height(t *testing.T) {
	header := RenderHeader("Quiz", "3/10", 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := strings.Count(frame, "\n") + 1; got != 30 {
		t.Errorf("frame has %d lines, want 30", got)
	}
}
