package about

import (
	"strings"
	"testing"

	"github.com/abhisek/prahar/internal/prahar"
)

func TestAboutScreen_ListsEveryPrahar(t *testing.T) {
	view := New().View(100, 40)
	for _, p := range prahar.All() {
		if !strings.Contains(view, p.Name) {
			t.Errorf("view missing %q", p.Name)
		}
	}
}

func TestRenderBanner_CompactFallback(t *testing.T) {
	if !strings.Contains(RenderBanner(40), bannerCompact) {
		t.Error("expected compact banner below 54 columns")
	}
	if strings.Contains(RenderBanner(80), bannerCompact) {
		t.Error("expected full banner at 80 columns")
	}
}
