package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Quiz", HeaderStats{BankName: "go.yaml", BankSize: 12}, 100)
	for _, want := range []string{"kviz", "Quiz", "go.yaml", "■ 12"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if strings.Contains(h, "unsaved") {
		t.Error("clean bank should not be marked unsaved")
	}

	h = RenderHeader("Quiz", HeaderStats{BankSize: 1, Unsaved: true}, 100)
	if !strings.Contains(h, "unsaved") {
		t.Error("expected unsaved marker")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}
