package style

import (
	"strings"
	"testing"

	"github.com/andybarron/preferences-go/pkg/errors"
)

func TestRenderFields(t *testing.T) {
	DisableColor()

	out := RenderFields(map[string]string{
		"zeta":  "last",
		"alpha": "first",
	})

	if !strings.Contains(out, "alpha") || !strings.Contains(out, "zeta") {
		t.Errorf("output missing fields: %s", out)
	}
	if strings.Index(out, "alpha") > strings.Index(out, "zeta") {
		t.Errorf("fields should be sorted: %s", out)
	}
}

func TestRenderFieldsEmpty(t *testing.T) {
	DisableColor()

	out := RenderFields(nil)
	if !strings.Contains(out, "No preferences") {
		t.Errorf("unexpected empty rendering: %s", out)
	}
}

func TestRenderKeyList(t *testing.T) {
	DisableColor()

	out := RenderKeyList([]string{"options/audio", "options/graphics"})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), out)
	}

	if RenderKeyList(nil) == "" {
		t.Error("empty list should still render a notice")
	}
}

func TestRenderError(t *testing.T) {
	DisableColor()

	if RenderError(nil) != "" {
		t.Error("nil error should render empty")
	}

	out := RenderError(errors.New(errors.ErrNotFound, "no such key"))
	if !strings.Contains(out, "NOT_FOUND") {
		t.Errorf("coded errors should surface their code: %s", out)
	}
	if !strings.Contains(out, "no such key") {
		t.Errorf("message missing: %s", out)
	}
}

func TestStylingHelpersPlain(t *testing.T) {
	DisableColor()

	if Title("x") != "x" || Key("x") != "x" || Muted("x") != "x" {
		t.Error("disabled color should pass text through unchanged")
	}
}
