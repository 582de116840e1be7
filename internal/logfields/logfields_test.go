package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Stage", KeyStage, "config_loaded", Stage("config_loaded")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "src/pages/index.astro", File("src/pages/index.astro")},
		{"Dir", KeyDir, "public", Dir("public")},
		{"Config", KeyConfig, "org.json", Config("org.json")},
		{"TemplateRoot", KeyTemplate, "template", TemplateRoot("template")},
		{"Output", KeyOutput, "out", Output("out")},
		{"Outcome", KeyOutcome, "success", Outcome("success")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if got := c.attr.Value.String(); got != c.attrVal {
			t.Errorf("%s: value = %q, want %q", c.name, got, c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := Tokens(3); a.Key != KeyTokens || a.Value.Int64() != 3 {
		t.Errorf("Tokens attr unexpected: %v", a)
	}
	if a := Count(7); a.Key != KeyCount || a.Value.Int64() != 7 {
		t.Errorf("Count attr unexpected: %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Errorf("DurationMS attr unexpected: %v", a)
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Errorf("nil error should produce empty value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Errorf("unexpected error attr %v", a)
	}
}
