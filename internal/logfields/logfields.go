package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyDir        = "dir"
	KeyConfig     = "config"
	KeyTemplate   = "template_root"
	KeyOutput     = "output"
	KeyTokens     = "tokens"
	KeyCount      = "count"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr         { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func Dir(d string) slog.Attr            { return slog.String(KeyDir, d) }
func Config(p string) slog.Attr         { return slog.String(KeyConfig, p) }
func TemplateRoot(p string) slog.Attr   { return slog.String(KeyTemplate, p) }
func Output(p string) slog.Attr         { return slog.String(KeyOutput, p) }
func Tokens(n int) slog.Attr            { return slog.Int(KeyTokens, n) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func Outcome(o string) slog.Attr        { return slog.String(KeyOutcome, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
