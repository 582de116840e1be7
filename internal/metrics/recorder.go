package metrics

import "time"

// ResultLabel enumerates per-item result categories for counters.
type ResultLabel string

const (
	ResultWritten ResultLabel = "written"
	ResultMissing ResultLabel = "missing"
	ResultFailed  ResultLabel = "failed"
	ResultCopied  ResultLabel = "copied"
	ResultSkipped ResultLabel = "skipped"
)

// Recorder defines observability hooks for a stamping run. Implementations
// may forward to Prometheus or anything else; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncTemplateResult(result ResultLabel)
	IncAssetResult(result ResultLabel)
	IncWarning(code string)
	IncRunOutcome(outcome string) // outcome: success|warning|failed
	SetTokens(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncTemplateResult(ResultLabel)              {}
func (NoopRecorder) IncAssetResult(ResultLabel)                 {}
func (NoopRecorder) IncWarning(string)                          {}
func (NoopRecorder) IncRunOutcome(string)                       {}
func (NoopRecorder) SetTokens(int)                              {}
