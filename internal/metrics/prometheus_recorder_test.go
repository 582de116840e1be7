package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("files_processed", 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncTemplateResult(ResultWritten)
	pr.IncTemplateResult(ResultWritten)
	pr.IncTemplateResult(ResultMissing)
	pr.IncAssetResult(ResultCopied)
	pr.IncWarning("TEMPLATE_MISSING")
	pr.IncRunOutcome("warning")
	pr.SetTokens(12)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.templateResults.WithLabelValues("written")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.templateResults.WithLabelValues("missing")), 0)
	assert.InDelta(t, 12, testutil.ToFloat64(pr.tokens), 0)
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncTemplateResult(ResultWritten)
	pr.ObserveRunDuration(time.Second)
	pr.SetTokens(1)
	require.Error(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome("success")

	path := filepath.Join(t.TempDir(), "sitestamp.prom")
	require.NoError(t, pr.WriteTextfile(path))

	// #nosec G304 -- test-controlled path.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `sitestamp_run_outcomes_total{outcome="success"} 1`))
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncWarning("x")
	r.IncRunOutcome("success")
}
