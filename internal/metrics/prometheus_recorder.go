package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	registry        *prom.Registry
	stageDuration   *prom.HistogramVec
	runDuration     prom.Histogram
	templateResults *prom.CounterVec
	assetResults    *prom.CounterVec
	warnings        *prom.CounterVec
	runOutcome      *prom.CounterVec
	tokens          prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitestamp",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual run stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitestamp",
			Name:      "run_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.templateResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitestamp",
			Name:      "template_files_total",
			Help:      "Template files processed by result",
		}, []string{"result"})
		pr.assetResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitestamp",
			Name:      "asset_dirs_total",
			Help:      "Asset directories processed by result",
		}, []string{"result"})
		pr.warnings = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitestamp",
			Name:      "warnings_total",
			Help:      "Recoverable problems by issue code",
		}, []string{"code"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitestamp",
			Name:      "run_outcomes_total",
			Help:      "Runs by final outcome",
		}, []string{"outcome"})
		pr.tokens = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitestamp",
			Name:      "tokens",
			Help:      "Placeholders extracted from the configuration in the last run",
		})
		reg.MustRegister(pr.stageDuration, pr.runDuration, pr.templateResults, pr.assetResults, pr.warnings, pr.runOutcome, pr.tokens)
	})
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTemplateResult(result ResultLabel) {
	if p == nil || p.templateResults == nil {
		return
	}
	p.templateResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncAssetResult(result ResultLabel) {
	if p == nil || p.assetResults == nil {
		return
	}
	p.assetResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncWarning(code string) {
	if p == nil || p.warnings == nil {
		return
	}
	p.warnings.WithLabelValues(code).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetTokens(n int) {
	if p == nil || p.tokens == nil {
		return
	}
	p.tokens.Set(float64(n))
}

// WriteTextfile writes the current metric values in the text exposition format,
// suitable for the node exporter textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return fmt.Errorf("metrics recorder not initialized")
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
