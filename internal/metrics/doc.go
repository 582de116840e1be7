// Package metrics provides observability hooks for site stamping runs.
//
// Components receive a Recorder through their options. NoopRecorder is the
// default, so callers never need nil checks. When the operator asks for a
// metrics file, the CLI swaps in a PrometheusRecorder and writes its registry
// with WriteTextfile once the run finishes:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	report, err := sitegen.New(sitegen.Options{Recorder: rec, ...}).Run()
//	_ = rec.WriteTextfile("/var/lib/node_exporter/sitestamp.prom")
package metrics
