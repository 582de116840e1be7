package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
	"git.home.luguber.info/inful/sitestamp/internal/logfields"
	"git.home.luguber.info/inful/sitestamp/internal/metrics"
	"git.home.luguber.info/inful/sitestamp/internal/sitegen"
)

// RunCmd implements 'process-template [run] <config> [output]'.
type RunCmd struct {
	Config string `arg:"" help:"Organization configuration file (JSON or YAML)" type:"path"`
	Output string `arg:"" optional:"" help:"Output directory" default:"output" type:"path"`

	SiteFlags

	Report      string `name:"report" help:"Write a JSON run report to this path (outside the output directory)"`
	MetricsFile string `name:"metrics-file" env:"PROCESS_TEMPLATE_METRICS_FILE" help:"Write Prometheus metrics in textfile format to this path"`
}

func (r *RunCmd) Run(g *Global, _ *CLI) error {
	overrides, err := r.overrides()
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if r.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	report, runErr := sitegen.New(sitegen.Options{
		ConfigPath:   r.Config,
		TemplateRoot: r.TemplateRoot,
		OutputDir:    r.Output,
		Overrides:    overrides,
		Recorder:     recorder,
		Logger:       g.logger(),
	}).Run()

	r.persist(g, report, prom)
	if runErr != nil {
		return runErr
	}
	_, _ = fmt.Fprintln(g.stdout(), report.Summary())
	return nil
}

// persist writes the optional report and metrics. Failures here never change
// the outcome of the run.
func (r *RunCmd) persist(g *Global, report *sitegen.Report, prom *metrics.PrometheusRecorder) {
	if r.Report != "" && report != nil {
		if err := report.Persist(r.Report); err != nil {
			g.logger().Warn("Failed to write run report", logfields.Path(r.Report), logfields.Error(err))
		}
	}
	if prom != nil {
		if err := prom.WriteTextfile(r.MetricsFile); err != nil {
			ce := errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics").Warning().Build()
			g.logger().Warn(ce.Message(), logfields.Path(r.MetricsFile), logfields.Error(err))
		}
	}
}
