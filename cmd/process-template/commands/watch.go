package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitestamp/internal/logfields"
	"git.home.luguber.info/inful/sitestamp/internal/sitegen"
)

// WatchCmd implements 'process-template watch <config> [output]'.
type WatchCmd struct {
	Config string `arg:"" help:"Organization configuration file (JSON or YAML)" type:"path"`
	Output string `arg:"" optional:"" help:"Output directory" default:"output" type:"path"`

	SiteFlags

	Debounce     time.Duration `name:"debounce" help:"Quiet period before regenerating" default:"300ms"`
	PollInterval time.Duration `name:"poll-interval" env:"PROCESS_TEMPLATE_POLL_INTERVAL" help:"Also regenerate on this interval (0 disables)" default:"0s"`
}

func (w *WatchCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return w.watch(ctx, g)
}

func (w *WatchCmd) watch(ctx context.Context, g *Global) error {
	overrides, err := w.overrides()
	if err != nil {
		return err
	}
	logger := g.logger()
	opts := sitegen.Options{
		ConfigPath:   w.Config,
		TemplateRoot: w.TemplateRoot,
		OutputDir:    w.Output,
		Overrides:    overrides,
		Logger:       logger,
	}

	// The first run must succeed; later configuration errors are logged and
	// the watcher keeps going so the operator can fix the file.
	if _, err := sitegen.New(opts).Run(); err != nil {
		return err
	}

	rebuild := func() {
		report, err := sitegen.New(opts).Run()
		if err != nil {
			logger.Error("Regeneration failed", logfields.Config(w.Config), logfields.Error(err))
			return
		}
		logger.Info("Regenerated site", logfields.Outcome(string(report.Outcome)))
	}
	return sitegen.Watch(ctx, sitegen.WatchOptions{
		ConfigPath:   w.Config,
		TemplateRoot: w.TemplateRoot,
		OutputDir:    w.Output,
		Debounce:     w.Debounce,
		PollInterval: w.PollInterval,
		Logger:       logger,
	}, rebuild)
}
