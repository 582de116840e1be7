package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
	"git.home.luguber.info/inful/sitestamp/internal/sitegen"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run    RunCmd    `cmd:"" default:"withargs" help:"Generate a site from a configuration file (default command)"`
	Tokens TokensCmd `cmd:"" help:"Print the placeholders a configuration file provides"`
	Watch  WatchCmd  `cmd:"" help:"Generate once, then regenerate whenever the configuration or template changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// SiteFlags are shared by every command that reads a configuration and a template.
type SiteFlags struct {
	TemplateRoot string   `name:"template-root" short:"t" env:"PROCESS_TEMPLATE_ROOT" help:"Template tree to stamp from" default:"template"`
	Set          []string `name:"set" help:"Override configuration values (dotted.path=value)"`
}

func (f SiteFlags) overrides() ([]sitegen.Override, error) {
	pairs, err := parseSetFlags(f.Set)
	if err != nil {
		return nil, err
	}
	out := make([]sitegen.Override, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, sitegen.Override{Path: p[0], Value: p[1]})
	}
	return out, nil
}

// parseSetFlags splits key=value entries. Order is kept so later entries win.
func parseSetFlags(values []string) ([][2]string, error) {
	result := make([][2]string, 0, len(values))
	for _, entry := range values {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, errors.ValidationError(fmt.Sprintf("invalid --set value: %s", entry)).Build()
		}
		result = append(result, [2]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])})
	}
	return result, nil
}
