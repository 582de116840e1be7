package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitestamp/cmd/process-template/commands"
	"git.home.luguber.info/inful/sitestamp/internal/config"
	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
	"git.home.luguber.info/inful/sitestamp/internal/version"
)

func main() {
	// Environment from .env must be in place before kong resolves env-tagged flags.
	envFile, envErr := config.LoadEnvFile()

	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("process-template"),
		kong.Description("Stamp a per-organization website out of a template tree."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if envErr == nil && cli.Verbose {
		_, _ = fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envFile)
	}

	global := &commands.Global{Logger: slog.Default(), Stdout: os.Stdout}
	if err := parser.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
