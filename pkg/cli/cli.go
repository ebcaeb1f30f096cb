package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/anrid/ny-mortality/pkg/cli/config"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := newApp(os.Stdout, os.Stderr).Run(ctx, args); err != nil {
		slog.Default().Error("command failed", slog.Any("error", err))
		return goerr.Wrap(err, "CLI execution failed")
	}
	return nil
}

// newApp builds the command tree. Reports go to stdout, logs to stderr.
func newApp(stdout, stderr io.Writer) *cli.Command {
	var (
		loggerCfg  config.Logger
		optionsCfg config.Options
	)

	return &cli.Command{
		Name:      "mortality",
		Usage:     "Deaths by age group, sex, race/ethnicity and cause of death in New York State",
		Version:   "0.1.0",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     joinFlags(loggerCfg.Flags(), optionsCfg.Flags()),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure(stderr)
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdFetch(&optionsCfg),
			cmdInfo(&optionsCfg),
			cmdShow(&optionsCfg),
			cmdExport(&optionsCfg),
		},
	}
}
