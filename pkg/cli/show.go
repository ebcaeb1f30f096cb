package cli

import (
	"context"
	"log/slog"

	"github.com/anrid/ny-mortality/pkg/cli/config"
	"github.com/anrid/ny-mortality/pkg/report"
	"github.com/davecgh/go-spew/spew"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdShow(optionsCfg *config.Options) *cli.Command {
	var (
		dataCfg config.Data
		selCfg  config.Selection
		dump    bool
	)

	flags := joinFlags(
		dataCfg.Flags(),
		selCfg.Flags(),
		[]cli.Flag{
			&cli.BoolFlag{
				Name:        "dump",
				Usage:       "Dump the derived tables instead of rendering them",
				Destination: &dump,
			},
		},
	)

	return &cli.Command{
		Name:  "show",
		Usage: "Print the four derived tables for a year, gender and cause",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			opts, err := optionsCfg.Configure()
			if err != nil {
				return err
			}
			ds, err := dataCfg.Configure(ctx, opts)
			if err != nil {
				return err
			}

			sel := selCfg.Configure(ds)
			ctxlog.From(ctx).Debug("Deriving tables",
				slog.Int("year", sel.Year),
				slog.String("gender", sel.Gender),
				slog.String("cause", sel.Cause),
			)

			derived, err := ds.Derive(sel)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if dump {
				spew.Fdump(w, derived)
				return nil
			}

			report.NewPrinter(w).Render(derived)
			return nil
		},
	}
}
