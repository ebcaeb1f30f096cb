package cli

import (
	"context"
	"log/slog"

	"github.com/anrid/ny-mortality/pkg/cli/config"
	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdFetch(optionsCfg *config.Options) *cli.Command {
	var url, output string

	return &cli.Command{
		Name:  "fetch",
		Usage: "Download the deaths table and check that it loads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "url",
				Usage:       "CSV export URL of the deaths table",
				Required:    true,
				Sources:     cli.EnvVars("MORTALITY_SOURCE_URL"),
				Destination: &url,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Where to store the downloaded table",
				Value:       "mortality.csv",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			opts, err := optionsCfg.Configure()
			if err != nil {
				return err
			}

			size, err := mortality.Download(ctx, nil, url, output)
			if err != nil {
				return err
			}

			ds, err := mortality.Load(ctx, output, opts)
			if err != nil {
				return goerr.Wrap(err, "downloaded table does not load", goerr.V("path", output))
			}

			first, last := ds.YearRange()
			logger.Info("Fetched deaths table",
				slog.String("path", output),
				slog.Int64("bytes", size),
				slog.Int("records", ds.Len()),
				slog.Int("first_year", first),
				slog.Int("last_year", last),
			)
			return nil
		},
	}
}
