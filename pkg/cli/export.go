package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anrid/ny-mortality/pkg/cli/config"
	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/anrid/ny-mortality/pkg/report"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdExport(optionsCfg *config.Options) *cli.Command {
	var (
		dataCfg config.Data
		selCfg  config.Selection
		output  string
	)

	flags := joinFlags(
		dataCfg.Flags(),
		selCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file: .xlsx writes all derived tables, .csv writes the selected records",
				Required:    true,
				Destination: &output,
			},
		},
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Write the derived tables for a year, gender and cause to a file",
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

			derived, err := ds.Derive(selCfg.Configure(ds))
			if err != nil {
				return err
			}

			ext := strings.ToLower(filepath.Ext(output))
			if ext != ".xlsx" && ext != ".csv" {
				return goerr.New("unsupported output format, use .xlsx or .csv", goerr.V("path", output))
			}

			f, err := os.Create(output)
			if err != nil {
				return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
			}
			defer f.Close()

			if ext == ".xlsx" {
				err = report.WriteWorkbook(f, derived)
			} else {
				err = mortality.WriteCSV(f, derived.View)
			}
			if err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return goerr.Wrap(err, "failed to close output file", goerr.V("path", output))
			}

			ctxlog.From(ctx).Info("Exported derived tables",
				slog.String("path", output),
				slog.Int("records", len(derived.View)),
			)
			return nil
		},
	}
}
