package config

import (
	"context"
	"log/slog"

	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Data holds the location of the deaths table
type Data struct {
	Path     string
	Snapshot string
}

// Flags returns CLI flags for the data source
func (d *Data) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data",
			Aliases:     []string{"d"},
			Usage:       "Deaths table (.csv, .xlsx or .xls)",
			Category:    "Data",
			Sources:     cli.EnvVars("MORTALITY_DATA"),
			Destination: &d.Path,
		},
		&cli.StringFlag{
			Name:        "snapshot",
			Usage:       "JSON snapshot of the normalized table, written on first use and read afterwards",
			Category:    "Data",
			Sources:     cli.EnvVars("MORTALITY_SNAPSHOT"),
			Destination: &d.Snapshot,
		},
	}
}

// Configure loads the dataset, preferring an existing snapshot. The dataset
// always uses opts. A snapshot saved under another total cause is rebuilt
// from the source table.
func (d *Data) Configure(ctx context.Context, opts mortality.Options) (*mortality.Dataset, error) {
	logger := ctxlog.From(ctx)

	if d.Snapshot != "" {
		ds, found, err := mortality.LoadIfExists(d.Snapshot, opts)
		switch {
		case goerr.HasTag(err, mortality.ErrTagStaleSnapshot) && d.Path != "":
			logger.Info("Rebuilding stale snapshot",
				slog.String("path", d.Snapshot),
				slog.String("total_cause", opts.TotalCause),
			)
		case err != nil:
			return nil, err
		case found:
			logger.Debug("Loaded snapshot",
				slog.String("path", d.Snapshot),
				slog.Int("records", ds.Len()),
			)
			return ds, nil
		}
	}

	if d.Path == "" {
		return nil, goerr.New("no deaths table given, use --data",
			goerr.T(mortality.ErrTagDataLoad))
	}

	ds, err := mortality.Load(ctx, d.Path, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded deaths table",
		slog.String("path", d.Path),
		slog.Int("records", ds.Len()),
	)

	if d.Snapshot != "" {
		if err := ds.Save(d.Snapshot); err != nil {
			return nil, err
		}
		logger.Info("Saved snapshot", slog.String("path", d.Snapshot))
	}

	return ds, nil
}
