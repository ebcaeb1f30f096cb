package config

import (
	"log/slog"
	"os"

	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Options holds the pipeline options. Values set by flags override the YAML
// file, which overrides the built-in defaults.
type Options struct {
	File          string
	BaselineYear  int
	DefaultYear   int
	TotalCause    string
	ExcludedCause string
}

// Flags returns CLI flags for pipeline options
func (o *Options) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "YAML file with pipeline options",
			Category:    "Pipeline",
			Sources:     cli.EnvVars("MORTALITY_CONFIG"),
			Destination: &o.File,
		},
		&cli.IntFlag{
			Name:        "baseline-year",
			Usage:       "Reference year of the percentage change",
			Category:    "Pipeline",
			Sources:     cli.EnvVars("MORTALITY_BASELINE_YEAR"),
			Destination: &o.BaselineYear,
		},
		&cli.IntFlag{
			Name:        "default-year",
			Usage:       "Year selected when --year is not given",
			Category:    "Pipeline",
			Sources:     cli.EnvVars("MORTALITY_DEFAULT_YEAR"),
			Destination: &o.DefaultYear,
		},
		&cli.StringFlag{
			Name:        "total-cause",
			Usage:       "Cause of death marking aggregate rows, dropped at load",
			Category:    "Pipeline",
			Sources:     cli.EnvVars("MORTALITY_TOTAL_CAUSE"),
			Destination: &o.TotalCause,
		},
		&cli.StringFlag{
			Name:        "excluded-cause",
			Usage:       "Cause of death left out of the percentage change",
			Category:    "Pipeline",
			Sources:     cli.EnvVars("MORTALITY_EXCLUDED_CAUSE"),
			Destination: &o.ExcludedCause,
		},
	}
}

// Configure resolves the pipeline options
func (o *Options) Configure() (mortality.Options, error) {
	opts := mortality.DefaultOptions()

	if o.File != "" {
		loaded, err := LoadOptionsFromFile(o.File, opts)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if o.BaselineYear != 0 {
		opts.BaselineYear = o.BaselineYear
	}
	if o.DefaultYear != 0 {
		opts.DefaultYear = o.DefaultYear
	}
	if o.TotalCause != "" {
		opts.TotalCause = o.TotalCause
	}
	if o.ExcludedCause != "" {
		opts.ExcludedCause = o.ExcludedCause
	}

	if err := opts.Validate(); err != nil {
		return opts, goerr.Wrap(err, "invalid pipeline options")
	}
	return opts, nil
}

// LoadOptionsFromFile reads pipeline options from a YAML file. Keys missing
// from the file keep their value in base.
func LoadOptionsFromFile(path string, base mortality.Options) (mortality.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return base, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	opts := base
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return base, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}

	if err := opts.Validate(); err != nil {
		return base, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}
	return opts, nil
}

// LogValue returns structured log value
func (o Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", o.File),
		slog.Int("baseline_year", o.BaselineYear),
		slog.Int("default_year", o.DefaultYear),
	)
}
