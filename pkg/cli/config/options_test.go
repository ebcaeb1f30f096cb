package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anrid/ny-mortality/pkg/cli/config"
	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOptionsConfigure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.Options
		opts, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Equal(t, opts, mortality.DefaultOptions())
	})

	t.Run("file then flags", func(t *testing.T) {
		path := writeFile(t, "options.yaml", "baseline_year: 2005\nexcluded_cause: Other\n")

		cfg := config.Options{File: path, DefaultYear: 2015}
		opts, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Equal(t, opts.BaselineYear, 2005)
		gt.Equal(t, opts.ExcludedCause, "Other")
		gt.Equal(t, opts.DefaultYear, 2015)
		gt.Equal(t, opts.TotalCause, mortality.DefaultTotalCause)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := config.Options{File: filepath.Join(t.TempDir(), "none.yaml")}
		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("configuration file not found")
	})

	t.Run("broken file", func(t *testing.T) {
		cfg := config.Options{File: writeFile(t, "options.yaml", "baseline_year: [")}
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		cfg := config.Options{File: writeFile(t, "options.yaml", "total_cause: \"\"\n")}
		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("invalid configuration")
	})
}

func TestLoggerConfigure(t *testing.T) {
	cfg := config.Logger{Level: "debug", Format: "json"}
	logger, err := cfg.Configure(os.Stderr)
	gt.NoError(t, err)
	gt.V(t, logger).NotNil()

	cfg = config.Logger{Level: "loud", Format: "json"}
	_, err = cfg.Configure(os.Stderr)
	gt.Error(t, err)

	cfg = config.Logger{Level: "info", Format: "xml"}
	_, err = cfg.Configure(os.Stderr)
	gt.Error(t, err)
}

func TestSelectionConfigure(t *testing.T) {
	ds := mortality.NewDataset([]mortality.Record{
		{Year: 2010, AgeGroup: "<1", Sex: "Female", Race: "Hispanic", Cause: "Cancer", Deaths: 1},
		{Year: 2014, AgeGroup: "<1", Sex: "Male", Race: "Hispanic", Cause: "Stroke", Deaths: 1},
	}, mortality.DefaultOptions())

	sel := (&config.Selection{}).Configure(ds)
	gt.Equal(t, sel, mortality.Selection{Year: 2012, Gender: mortality.GenderAll, Cause: "Cancer"})

	sel = (&config.Selection{Year: 2014, Gender: "Male", Cause: "Stroke"}).Configure(ds)
	gt.Equal(t, sel, mortality.Selection{Year: 2014, Gender: "Male", Cause: "Stroke"})
}

func TestDataConfigure(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()
	source := filepath.Join(dir, "deaths.csv")
	snapshot := filepath.Join(dir, "deaths.json")
	gt.NoError(t, os.WriteFile(source, []byte(
		"Year,Age Group,Sex,Race or Ethnicity,Selected Cause of Death,Deaths\n"+
			"2010,<1,F,Hispanic,Cancer,5\n"), 0644))

	cfg := config.Data{Path: source, Snapshot: snapshot}
	ds, err := cfg.Configure(ctx, mortality.DefaultOptions())
	gt.NoError(t, err)
	gt.Equal(t, ds.Len(), 1)

	// The snapshot is preferred once written.
	gt.NoError(t, os.Remove(source))
	ds, err = cfg.Configure(ctx, mortality.DefaultOptions())
	gt.NoError(t, err)
	gt.Equal(t, ds.Len(), 1)

	// Options come from the caller, not from the snapshot.
	opts := mortality.DefaultOptions()
	opts.BaselineYear = 2005
	ds, err = cfg.Configure(ctx, opts)
	gt.NoError(t, err)
	gt.Equal(t, ds.Options(), opts)
	d, err := ds.Derive(mortality.Selection{Year: 2010, Gender: mortality.GenderAll, Cause: "Cancer"})
	gt.NoError(t, err)
	gt.Equal(t, d.BaselineYear, 2005)

	// A snapshot saved under another total cause needs the source table.
	opts.TotalCause = "All Causes"
	_, err = cfg.Configure(ctx, opts)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, mortality.ErrTagDataLoad))

	_, err = (&config.Data{Snapshot: snapshot}).Configure(ctx, opts)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, mortality.ErrTagStaleSnapshot))

	gt.NoError(t, os.WriteFile(source, []byte(
		"Year,Age Group,Sex,Race or Ethnicity,Selected Cause of Death,Deaths\n"+
			"2010,<1,F,Hispanic,Cancer,5\n"+
			"2010,<1,F,Hispanic,All Causes,5\n"), 0644))
	ds, err = cfg.Configure(ctx, opts)
	gt.NoError(t, err)
	gt.Equal(t, ds.Len(), 1)

	// The rebuilt snapshot now serves the new total cause.
	gt.NoError(t, os.Remove(source))
	ds, err = cfg.Configure(ctx, opts)
	gt.NoError(t, err)
	gt.Equal(t, ds.Options().TotalCause, "All Causes")

	_, err = (&config.Data{}).Configure(ctx, mortality.DefaultOptions())
	gt.Error(t, err)
}
