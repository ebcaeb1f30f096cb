package mortality

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Canonical column keys.
const (
	colYear     = "year"
	colAgeGroup = "age-group"
	colSex      = "sex"
	colRace     = "race-or-ethnicity"
	colCause    = "selected-cause-of-death"
	colDeaths   = "deaths"
)

var requiredColumns = []string{colYear, colAgeGroup, colSex, colRace, colCause, colDeaths}

// Header names seen in the different exports of the table.
var columnAliases = map[string]string{
	"race-ethnicity": colRace,
	"race":           colRace,
	"cause":          colCause,
	"cause-of-death": colCause,
}

// canonicalKey turns a header name such as "Race/Ethnicity" into the key
// form "race-ethnicity".
func canonicalKey(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer(" ", "-", "/", "-", "_", "-").Replace(name)
	if alias, ok := columnAliases[name]; ok {
		return alias
	}
	return name
}

// Load reads and normalizes the deaths table at path. The source format is
// picked from the file extension.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	n, err := newNormalizer(opts)
	if err != nil {
		return nil, err
	}

	f := &File{Path: path}
	if err := ExtractDataFromFile(ctx, f, n.handle); err != nil {
		return nil, goerr.Wrap(err, "failed to load deaths table",
			goerr.V("path", path), goerr.V("format", f.Format().String()), goerr.T(ErrTagDataLoad))
	}

	return n.finish(ctx)
}

// LoadReader reads and normalizes a CSV deaths table from r.
func LoadReader(ctx context.Context, r io.Reader, opts Options) (*Dataset, error) {
	n, err := newNormalizer(opts)
	if err != nil {
		return nil, err
	}

	if err := ExtractDataFromCSV(ctx, r, n.handle); err != nil {
		return nil, goerr.Wrap(err, "failed to load deaths table", goerr.T(ErrTagDataLoad))
	}

	return n.finish(ctx)
}

type normalizer struct {
	opts    Options
	columns map[string]int
	line    int
	dropped int
	records []Record
}

func newNormalizer(opts Options) (*normalizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid load options", goerr.T(ErrTagDataLoad))
	}
	return &normalizer{opts: opts}, nil
}

func (n *normalizer) handle(row []string) error {
	n.line++

	if isBlank(row) {
		return nil
	}

	if n.columns == nil {
		return n.readHeader(row)
	}

	cell := func(key string) string {
		i := n.columns[key]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	cause := cell(colCause)
	if cause == n.opts.TotalCause {
		n.dropped++
		return nil
	}
	if cause == "" {
		return n.rowError("empty cause of death", cause)
	}

	year, err := strconv.Atoi(cell(colYear))
	if err != nil {
		return n.rowError("invalid year", cell(colYear))
	}

	age, ok := NormalizeAgeGroup(cell(colAgeGroup))
	if !ok {
		return n.rowError("unknown age group", age)
	}

	sex, ok := NormalizeSex(cell(colSex))
	if !ok {
		return n.rowError("unknown sex", sex)
	}

	race := cell(colRace)
	if race == "" {
		return n.rowError("empty race or ethnicity", race)
	}

	deaths, err := parseCount(cell(colDeaths))
	if err != nil {
		return n.rowError("invalid deaths count", cell(colDeaths))
	}

	n.records = append(n.records, Record{
		Year:     year,
		AgeGroup: age,
		Sex:      sex,
		Race:     race,
		Cause:    cause,
		Deaths:   deaths,
	})
	return nil
}

func (n *normalizer) readHeader(row []string) error {
	columns := make(map[string]int)
	for i, name := range row {
		key := canonicalKey(name)
		if _, dup := columns[key]; dup {
			return goerr.New("duplicate column",
				goerr.V("column", name), goerr.T(ErrTagSchema), goerr.T(ErrTagDataLoad))
		}
		columns[key] = i
	}

	var missing []string
	for _, key := range requiredColumns {
		if _, ok := columns[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return goerr.New("source does not match the expected columns",
			goerr.V("missing", missing), goerr.V("header", row),
			goerr.T(ErrTagSchema), goerr.T(ErrTagDataLoad))
	}

	n.columns = columns
	return nil
}

func (n *normalizer) rowError(msg, value string) error {
	return goerr.New(msg,
		goerr.V("line", n.line), goerr.V("value", value), goerr.T(ErrTagDataLoad))
}

func (n *normalizer) finish(ctx context.Context) (*Dataset, error) {
	if n.columns == nil {
		return nil, goerr.New("source has no header row",
			goerr.T(ErrTagSchema), goerr.T(ErrTagDataLoad))
	}

	ctxlog.From(ctx).Debug("Normalized deaths table",
		"records", len(n.records),
		"dropped_total_rows", n.dropped,
	)

	return NewDataset(n.records, n.opts), nil
}

// parseCount parses a non-negative count, allowing thousands separators.
func parseCount(v string) (int64, error) {
	v = strings.ReplaceAll(v, ",", "")
	c, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	if c < 0 {
		return 0, strconv.ErrRange
	}
	return c, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
