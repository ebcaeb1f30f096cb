package mortality

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Dataset is the normalized deaths table of one session. It is never
// mutated after construction; accessors return copies.
type Dataset struct {
	records []Record
	opts    Options

	years  []int
	causes []string
	sexes  []string
	races  []string
}

// NewDataset builds a dataset from already normalized records. The slice is
// copied.
func NewDataset(records []Record, opts Options) *Dataset {
	ds := &Dataset{
		records: append([]Record(nil), records...),
		opts:    opts,
	}

	seenYear := make(map[int]bool)
	seenCause := make(map[string]bool)
	seenSex := make(map[string]bool)
	seenRace := make(map[string]bool)

	for _, r := range ds.records {
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			ds.years = append(ds.years, r.Year)
		}
		if !seenCause[r.Cause] {
			seenCause[r.Cause] = true
			ds.causes = append(ds.causes, r.Cause)
		}
		if !seenSex[r.Sex] {
			seenSex[r.Sex] = true
			ds.sexes = append(ds.sexes, r.Sex)
		}
		if !seenRace[r.Race] {
			seenRace[r.Race] = true
			ds.races = append(ds.races, r.Race)
		}
	}

	sort.Ints(ds.years)
	SortRaces(ds.races)

	return ds
}

func (ds *Dataset) Options() Options { return ds.opts }

func (ds *Dataset) Len() int { return len(ds.records) }

// Records returns a copy of all records in load order.
func (ds *Dataset) Records() []Record {
	return append([]Record(nil), ds.records...)
}

// Years returns the distinct years in ascending order.
func (ds *Dataset) Years() []int {
	return append([]int(nil), ds.years...)
}

// YearRange returns the first and last year present. Both are zero for an
// empty dataset.
func (ds *Dataset) YearRange() (first, last int) {
	if len(ds.years) == 0 {
		return 0, 0
	}
	return ds.years[0], ds.years[len(ds.years)-1]
}

// Causes returns the distinct causes in order of first appearance.
func (ds *Dataset) Causes() []string {
	return append([]string(nil), ds.causes...)
}

// Genders returns the gender choices: GenderAll followed by the sexes in
// order of first appearance.
func (ds *Dataset) Genders() []string {
	return append([]string{GenderAll}, ds.sexes...)
}

// Races returns the distinct races in display order.
func (ds *Dataset) Races() []string {
	return append([]string(nil), ds.races...)
}

// Filter returns the records matching the selection.
func (ds *Dataset) Filter(sel Selection) []Record {
	return Filter(ds.records, sel)
}

// Info writes a short summary of the dataset.
func (ds *Dataset) Info(w io.Writer) {
	first, last := ds.YearRange()

	fmt.Fprintf(w, `
	Years        : %d - %d
	Records      : %d
	Causes       : %d
	Races        : %d
	Total Deaths : %d
	`, first, last, len(ds.records), len(ds.causes), len(ds.races), TotalDeaths(ds.records))
	fmt.Fprintln(w, "")
}

// A snapshot holds normalized records only. TotalCause is kept because the
// rows it dropped cannot be recovered under another sentinel.
type snapshot struct {
	TotalCause string    `json:"total_cause"`
	Records    []Record  `json:"records"`
	Saved      time.Time `json:"saved"`
}

// Save writes the normalized records to a JSON snapshot.
func (ds *Dataset) Save(path string) error {
	js, err := json.MarshalIndent(snapshot{
		TotalCause: ds.opts.TotalCause,
		Records:    ds.records,
		Saved:      time.Now(),
	}, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode snapshot")
	}
	if err := os.WriteFile(path, js, 0644); err != nil {
		return goerr.Wrap(err, "failed to write snapshot", goerr.V("path", path))
	}
	return nil
}

// LoadIfExists reads a snapshot written by Save and builds a dataset with
// opts. found is false when the file does not exist. A snapshot saved under
// another total cause sentinel fails with ErrTagStaleSnapshot.
func LoadIfExists(path string, opts Options) (ds *Dataset, found bool, err error) {
	if err := opts.Validate(); err != nil {
		return nil, false, goerr.Wrap(err, "invalid load options", goerr.T(ErrTagDataLoad))
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, goerr.Wrap(err, "failed to stat snapshot",
			goerr.V("path", path), goerr.T(ErrTagDataLoad))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to read snapshot",
			goerr.V("path", path), goerr.T(ErrTagDataLoad))
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, goerr.Wrap(err, "failed to decode snapshot",
			goerr.V("path", path), goerr.T(ErrTagDataLoad))
	}
	if snap.TotalCause != opts.TotalCause {
		return nil, false, goerr.New("snapshot was saved with another total cause",
			goerr.V("path", path),
			goerr.V("saved", snap.TotalCause),
			goerr.V("requested", opts.TotalCause),
			goerr.T(ErrTagStaleSnapshot))
	}

	records := make([]Record, 0, len(snap.Records))
	for i, r := range snap.Records {
		checked, err := checkRecord(r)
		if err != nil {
			return nil, false, goerr.Wrap(err, "invalid snapshot record",
				goerr.V("path", path), goerr.V("index", i), goerr.T(ErrTagDataLoad))
		}
		records = append(records, checked)
	}

	return NewDataset(records, opts), true, nil
}

// checkRecord applies the load-time normalization to a record that did not
// come through Load.
func checkRecord(r Record) (Record, error) {
	age, ok := NormalizeAgeGroup(r.AgeGroup)
	if !ok {
		return r, goerr.New("unknown age group", goerr.V("value", r.AgeGroup), goerr.T(ErrTagDataLoad))
	}
	sex, ok := NormalizeSex(r.Sex)
	if !ok {
		return r, goerr.New("unknown sex", goerr.V("value", r.Sex), goerr.T(ErrTagDataLoad))
	}
	if r.Deaths < 0 {
		return r, goerr.New("negative deaths count", goerr.V("value", r.Deaths), goerr.T(ErrTagDataLoad))
	}
	if r.Year <= 0 || r.Race == "" || r.Cause == "" {
		return r, goerr.New("incomplete record", goerr.V("record", r), goerr.T(ErrTagDataLoad))
	}

	r.AgeGroup = age
	r.Sex = sex
	return r, nil
}

// WriteCSV writes records as a CSV table with the published header, so the
// output can be loaded again.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Year", "Age Group", "Sex", "Race or Ethnicity", "Selected Cause of Death", "Deaths"}); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Year),
			r.AgeGroup,
			r.Sex,
			r.Race,
			r.Cause,
			strconv.FormatInt(r.Deaths, 10),
		}
		if err := writer.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}
