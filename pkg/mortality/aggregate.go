package mortality

import (
	"fmt"
	"sort"
)

// RaceDeaths is one bar of the deaths-by-race view.
type RaceDeaths struct {
	Race   string
	Deaths int64
}

// AgeRaceCell is one cell of the age group by race heatmap.
type AgeRaceCell struct {
	AgeGroup   string
	Race       string
	Deaths     int64
	Proportion float64
}

// CauseShare is one slice of the cause-of-death proportions for a year.
type CauseShare struct {
	Cause      string
	Deaths     int64
	Percentage float64
}

// Percent is a percentage that may be undefined.
type Percent struct {
	Value float64
	Valid bool
}

func (p Percent) String() string {
	if !p.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", p.Value)
}

// ChangePoint is the change of a cause's deaths in one year relative to the
// baseline year.
type ChangePoint struct {
	Cause          string
	Year           int
	Deaths         int64
	BaselineDeaths int64
	Change         Percent
}

// AggregateByRace sums deaths per race, largest first. Ties follow RaceOrder.
func AggregateByRace(view []Record) []RaceDeaths {
	sums := make(map[string]int64)
	for _, r := range view {
		sums[r.Race] += r.Deaths
	}

	result := make([]RaceDeaths, 0, len(sums))
	for race, deaths := range sums {
		result = append(result, RaceDeaths{Race: race, Deaths: deaths})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Deaths != result[j].Deaths {
			return result[i].Deaths > result[j].Deaths
		}
		return raceLess(result[i].Race, result[j].Race)
	})
	return result
}

// AggregateByAgeAndRace sums deaths per (age group, race) and sets each
// cell's share of the view's total. Shares are 0 when the total is 0.
func AggregateByAgeAndRace(view []Record) []AgeRaceCell {
	type key struct{ age, race string }

	sums := make(map[key]int64)
	for _, r := range view {
		sums[key{r.AgeGroup, r.Race}] += r.Deaths
	}

	total := TotalDeaths(view)

	result := make([]AgeRaceCell, 0, len(sums))
	for k, deaths := range sums {
		cell := AgeRaceCell{AgeGroup: k.age, Race: k.race, Deaths: deaths}
		if total > 0 {
			cell.Proportion = float64(deaths) / float64(total)
		}
		result = append(result, cell)
	}

	sort.Slice(result, func(i, j int) bool {
		ai, aj := ageGroupIndex(result[i].AgeGroup), ageGroupIndex(result[j].AgeGroup)
		if ai != aj {
			return ai < aj
		}
		return raceLess(result[i].Race, result[j].Race)
	})
	return result
}

// AggregateCauseProportions sums the deaths of every cause in the year and
// sets each cause's percentage of the year's total. Percentages are 0 when
// the year has no deaths.
func AggregateCauseProportions(records []Record, year int) []CauseShare {
	sums := make(map[string]int64)
	var total int64
	for _, r := range records {
		if r.Year != year {
			continue
		}
		sums[r.Cause] += r.Deaths
		total += r.Deaths
	}

	result := make([]CauseShare, 0, len(sums))
	for cause, deaths := range sums {
		share := CauseShare{Cause: cause, Deaths: deaths}
		if total > 0 {
			share.Percentage = 100 * float64(deaths) / float64(total)
		}
		result = append(result, share)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Cause < result[j].Cause
	})
	return result
}

// YearOverYearOptions configures ComputeYearOverYearChange.
type YearOverYearOptions struct {
	BaselineYear int
	// ExcludedCause is left out entirely. Empty excludes nothing.
	ExcludedCause string
	// Gender restricts the records to one sex unless it is GenderAll or empty.
	Gender string
}

// ComputeYearOverYearChange sums deaths per (cause, year) and reports the
// percentage change against the cause's baseline year total. The change is
// invalid when the cause has no baseline deaths. Baseline year points are not
// returned.
func ComputeYearOverYearChange(records []Record, opts YearOverYearOptions) []ChangePoint {
	type key struct {
		cause string
		year  int
	}

	sums := make(map[key]int64)
	baseline := make(map[string]int64)

	for _, r := range records {
		if opts.ExcludedCause != "" && r.Cause == opts.ExcludedCause {
			continue
		}
		if opts.Gender != "" && opts.Gender != GenderAll && r.Sex != opts.Gender {
			continue
		}
		if r.Year == opts.BaselineYear {
			baseline[r.Cause] += r.Deaths
			continue
		}
		sums[key{r.Cause, r.Year}] += r.Deaths
	}

	result := make([]ChangePoint, 0, len(sums))
	for k, deaths := range sums {
		p := ChangePoint{Cause: k.cause, Year: k.year, Deaths: deaths}
		if base, ok := baseline[k.cause]; ok && base != 0 {
			p.BaselineDeaths = base
			p.Change = Percent{
				Value: 100 * float64(deaths-base) / float64(base),
				Valid: true,
			}
		}
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Cause != result[j].Cause {
			return result[i].Cause < result[j].Cause
		}
		return result[i].Year < result[j].Year
	})
	return result
}

// Derived holds the four tables derived for one selection.
type Derived struct {
	Selection    Selection
	BaselineYear int
	View         []Record
	ByRace       []RaceDeaths
	ByAgeRace    []AgeRaceCell
	CauseShares  []CauseShare
	Changes      []ChangePoint
}

// Derive validates the selection and computes all derived tables. The
// cause proportions ignore the selected cause and gender; the year-over-year
// change ignores the selected year and cause.
func (ds *Dataset) Derive(sel Selection) (*Derived, error) {
	if err := ds.Validate(sel); err != nil {
		return nil, err
	}

	view := ds.Filter(sel)

	return &Derived{
		Selection:    sel,
		BaselineYear: ds.opts.BaselineYear,
		View:         view,
		ByRace:       AggregateByRace(view),
		ByAgeRace:    AggregateByAgeAndRace(view),
		CauseShares:  AggregateCauseProportions(ds.records, sel.Year),
		Changes: ComputeYearOverYearChange(ds.records, YearOverYearOptions{
			BaselineYear:  ds.opts.BaselineYear,
			ExcludedCause: ds.opts.ExcludedCause,
			Gender:        sel.Gender,
		}),
	}, nil
}
