package mortality

import (
	"github.com/m-mizutani/goerr/v2"
)

// Selection is the (year, gender, cause) choice made in the presentation layer.
type Selection struct {
	Year   int
	Gender string
	Cause  string
}

// GenderTitle returns the gender as used in report titles.
func (s Selection) GenderTitle() string {
	if s.Gender == GenderAll || s.Gender == "" {
		return "Both Genders"
	}
	return s.Gender + "s"
}

func (s Selection) matches(r Record) bool {
	if r.Year != s.Year || r.Cause != s.Cause {
		return false
	}
	return s.Gender == GenderAll || s.Gender == "" || r.Sex == s.Gender
}

// Filter selects the records of the selected year and cause, restricted to
// one sex unless the gender is GenderAll. The input order is preserved and an
// empty result is valid.
func Filter(records []Record, sel Selection) []Record {
	view := make([]Record, 0)
	for _, r := range records {
		if sel.matches(r) {
			view = append(view, r)
		}
	}
	return view
}

// DefaultSelection returns the configured default year clamped into the data's
// year range, both genders and the first cause of the table.
func (ds *Dataset) DefaultSelection() Selection {
	sel := Selection{
		Year:   ds.opts.DefaultYear,
		Gender: GenderAll,
	}

	first, last := ds.YearRange()
	if sel.Year < first {
		sel.Year = first
	}
	if sel.Year > last {
		sel.Year = last
	}
	if len(ds.causes) > 0 {
		sel.Cause = ds.causes[0]
	}
	return sel
}

// Validate checks the selection against the choices offered by the dataset.
func (ds *Dataset) Validate(sel Selection) error {
	switch sel.Gender {
	case GenderAll, SexFemale, SexMale:
	default:
		return goerr.New("unknown gender",
			goerr.V("gender", sel.Gender), goerr.T(ErrTagInvalidSelection))
	}

	first, last := ds.YearRange()
	if sel.Year < first || sel.Year > last {
		return goerr.New("year out of range",
			goerr.V("year", sel.Year), goerr.V("first", first), goerr.V("last", last),
			goerr.T(ErrTagInvalidSelection))
	}

	for _, c := range ds.causes {
		if c == sel.Cause {
			return nil
		}
	}
	return goerr.New("unknown cause of death",
		goerr.V("cause", sel.Cause), goerr.T(ErrTagInvalidSelection))
}
