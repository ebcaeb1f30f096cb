package mortality

import (
	"sort"
	"strings"
)

// Record is one normalized row of the deaths table.
type Record struct {
	Year     int    `json:"year"`
	AgeGroup string `json:"age_group"`
	Sex      string `json:"sex"`
	Race     string `json:"race"`
	Cause    string `json:"cause"`
	Deaths   int64  `json:"deaths"`
}

const (
	SexFemale = "Female"
	SexMale   = "Male"

	// GenderAll selects both sexes.
	GenderAll = "All"
)

// AgeGroups lists the age groups in display order.
var AgeGroups = []string{"<1", "1-9", "10-19", "20-29", "30-39", "40-49", "50-59", "60-69", "70-79", "80+"}

// RaceOrder is the preferred display order for races.
var RaceOrder = []string{
	"White Non Hispanic",
	"Black Non Hispanic",
	"Hispanic",
	"Other Non Hispanic",
	"Not Stated",
}

// Spreadsheet exports turned "1-9" and "10-19" into date serials.
var ageGroupArtifacts = map[string]string{
	"45300": "1-9",
	"45584": "10-19",
}

var sexCodes = map[string]string{
	"F": SexFemale,
	"M": SexMale,
}

// NormalizeAgeGroup maps an encoded age group to its display form. The second
// return value is false when the value is not a known age group.
func NormalizeAgeGroup(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if fixed, ok := ageGroupArtifacts[v]; ok {
		v = fixed
	}
	if ageGroupIndex(v) < 0 {
		return v, false
	}
	return v, true
}

// NormalizeSex expands F/M codes. Expanded values pass through unchanged.
func NormalizeSex(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if full, ok := sexCodes[v]; ok {
		return full, true
	}
	if v == SexFemale || v == SexMale {
		return v, true
	}
	return v, false
}

func ageGroupIndex(v string) int {
	for i, a := range AgeGroups {
		if a == v {
			return i
		}
	}
	return -1
}

func raceIndex(v string) int {
	for i, r := range RaceOrder {
		if r == v {
			return i
		}
	}
	return len(RaceOrder)
}

// raceLess orders races by RaceOrder, unknown races last and alphabetically.
func raceLess(a, b string) bool {
	ia, ib := raceIndex(a), raceIndex(b)
	if ia != ib {
		return ia < ib
	}
	return a < b
}

// SortRaces sorts race names in display order.
func SortRaces(races []string) {
	sort.SliceStable(races, func(i, j int) bool {
		return raceLess(races[i], races[j])
	})
}

// TotalDeaths sums deaths over records.
func TotalDeaths(records []Record) int64 {
	var total int64
	for _, r := range records {
		total += r.Deaths
	}
	return total
}
