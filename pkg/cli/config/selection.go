package config

import (
	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/urfave/cli/v3"
)

// Selection holds the (year, gender, cause) choice
type Selection struct {
	Year   int
	Gender string
	Cause  string
}

// Flags returns CLI flags for the selection
func (s *Selection) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "year",
			Aliases:     []string{"y"},
			Usage:       "Year to show (default: configured default year)",
			Category:    "Selection",
			Destination: &s.Year,
		},
		&cli.StringFlag{
			Name:        "gender",
			Aliases:     []string{"g"},
			Usage:       "Gender to show (All, Female, Male)",
			Category:    "Selection",
			Value:       mortality.GenderAll,
			Destination: &s.Gender,
		},
		&cli.StringFlag{
			Name:        "cause",
			Aliases:     []string{"c"},
			Usage:       "Cause of death to show (default: first cause in the table)",
			Category:    "Selection",
			Destination: &s.Cause,
		},
	}
}

// Configure fills unset fields from the dataset's default selection.
func (s *Selection) Configure(ds *mortality.Dataset) mortality.Selection {
	sel := ds.DefaultSelection()
	if s.Year != 0 {
		sel.Year = s.Year
	}
	if s.Gender != "" {
		sel.Gender = s.Gender
	}
	if s.Cause != "" {
		sel.Cause = s.Cause
	}
	return sel
}
