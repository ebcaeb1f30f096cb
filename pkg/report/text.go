// Package report renders the derived mortality tables for people: as text
// tables on a terminal or as a spreadsheet workbook.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Titles of the four views, following the dashboard charts.
func RaceTitle(d *mortality.Derived) string {
	return fmt.Sprintf("Deaths by Race/Ethnicity in %d for %s due to %s",
		d.Selection.Year, d.Selection.GenderTitle(), d.Selection.Cause)
}

func AgeRaceTitle(d *mortality.Derived) string {
	return fmt.Sprintf("Mortality Rates by Age Group and Race/Ethnicity in %d for %s due to %s",
		d.Selection.Year, d.Selection.GenderTitle(), d.Selection.Cause)
}

func CauseSharesTitle(d *mortality.Derived) string {
	return fmt.Sprintf("Cause of Death Proportions in %d", d.Selection.Year)
}

func ChangesTitle(d *mortality.Derived) string {
	return fmt.Sprintf("Percentage Change of Deaths from %d for %s", d.BaselineYear, d.Selection.GenderTitle())
}

// Printer renders derived tables as text. Numbers use the printer's locale.
type Printer struct {
	w io.Writer
	p *message.Printer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w: w,
		p: message.NewPrinter(language.English),
	}
}

// Render writes all four views.
func (pr *Printer) Render(d *mortality.Derived) {
	pr.RenderRace(d)
	pr.RenderAgeRace(d)
	pr.RenderCauseShares(d)
	pr.RenderChanges(d)
}

func (pr *Printer) RenderRace(d *mortality.Derived) {
	var total int64
	rows := make([][]string, 0, len(d.ByRace))
	for i, e := range d.ByRace {
		total += e.Deaths
		rows = append(rows, []string{
			pr.p.Sprintf("%02d", i+1),
			e.Race,
			pr.p.Sprintf("%d", e.Deaths),
		})
	}

	pr.table(RaceTitle(d),
		[]string{"#", "Race/Ethnicity", "Deaths"},
		rows,
		[]string{"", "Total", pr.p.Sprintf("%d", total)},
	)
}

func (pr *Printer) RenderAgeRace(d *mortality.Derived) {
	rows := make([][]string, 0, len(d.ByAgeRace))
	for _, c := range d.ByAgeRace {
		rows = append(rows, []string{
			c.AgeGroup,
			c.Race,
			pr.p.Sprintf("%d", c.Deaths),
			pr.p.Sprintf("%.4f", c.Proportion),
		})
	}

	pr.table(AgeRaceTitle(d),
		[]string{"Age Group", "Race/Ethnicity", "Deaths", "Proportion"},
		rows, nil,
	)
}

func (pr *Printer) RenderCauseShares(d *mortality.Derived) {
	rows := make([][]string, 0, len(d.CauseShares))
	for _, s := range d.CauseShares {
		rows = append(rows, []string{
			s.Cause,
			pr.p.Sprintf("%d", s.Deaths),
			pr.p.Sprintf("%.1f%%", s.Percentage),
		})
	}

	pr.table(CauseSharesTitle(d),
		[]string{"Cause", "Deaths", "Percentage"},
		rows, nil,
	)
}

func (pr *Printer) RenderChanges(d *mortality.Derived) {
	rows := make([][]string, 0, len(d.Changes))
	for _, c := range d.Changes {
		change := c.Change.String()
		if c.Change.Valid {
			change = pr.p.Sprintf("%+.1f%%", c.Change.Value)
		}
		rows = append(rows, []string{
			c.Cause,
			strconv.Itoa(c.Year),
			pr.p.Sprintf("%d", c.Deaths),
			change,
		})
	}

	pr.table(ChangesTitle(d),
		[]string{"Cause", "Year", "Deaths", "Change"},
		rows, nil,
	)
}

func (pr *Printer) table(title string, header []string, rows [][]string, footer []string) {
	pr.p.Fprintf(pr.w, "\n%s\n\n", title)

	if len(rows) == 0 {
		pr.p.Fprintln(pr.w, "(no data)")
		return
	}

	t := tablewriter.NewWriter(pr.w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	if footer != nil {
		t.SetFooter(footer)
	}
	t.Render()
}
