package report_test

import (
	"bytes"
	"testing"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/anrid/ny-mortality/pkg/report"
	"github.com/m-mizutani/gt"
)

func derived(t *testing.T) *mortality.Derived {
	t.Helper()

	ds := mortality.NewDataset([]mortality.Record{
		{Year: 2003, AgeGroup: "<1", Sex: "Female", Race: "Hispanic", Cause: "Cancer", Deaths: 1000},
		{Year: 2003, AgeGroup: "80+", Sex: "Male", Race: "White Non Hispanic", Cause: "Stroke", Deaths: 0},
		{Year: 2012, AgeGroup: "<1", Sex: "Female", Race: "Hispanic", Cause: "Cancer", Deaths: 1500},
		{Year: 2012, AgeGroup: "80+", Sex: "Male", Race: "White Non Hispanic", Cause: "Stroke", Deaths: 20},
	}, mortality.DefaultOptions())

	d, err := ds.Derive(mortality.Selection{Year: 2012, Gender: mortality.GenderAll, Cause: "Cancer"})
	gt.NoError(t, err)
	return d
}

func TestTitles(t *testing.T) {
	d := derived(t)

	gt.Equal(t, report.RaceTitle(d), "Deaths by Race/Ethnicity in 2012 for Both Genders due to Cancer")
	gt.Equal(t, report.AgeRaceTitle(d), "Mortality Rates by Age Group and Race/Ethnicity in 2012 for Both Genders due to Cancer")
	gt.Equal(t, report.CauseSharesTitle(d), "Cause of Death Proportions in 2012")
	gt.Equal(t, report.ChangesTitle(d), "Percentage Change of Deaths from 2003 for Both Genders")
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	report.NewPrinter(&buf).Render(derived(t))
	out := buf.String()

	gt.S(t, out).Contains(report.RaceTitle(derived(t)))
	gt.S(t, out).Contains("1,500")
	gt.S(t, out).Contains("1.0000")
	gt.S(t, out).Contains("98.7%")
	gt.S(t, out).Contains("+50.0%")
	gt.S(t, out).Contains("n/a")
	gt.S(t, out).Contains("2012")
}

func TestRenderEmpty(t *testing.T) {
	d := &mortality.Derived{
		Selection: mortality.Selection{Year: 2012, Gender: mortality.SexMale, Cause: "Cancer"},
	}

	var buf bytes.Buffer
	report.NewPrinter(&buf).RenderRace(d)
	gt.S(t, buf.String()).Contains("for Males due to Cancer")
	gt.S(t, buf.String()).Contains("(no data)")
}

func TestWorkbook(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, report.WriteWorkbook(&buf, derived(t)))

	wb, err := xlsx.OpenReader(&buf)
	gt.NoError(t, err)
	gt.Equal(t, wb.GetSheetList(), []string{
		report.SheetRace,
		report.SheetAgeRace,
		report.SheetCauseShares,
		report.SheetChanges,
	})

	rows, err := wb.GetRows(report.SheetRace)
	gt.NoError(t, err)
	gt.Equal(t, rows[0][0], "Deaths by Race/Ethnicity in 2012 for Both Genders due to Cancer")
	gt.Equal(t, rows[1], []string{"Race/Ethnicity", "Deaths"})
	gt.Equal(t, rows[2], []string{"Hispanic", "1500"})

	rows, err = wb.GetRows(report.SheetChanges)
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 4)
	gt.Equal(t, rows[2][0], "Cancer")
	gt.Equal(t, rows[2][4], "50")
	gt.Equal(t, rows[3][:3], []string{"Stroke", "2012", "20"})
}
