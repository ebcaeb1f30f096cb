package report

import (
	"io"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/ny-mortality/pkg/mortality"
	"github.com/m-mizutani/goerr/v2"
)

// Sheet names of the exported workbook.
const (
	SheetRace        = "By Race"
	SheetAgeRace     = "By Age and Race"
	SheetCauseShares = "Cause Proportions"
	SheetChanges     = "Change From Baseline"
)

// NewFile starts with this sheet; it becomes the first view.
const defaultSheet = "Sheet1"

// Workbook builds a spreadsheet with one sheet per derived view. Each sheet
// starts with the view title, followed by a header row and the data.
func Workbook(d *mortality.Derived) (*xlsx.File, error) {
	wb := xlsx.NewFile()

	sheets := []struct {
		name   string
		title  string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetRace, RaceTitle(d), []interface{}{"Race/Ethnicity", "Deaths"}, raceRows(d)},
		{SheetAgeRace, AgeRaceTitle(d), []interface{}{"Age Group", "Race/Ethnicity", "Deaths", "Proportion"}, ageRaceRows(d)},
		{SheetCauseShares, CauseSharesTitle(d), []interface{}{"Cause", "Deaths", "Percentage"}, causeShareRows(d)},
		{SheetChanges, ChangesTitle(d), []interface{}{"Cause", "Year", "Deaths", "Baseline Deaths", "Percentage Change"}, changeRows(d)},
	}

	for i, s := range sheets {
		if i == 0 {
			wb.SetSheetName(defaultSheet, s.name)
		} else {
			wb.NewSheet(s.name)
		}

		if err := wb.SetSheetRow(s.name, "A1", &[]interface{}{s.title}); err != nil {
			return nil, goerr.Wrap(err, "failed to write title", goerr.V("sheet", s.name))
		}
		if err := wb.SetSheetRow(s.name, "A2", &s.header); err != nil {
			return nil, goerr.Wrap(err, "failed to write header", goerr.V("sheet", s.name))
		}
		for j := range s.rows {
			cell, err := xlsx.CoordinatesToCellName(1, j+3)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid cell", goerr.V("row", j+3))
			}
			if err := wb.SetSheetRow(s.name, cell, &s.rows[j]); err != nil {
				return nil, goerr.Wrap(err, "failed to write row",
					goerr.V("sheet", s.name), goerr.V("cell", cell))
			}
		}
	}

	return wb, nil
}

// WriteWorkbook writes the workbook of d to w.
func WriteWorkbook(w io.Writer, d *mortality.Derived) error {
	wb, err := Workbook(d)
	if err != nil {
		return err
	}
	if err := wb.Write(w); err != nil {
		return goerr.Wrap(err, "failed to write workbook")
	}
	return nil
}

func raceRows(d *mortality.Derived) [][]interface{} {
	rows := make([][]interface{}, 0, len(d.ByRace))
	for _, e := range d.ByRace {
		rows = append(rows, []interface{}{e.Race, e.Deaths})
	}
	return rows
}

func ageRaceRows(d *mortality.Derived) [][]interface{} {
	rows := make([][]interface{}, 0, len(d.ByAgeRace))
	for _, c := range d.ByAgeRace {
		rows = append(rows, []interface{}{c.AgeGroup, c.Race, c.Deaths, c.Proportion})
	}
	return rows
}

func causeShareRows(d *mortality.Derived) [][]interface{} {
	rows := make([][]interface{}, 0, len(d.CauseShares))
	for _, s := range d.CauseShares {
		rows = append(rows, []interface{}{s.Cause, s.Deaths, s.Percentage})
	}
	return rows
}

// Undefined changes are left as empty cells.
func changeRows(d *mortality.Derived) [][]interface{} {
	rows := make([][]interface{}, 0, len(d.Changes))
	for _, c := range d.Changes {
		row := []interface{}{c.Cause, c.Year, c.Deaths, nil, nil}
		if c.Change.Valid {
			row[3] = c.BaselineDeaths
			row[4] = c.Change.Value
		}
		rows = append(rows, row)
	}
	return rows
}
