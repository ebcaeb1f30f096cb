package mortality

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// RowHandler receives every row of a source table, header included.
// Returning an error stops the extraction.
type RowHandler func(row []string) error

func ExtractDataFromFile(ctx context.Context, f *File, handler RowHandler) error {
	data, err := f.ReadContent()
	if err != nil {
		return err
	}

	switch f.Format() {
	case FormatXLSX:
		return ExtractDataFromXLSX(ctx, bytes.NewReader(data), handler)
	case FormatXLS:
		return ExtractDataFromXLS(ctx, bytes.NewReader(data), handler)
	default:
		return ExtractDataFromCSV(ctx, bytes.NewReader(data), handler)
	}
}

func ExtractDataFromCSV(ctx context.Context, r io.Reader, handler RowHandler) error {
	ctxlog.From(ctx).Debug("Loading CSV data")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "could not read CSV data", goerr.T(ErrTagDataLoad))
		}
		if err := handler(row); err != nil {
			return err
		}
	}
}

func ExtractDataFromXLS(ctx context.Context, r io.ReadSeeker, handler RowHandler) error {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return goerr.Wrap(err, "could not read XLS data", goerr.T(ErrTagDataLoad))
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return goerr.New("XLS workbook has no sheets", goerr.T(ErrTagDataLoad))
	}

	ctxlog.From(ctx).Debug("Loading XLS data",
		"sheet", sheet.Name,
		"rows", sheet.MaxRow,
	)

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		if err := handler(cols); err != nil {
			return err
		}
	}
	return nil
}

func ExtractDataFromXLSX(ctx context.Context, r io.Reader, handler RowHandler) error {
	wb, err := xlsx.OpenReader(r)
	if err != nil {
		return goerr.Wrap(err, "could not read XLSX data", goerr.T(ErrTagDataLoad))
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return goerr.New("XLSX workbook has no sheets", goerr.T(ErrTagDataLoad))
	}
	defaultSheet := sheets[0]

	rows, err := wb.GetRows(defaultSheet)
	if err != nil {
		return goerr.Wrap(err, "could not get rows for default sheet",
			goerr.V("sheet", defaultSheet), goerr.T(ErrTagDataLoad))
	}

	ctxlog.From(ctx).Debug("Loading XLSX data",
		"sheet", defaultSheet,
		"rows", len(rows),
	)

	for _, row := range rows {
		if err := handler(row); err != nil {
			return err
		}
	}
	return nil
}
