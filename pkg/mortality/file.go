package mortality

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Format is the on-disk encoding of a source table.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
	FormatXLS
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return "csv"
	}
}

// File represents a file containing the deaths table.
// This is typically the CSV export of the open-data portal, but spreadsheet
// exports are accepted too.
type File struct {
	Path string
}

// Format picks the source encoding from the file extension. Unknown
// extensions are read as CSV.
func (f *File) Format() Format {
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".xlsx":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	default:
		return FormatCSV
	}
}

// ReadContent reads the whole file.
func (f *File) ReadContent() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "source file not found",
				goerr.V("path", f.Path), goerr.T(ErrTagDataLoad))
		}
		return nil, goerr.Wrap(err, "failed to read source file",
			goerr.V("path", f.Path), goerr.T(ErrTagDataLoad))
	}
	return data, nil
}
