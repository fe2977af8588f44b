// Package sheet reads payment terms from an Excel workbook.
//
// The worksheet holds one term per row after a single header row: column A
// is the term name and column B its integer id. Rows that do not carry both
// are skipped.
package sheet

import (
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/termsync/pkg/constants"
	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/logging"
	"github.com/agentstation/termsync/pkg/terms"
)

// Option configures Read.
type Option func(*options)

type options struct {
	sheet  string
	logger *zerolog.Logger
}

func defaults() *options {
	return &options{
		sheet:  constants.DefaultSheet,
		logger: logging.Default(),
	}
}

// WithSheet selects the worksheet to read. Empty names are ignored.
func WithSheet(name string) Option {
	return func(o *options) {
		if name != "" {
			o.sheet = name
		}
	}
}

// WithLogger sets the logger used to report skipped rows.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Read returns the terms listed in the workbook at path, in row order.
//
// A missing file is an *errors.IOError wrapping fs.ErrNotExist and a missing
// worksheet is an *errors.NotFoundError. The result may be empty.
func Read(path string, opts ...Option) ([]terms.Term, error) {
	o := defaults()
	for _, opt := range opts {
		opt(o)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, errors.WrapIO("open", path, err)
		}
		return nil, errors.NewParseError("xlsx", path, "not a readable workbook", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			o.logger.Debug().Err(cerr).Str("file", path).Msg("closing workbook")
		}
	}()

	if idx, err := f.GetSheetIndex(o.sheet); err != nil || idx < 0 {
		return nil, errors.NewNotFoundError("sheet", o.sheet)
	}

	rows, err := f.GetRows(o.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapResource("read", "sheet", o.sheet, err)
	}

	list := []terms.Term{}
	for i, row := range rows {
		if i < constants.HeaderRows {
			continue
		}
		t, ok := parseRow(row)
		if !ok {
			o.logger.Debug().Int("row", i+1).Strs("cells", row).Msg("skipping row")
			continue
		}
		list = append(list, t)
	}

	o.logger.Debug().Str("file", path).Str("sheet", o.sheet).Int("terms", len(list)).Msg("read spreadsheet")
	return list, nil
}

func parseRow(row []string) (terms.Term, bool) {
	if len(row) < 2 {
		return terms.Term{}, false
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return terms.Term{}, false
	}
	id, ok := ParseID(row[1])
	if !ok {
		return terms.Term{}, false
	}
	return terms.Term{Name: name, ID: id}, true
}

// ParseID coerces a cell value to an id. Integer text is used as is and
// other numbers are truncated toward zero, so "30.0" and "30.9" are both 30.
// Ids outside the int32 range are rejected however they are written.
func ParseID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if id, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return int(id), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
