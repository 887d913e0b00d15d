// Package workbook reads monitoring spreadsheets into plain rows of cell text.
package workbook

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a named sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// DateLayout is how date-formatted cells in date columns are rendered.
const DateLayout = "2006-01-02 15:04:05"

// Quoted literals, bracketed colors/locales and escaped characters carry no date tokens.
var numFmtLiteralRe = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

// Row is one data row of a sheet.
type Row struct {
	Number     int            // 1-based spreadsheet row number
	Cells      []string       // Formatted cell values, trailing empty cells may be absent
	Formulas   map[int]string // Formulas by 0-based column, always with a leading "="
	Hyperlinks map[int]string // Native cell hyperlink targets by 0-based column
}

// Value returns the formatted value of the cell at col, or "" past the end of the row.
func (r Row) Value(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// Formula returns the formula of the cell at col, or "".
func (r Row) Formula(col int) string {
	return r.Formulas[col]
}

// Hyperlink returns the native hyperlink target of the cell at col, or "".
func (r Row) Hyperlink(col int) string {
	return r.Hyperlinks[col]
}

// ReadOptions controls how rows are read from a sheet.
type ReadOptions struct {
	HeaderRows  int   // Leading rows to skip
	LinkColumns []int // Columns whose formulas and hyperlinks are collected
	DateColumns []int // Columns whose date-formatted numbers are rendered with DateLayout
}

// Workbook is an open spreadsheet file.
type Workbook struct {
	file     *excelize.File
	path     string
	date1904 bool
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	wb := &Workbook{file: f, path: path}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether a sheet with the exact name exists.
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.file.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

// ActiveSheet returns the name of the sheet that opens first in a spreadsheet app.
func (w *Workbook) ActiveSheet() string {
	return w.file.GetSheetName(w.file.GetActiveSheetIndex())
}

// Rows reads every row of sheet after the header rows.
func (w *Workbook) Rows(sheet string, opts ReadOptions) ([]Row, error) {
	if !w.HasSheet(sheet) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	raw, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	rows := make([]Row, 0, len(raw))
	for i := opts.HeaderRows; i < len(raw); i++ {
		row := Row{Number: i + 1, Cells: raw[i]}
		if err := w.collectLinks(sheet, &row, opts.LinkColumns); err != nil {
			return nil, err
		}
		if err := w.normalizeDates(sheet, &row, opts.DateColumns); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (w *Workbook) collectLinks(sheet string, row *Row, cols []int) error {
	for _, col := range cols {
		cell, err := excelize.CoordinatesToCellName(col+1, row.Number)
		if err != nil {
			return fmt.Errorf("invalid cell at column %d row %d: %w", col, row.Number, err)
		}

		formula, err := w.file.GetCellFormula(sheet, cell)
		if err != nil {
			return fmt.Errorf("failed to read formula %s!%s: %w", sheet, cell, err)
		}
		if formula != "" {
			if !strings.HasPrefix(formula, "=") {
				formula = "=" + formula
			}
			if row.Formulas == nil {
				row.Formulas = make(map[int]string)
			}
			row.Formulas[col] = formula
		}

		ok, target, err := w.file.GetCellHyperLink(sheet, cell)
		if err != nil {
			return fmt.Errorf("failed to read hyperlink %s!%s: %w", sheet, cell, err)
		}
		if ok && target != "" {
			if row.Hyperlinks == nil {
				row.Hyperlinks = make(map[int]string)
			}
			row.Hyperlinks[col] = target
		}
	}
	return nil
}

// normalizeDates replaces the display text of date-formatted numeric cells
// with the underlying date in DateLayout, so values compare chronologically
// as strings. Text cells are left as they are.
func (w *Workbook) normalizeDates(sheet string, row *Row, cols []int) error {
	for _, col := range cols {
		if row.Value(col) == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row.Number)
		if err != nil {
			return fmt.Errorf("invalid cell at column %d row %d: %w", col, row.Number, err)
		}

		isDate, err := w.hasDateFormat(sheet, cell)
		if err != nil {
			return err
		}
		if !isDate {
			continue
		}

		raw, err := w.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return fmt.Errorf("failed to read %s!%s: %w", sheet, cell, err)
		}
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		t, err := excelize.ExcelDateToTime(serial, w.date1904)
		if err != nil {
			continue
		}
		row.Cells[col] = t.Format(DateLayout)
	}
	return nil
}

func (w *Workbook) hasDateFormat(sheet, cell string) (bool, error) {
	styleID, err := w.file.GetCellStyle(sheet, cell)
	if err != nil {
		return false, fmt.Errorf("failed to read style %s!%s: %w", sheet, cell, err)
	}
	if styleID == 0 {
		return false, nil
	}
	style, err := w.file.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("failed to read style %s!%s: %w", sheet, cell, err)
	}
	if style.CustomNumFmt != nil {
		return IsDateNumFmt(*style.CustomNumFmt), nil
	}
	return isBuiltInDateNumFmt(style.NumFmt), nil
}

// isBuiltInDateNumFmt reports whether a built-in number format id renders a date or time.
func isBuiltInDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// IsDateNumFmt reports whether a custom number format code contains date or time tokens.
func IsDateNumFmt(code string) bool {
	code = strings.ToLower(numFmtLiteralRe.ReplaceAllString(code, ""))
	if code == "general" {
		return false
	}
	return strings.ContainsAny(code, "ymdhs")
}
