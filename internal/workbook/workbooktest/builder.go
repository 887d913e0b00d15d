// Package workbooktest generates spreadsheet fixtures for tests.
package workbooktest

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Formula is written to a cell as a formula (without the leading "=").
type Formula string

// Link is written as cell text carrying a native hyperlink.
type Link struct {
	Text string
	URL  string
}

// Builder assembles a workbook sheet by sheet.
type Builder struct {
	t      testing.TB
	file   *excelize.File
	sheets int
	active string
}

// New starts an empty workbook.
func New(t testing.TB) *Builder {
	t.Helper()
	return &Builder{t: t, file: excelize.NewFile()}
}

// Sheet adds a sheet with a header row followed by rows. Nil values leave the cell empty.
func (b *Builder) Sheet(name string, header []string, rows ...[]any) *Builder {
	b.t.Helper()

	if b.sheets == 0 {
		if err := b.file.SetSheetName("Sheet1", name); err != nil {
			b.t.Fatalf("rename sheet: %v", err)
		}
	} else if _, err := b.file.NewSheet(name); err != nil {
		b.t.Fatalf("new sheet %s: %v", name, err)
	}
	b.sheets++

	for col, h := range header {
		b.set(name, col, 1, h)
	}
	for i, row := range rows {
		for col, v := range row {
			b.set(name, col, i+2, v)
		}
	}
	return b
}

// Active marks the named sheet as the one opened first.
func (b *Builder) Active(name string) *Builder {
	b.t.Helper()
	idx, err := b.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		b.t.Fatalf("sheet %s not found: %v", name, err)
	}
	b.file.SetActiveSheet(idx)
	return b
}

// Save writes the workbook into the test's temp dir and returns its path.
func (b *Builder) Save(filename string) string {
	b.t.Helper()
	path := filepath.Join(b.t.TempDir(), filename)
	if err := b.file.SaveAs(path); err != nil {
		b.t.Fatalf("save workbook: %v", err)
	}
	if err := b.file.Close(); err != nil {
		b.t.Fatalf("close workbook: %v", err)
	}
	return path
}

func (b *Builder) set(sheet string, col, row int, v any) {
	b.t.Helper()
	if v == nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		b.t.Fatalf("cell name: %v", err)
	}

	switch val := v.(type) {
	case Formula:
		err = b.file.SetCellFormula(sheet, cell, string(val))
	case Link:
		if err = b.file.SetCellValue(sheet, cell, val.Text); err == nil {
			err = b.file.SetCellHyperLink(sheet, cell, val.URL, "External")
		}
	default:
		err = b.file.SetCellValue(sheet, cell, val)
	}
	if err != nil {
		b.t.Fatalf("set %s!%s: %v", sheet, cell, err)
	}
}

// MonitoringRow builds a row in the default monitoring layout (summary at column 23).
// A time.Time publication time is stored as a date-formatted cell.
func MonitoringRow(seq, title, published any, source, summary string) []any {
	row := make([]any, 24)
	row[0] = seq
	row[1] = "topic"
	row[2] = title
	row[3] = published
	row[4] = "中性"
	row[5] = source
	row[6] = "网媒"
	row[7] = "author"
	if summary != "" {
		row[23] = summary
	}
	return row
}

// MonitoringHeader is a 24-column header row.
func MonitoringHeader() []string {
	header := make([]string, 24)
	copy(header, []string{"序号", "话题", "标题", "时间", "倾向", "来源", "渠道", "作者"})
	header[23] = "摘要"
	return header
}

// OfficialHeader is the 8-column official media reports header.
func OfficialHeader() []string {
	return []string{"序号", "媒体", "日期", "主题", "标题", "记者", "署名", "链接"}
}
