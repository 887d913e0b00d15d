package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"mediawatch/internal/config"
	"mediawatch/internal/core"
	"mediawatch/internal/extract"
	"mediawatch/internal/filter"
	"mediawatch/internal/render"
	"mediawatch/internal/report"
	"mediawatch/internal/workbook"

	"github.com/rs/zerolog"
)

// Pipeline orchestrates the end-to-end report generation workflow:
// read workbooks, extract items, filter and deduplicate per group,
// compose the document and write it once.
type Pipeline struct {
	runID      string
	sheets     config.Sheets
	headerRows int
	format     string // Configured default, overridden by Options.Format

	extractor *extract.Extractor
	filter    ItemFilter
	composer  DocumentComposer
	writer    DocumentWriter

	logger zerolog.Logger
	out    io.Writer
	now    func() time.Time
}

// Options configures one report run
type Options struct {
	DataFile     string // Monitoring workbook, required
	OfficialFile string // Official media reports workbook, optional
	OutputPath   string
	StartDate    string
	EndDate      string
	Format       string // "docx" or "markdown"; empty uses the output extension, then configuration
	DryRun       bool   // Compose but do not write
}

// GroupStats tracks what happened to one report group
type GroupStats struct {
	Group           core.Group
	Extracted       int
	Filter          filter.Stats
	CrossDuplicates int
	Reported        int
}

// Stats tracks pipeline execution metrics
type Stats struct {
	RunID          string
	Sheets         map[string]int // Items extracted per sheet
	MissingSheets  []string
	OfficialItems  int
	Groups         []GroupStats
	StartTime      time.Time
	EndTime        time.Time
	ProcessingTime time.Duration
}

// Result contains the output of one report run
type Result struct {
	Document   report.Document
	OutputPath string
	Format     render.Format
	Written    bool
	Stats      Stats
}

// RunID returns the identifier attached to this pipeline's log lines
func (p *Pipeline) RunID() string {
	return p.runID
}

// GenerateReport executes the full report generation pipeline
func (p *Pipeline) GenerateReport(ctx context.Context, opts Options) (*Result, error) {
	startTime := p.now()
	stats := Stats{
		RunID:     p.runID,
		Sheets:    make(map[string]int),
		StartTime: startTime,
	}

	formatName := opts.Format
	if formatName == "" {
		if _, ok := render.FormatFromPath(opts.OutputPath); !ok {
			formatName = p.format
		}
	}
	format, err := render.ResolveFormat(formatName, opts.OutputPath)
	if err != nil {
		return nil, err
	}
	if opts.OutputPath == "" && !opts.DryRun {
		return nil, fmt.Errorf("output path is required")
	}

	p.logger.Info().
		Str("data_file", opts.DataFile).
		Str("official_file", opts.OfficialFile).
		Str("output", opts.OutputPath).
		Str("format", string(format)).
		Msg("Starting report generation")

	// Step 1: Open the monitoring workbook
	fmt.Fprintf(p.out, "📄 Step 1/6: Reading %s...\n", opts.DataFile)
	wb, err := workbook.Open(opts.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read monitoring data: %w", err)
	}
	defer wb.Close()
	fmt.Fprintf(p.out, "   ✓ Found %d sheets\n\n", len(wb.Sheets()))

	// Step 2: Official media reports (optional input)
	fmt.Fprintf(p.out, "📰 Step 2/6: Reading official media reports...\n")
	official, err := p.readOfficial(opts.OfficialFile)
	if err != nil {
		return nil, err
	}
	stats.OfficialItems = len(official)
	fmt.Fprintf(p.out, "   ✓ %d official reports\n\n", len(official))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Extract every group
	fmt.Fprintf(p.out, "🔍 Step 3/6: Extracting items...\n")
	brandRaw, err := p.readSheets(wb, []string{p.sheets.Brand}, &stats)
	if err != nil {
		return nil, err
	}
	brandRaw = append(official, brandRaw...)

	competitorSheets := append(append([]string{}, p.sheets.Competitor...), p.sheets.BankBroker...)
	competitorRaw, err := p.readSheets(wb, competitorSheets, &stats)
	if err != nil {
		return nil, err
	}
	partnerRaw, err := p.readSheets(wb, p.sheets.Partner, &stats)
	if err != nil {
		return nil, err
	}
	industryRaw, err := p.readSheets(wb, p.sheets.Industry, &stats)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "\n")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: Filter and deduplicate
	fmt.Fprintf(p.out, "🧹 Step 4/6: Filtering and deduplicating...\n")
	brand, brandStats := p.filter.FilterAndDedup(brandRaw)
	competitor, competitorStats := p.filter.FilterAndDedup(competitorRaw)
	partner, partnerStats := p.filter.FilterAndDedup(partnerRaw)
	industry, industryStats := p.filter.FilterAndDedup(industryRaw)

	competitor, competitorCross := p.filter.RemoveCrossDuplicates(brand, competitor)
	partner, partnerCross := p.filter.RemoveCrossDuplicates(brand, partner)

	stats.Groups = []GroupStats{
		{Group: core.GroupBrand, Extracted: len(brandRaw), Filter: brandStats, Reported: len(brand)},
		{Group: core.GroupCompetitor, Extracted: len(competitorRaw), Filter: competitorStats, CrossDuplicates: competitorCross, Reported: len(competitor)},
		{Group: core.GroupPartner, Extracted: len(partnerRaw), Filter: partnerStats, CrossDuplicates: partnerCross, Reported: len(partner)},
		{Group: core.GroupIndustry, Extracted: len(industryRaw), Filter: industryStats, Reported: len(industry)},
	}
	for _, g := range stats.Groups {
		fmt.Fprintf(p.out, "   ✓ %s: %d -> %d items\n", g.Group, g.Extracted, g.Reported)
		p.logger.Debug().
			Str("group", string(g.Group)).
			Int("extracted", g.Extracted).
			Int("reported", g.Reported).
			Int("cross_duplicates", g.CrossDuplicates).
			Interface("dropped", g.Filter.Dropped).
			Msg("Group filtered")
	}
	fmt.Fprintf(p.out, "\n")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 5: Compose the document
	fmt.Fprintf(p.out, "🔨 Step 5/6: Composing report...\n")
	doc := p.composer.Compose(report.Input{
		StartDate:   opts.StartDate,
		EndDate:     opts.EndDate,
		Brand:       brand,
		Competitor:  competitor,
		Partner:     partner,
		Industry:    industry,
		GeneratedAt: p.now(),
	})
	fmt.Fprintf(p.out, "   ✓ %d paragraphs\n\n", len(doc.Paragraphs))

	result := &Result{
		Document:   doc,
		OutputPath: opts.OutputPath,
		Format:     format,
	}

	// Step 6: Write output
	if opts.DryRun {
		fmt.Fprintf(p.out, "⏭️  Step 6/6: Dry run, skipping output\n\n")
	} else {
		fmt.Fprintf(p.out, "✍️  Step 6/6: Writing %s report...\n", format)
		if err := p.writer.WriteDocument(doc, opts.OutputPath, format); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		result.Written = true
		fmt.Fprintf(p.out, "   ✓ Saved to %s\n\n", opts.OutputPath)
	}

	stats.EndTime = p.now()
	stats.ProcessingTime = stats.EndTime.Sub(startTime)
	result.Stats = stats

	p.logger.Info().
		Bool("written", result.Written).
		Dur("elapsed", stats.ProcessingTime).
		Msg("Report generation complete")

	return result, nil
}

// readSheets extracts items from each named sheet in order. A missing sheet
// is reported and contributes nothing.
func (p *Pipeline) readSheets(wb *workbook.Workbook, sheets []string, stats *Stats) ([]core.Item, error) {
	opts := workbook.ReadOptions{
		HeaderRows:  p.headerRows,
		LinkColumns: p.extractor.LinkColumns(),
		DateColumns: p.extractor.DateColumns(),
	}

	var items []core.Item
	for _, sheet := range sheets {
		if sheet == "" {
			continue
		}

		rows, err := wb.Rows(sheet, opts)
		if errors.Is(err, workbook.ErrSheetNotFound) {
			fmt.Fprintf(p.out, "   ⚠️  Sheet %q not found, skipping\n", sheet)
			p.logger.Warn().Str("sheet", sheet).Msg("Sheet not found")
			stats.MissingSheets = append(stats.MissingSheets, sheet)
			continue
		}
		if err != nil {
			return nil, err
		}

		n := 0
		for _, row := range rows {
			item, ok := p.extractor.FromRow(row, sheet)
			if !ok {
				p.logger.Debug().Str("sheet", sheet).Int("row", row.Number).Msg("Row skipped")
				continue
			}
			items = append(items, item)
			n++
		}
		stats.Sheets[sheet] = n
		fmt.Fprintf(p.out, "   • %s: %d items\n", sheet, n)
	}
	return items, nil
}

// readOfficial extracts the official media reports from the active sheet of
// path. An empty or missing path yields no items.
func (p *Pipeline) readOfficial(path string) ([]core.Item, error) {
	if path == "" {
		fmt.Fprintf(p.out, "   • No official reports file given\n")
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(p.out, "   ⚠️  Official reports file %s not found, continuing without it\n", path)
		p.logger.Warn().Str("path", path).Err(err).Msg("Official reports file unavailable")
		return nil, nil
	}

	wb, err := workbook.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read official reports: %w", err)
	}
	defer wb.Close()

	rows, err := wb.Rows(wb.ActiveSheet(), workbook.ReadOptions{
		HeaderRows:  p.headerRows,
		LinkColumns: p.extractor.OfficialLinkColumns(),
		DateColumns: p.extractor.OfficialDateColumns(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read official reports: %w", err)
	}

	var items []core.Item
	for _, row := range rows {
		if item, ok := p.extractor.FromOfficialRow(row); ok {
			items = append(items, item)
		}
	}
	return items, nil
}
