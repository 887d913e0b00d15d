package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"time"

	"mediawatch/internal/config"
	"mediawatch/internal/filter"
	"mediawatch/internal/logger"
	"mediawatch/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the weekly media-monitoring report",
		Long: `Generate the weekly report from a monitoring workbook.

The command runs the full pipeline:
1. Read the monitoring workbook and the optional official reports workbook
2. Extract items per sheet
3. Drop repost sites, announcements and non-authoritative outlets
4. Deduplicate each group and remove items already in the brand section
5. Compose and write the report

Examples:
  mediawatch report --data-file data.xlsx --output report.docx --start-date 2024-05-06 --end-date 2024-05-12
  mediawatch report --data-file data.xlsx --official-file official.xlsx --output report.docx \
      --start-date 2024-05-06 --end-date 2024-05-12
  mediawatch report --data-file data.xlsx --output report.md --format markdown --start-date S --end-date E
  mediawatch report --data-file data.xlsx --start-date S --end-date E --dry-run`,
		Args: cobra.NoArgs,
		RunE: reportRun,
	}

	cmd.Flags().String("data-file", "", "Monitoring workbook (.xlsx)")
	cmd.Flags().String("official-file", "", "Official media reports workbook (.xlsx, optional)")
	cmd.Flags().StringP("output", "o", "", "Output report path")
	cmd.Flags().String("start-date", "", "Monitoring period start (as printed in the report)")
	cmd.Flags().String("end-date", "", "Monitoring period end (as printed in the report)")
	cmd.Flags().String("format", "", "Output format: docx or markdown (default from config, then output extension)")
	cmd.Flags().Bool("dry-run", false, "Run the pipeline and print statistics without writing the report")

	_ = cmd.MarkFlagRequired("data-file")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")

	return cmd
}

func reportRun(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	dataFile, _ := cmd.Flags().GetString("data-file")
	officialFile, _ := cmd.Flags().GetString("official-file")
	output, _ := cmd.Flags().GetString("output")
	startDate, _ := cmd.Flags().GetString("start-date")
	endDate, _ := cmd.Flags().GetString("end-date")
	format, _ := cmd.Flags().GetString("format")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if output == "" && !dryRun {
		return fmt.Errorf("--output is required unless --dry-run is set")
	}

	out := cmd.OutOrStdout()

	pipe, err := pipeline.NewBuilder(config.Get()).
		WithProgress(out).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	logger.Info("Starting report generation",
		"run_id", pipe.RunID(),
		"data_file", dataFile,
		"official_file", officialFile,
		"output", output,
		"dry_run", dryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "\n📖 Generating report for %s - %s\n\n", startDate, endDate)

	result, err := pipe.GenerateReport(ctx, pipeline.Options{
		DataFile:     dataFile,
		OfficialFile: officialFile,
		OutputPath:   output,
		StartDate:    startDate,
		EndDate:      endDate,
		Format:       format,
		DryRun:       dryRun,
	})
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	elapsed := time.Since(startTime)

	fmt.Fprintln(out, "═══════════════════════════════════════")
	if result.Written {
		fmt.Fprintln(out, "✅ Report Generated Successfully!")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "📄 Output: %s (%s)\n", result.OutputPath, result.Format)
	} else {
		fmt.Fprintln(out, "✅ Dry Run Complete (nothing written)")
		fmt.Fprintln(out, "═══════════════════════════════════════")
	}

	fmt.Fprintln(out, "\n📊 Statistics:")
	printStatsTable(out, result.Stats)
	if len(result.Stats.MissingSheets) > 0 {
		fmt.Fprintf(out, "   ⚠️  Missing sheets: %s\n", strings.Join(result.Stats.MissingSheets, ", "))
		logger.Warn("Configured sheets not found in workbook",
			"run_id", result.Stats.RunID,
			"sheets", result.Stats.MissingSheets)
	}
	fmt.Fprintf(out, "   • Official reports: %d\n", result.Stats.OfficialItems)
	fmt.Fprintf(out, "   • Processing Time: %v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(out)

	logger.Info("Report generation completed",
		"run_id", result.Stats.RunID,
		"output", result.OutputPath,
		"written", result.Written,
		"duration", elapsed)

	return nil
}

// printStatsTable renders per-group counts as a bordered table.
func printStatsTable(w io.Writer, stats pipeline.Stats) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Group", "Extracted", "Filtered", "Duplicates", "Cross", "Reported")

	for _, g := range stats.Groups {
		t.Row(
			string(g.Group),
			strconv.Itoa(g.Extracted),
			strconv.Itoa(filteredCount(g.Filter)),
			strconv.Itoa(g.Filter.Dropped[filter.ReasonDuplicate]),
			strconv.Itoa(g.CrossDuplicates),
			strconv.Itoa(g.Reported),
		)
	}
	fmt.Fprintln(w, t.Render())

	if len(stats.Sheets) == 0 {
		return
	}
	names := make([]string, 0, len(stats.Sheets))
	for name := range stats.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "   • %s: %d items\n", name, stats.Sheets[name])
	}
}

// filteredCount is the number of items dropped by the quality gates, excluding duplicates.
func filteredCount(s filter.Stats) int {
	n := 0
	for reason, count := range s.Dropped {
		if reason != filter.ReasonDuplicate {
			n += count
		}
	}
	return n
}
