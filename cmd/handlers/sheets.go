package handlers

import (
	"fmt"
	"io"
	"strconv"

	"mediawatch/internal/config"
	"mediawatch/internal/core"
	"mediawatch/internal/logger"
	"mediawatch/internal/workbook"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// NewSheetsCmd creates the sheets inspection command
func NewSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List workbook sheets and the report group each one feeds",
		Long: `List every sheet in a workbook with its data row count and the
report group it is configured for. Sheets without a group are ignored by
the report command; configured sheets missing from the workbook are listed
at the end.

Examples:
  mediawatch sheets --data-file data.xlsx`,
		Args: cobra.NoArgs,
		RunE: sheetsRun,
	}

	cmd.Flags().String("data-file", "", "Workbook to inspect (.xlsx)")
	_ = cmd.MarkFlagRequired("data-file")

	return cmd
}

func sheetsRun(cmd *cobra.Command, args []string) error {
	dataFile, _ := cmd.Flags().GetString("data-file")

	wb, err := workbook.Open(dataFile)
	if err != nil {
		return err
	}
	defer wb.Close()

	return printSheets(cmd.OutOrStdout(), wb, configuredSheets(config.GetSheets()), config.GetLayout().HeaderRows)
}

type configuredSheet struct {
	name  string
	group core.Group
}

// configuredSheets lists the configured sheet names in report order.
func configuredSheets(s config.Sheets) []configuredSheet {
	var out []configuredSheet
	for _, group := range core.Groups() {
		var names []string
		switch group {
		case core.GroupBrand:
			names = []string{s.Brand}
		case core.GroupCompetitor:
			names = s.Competitor
		case core.GroupPartner:
			names = s.Partner
		case core.GroupBankBroker:
			names = s.BankBroker
		case core.GroupIndustry:
			names = s.Industry
		}
		for _, name := range names {
			out = append(out, configuredSheet{name, group})
		}
	}
	return out
}

func printSheets(w io.Writer, wb *workbook.Workbook, configured []configuredSheet, headerRows int) error {
	active := wb.ActiveSheet()
	groups := make(map[string]core.Group, len(configured))
	for _, c := range configured {
		groups[c.name] = c.group
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Sheet", "Group", "Rows", "Active")

	present := make(map[string]bool)
	for _, sheet := range wb.Sheets() {
		present[sheet] = true

		rows, err := wb.Rows(sheet, workbook.ReadOptions{HeaderRows: headerRows})
		if err != nil {
			return err
		}

		group := "-"
		if g, ok := groups[sheet]; ok {
			group = string(g)
		}
		mark := ""
		if sheet == active {
			mark = "*"
		}
		t.Row(sheet, group, strconv.Itoa(len(rows)), mark)
	}

	fmt.Fprintf(w, "📒 %s\n", wb.Path())
	fmt.Fprintln(w, t.Render())

	for _, c := range configured {
		if c.name != "" && !present[c.name] {
			fmt.Fprintf(w, "   ⚠️  %s sheet %q not found\n", c.group, c.name)
			logger.Warn("Configured sheet not found", "sheet", c.name, "group", string(c.group))
		}
	}
	return nil
}
