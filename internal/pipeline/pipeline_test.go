package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mediawatch/internal/config"
	"mediawatch/internal/core"
	"mediawatch/internal/render"
	"mediawatch/internal/report"
	"mediawatch/internal/workbook/workbooktest"

	"github.com/rs/zerolog"
)

var fixedNow = time.Date(2024, 5, 13, 9, 30, 0, 0, time.UTC)

type recordingWriter struct {
	calls  int
	path   string
	format render.Format
	doc    report.Document
}

func (w *recordingWriter) WriteDocument(doc report.Document, path string, format render.Format) error {
	w.calls++
	w.doc, w.path, w.format = doc, path, format
	return nil
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	return cfg
}

func newTestPipeline(t *testing.T, writer DocumentWriter) *Pipeline {
	t.Helper()
	b := NewBuilder(loadConfig(t)).
		WithLogger(zerolog.Nop()).
		WithProgress(io.Discard).
		WithClock(func() time.Time { return fixedNow })
	if writer != nil {
		b = b.WithWriter(writer)
	}
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return p
}

func monitoringWorkbook(t *testing.T) string {
	t.Helper()
	header := workbooktest.MonitoringHeader()
	row := workbooktest.MonitoringRow

	return workbooktest.New(t).
		Sheet("主品牌-盈米基金", header,
			row(1, "盈米基金获奖", "2024-05-08", "新华网", "盈米基金表示将持续服务投资者"),
			row(2, "盈米转载稿", "2024-05-09", "百家号", ""),
			row(nil, "无序号行", "2024-05-09", "新华网", ""),
		).
		Sheet("蚂蚁财富", header,
			row(1, "盈米基金获奖", "2024-05-08", "证券时报", ""),
			row(2, workbooktest.Formula(`HYPERLINK("http://ant.example/1","蚂蚁新品上线")`), "2024-05-10", "证券时报", ""),
		).
		Sheet("券商竞品", header,
			row(1, "券商动态", "2024-05-11", "中国证券报", ""),
		).
		Sheet("合作银行", header,
			row(1, workbooktest.Link{Text: "银行合作签约", URL: "http://bank.example"}, "2024-05-07", "人民网", ""),
			row(2, "基金分红公告", "2024-05-07", "人民网", ""),
		).
		Sheet("监管政策法规", header,
			row(1, "新规发布", "2024-05-06", "新华社", ""),
		).
		Save("monitoring.xlsx")
}

func officialWorkbook(t *testing.T) string {
	t.Helper()
	return workbooktest.New(t).
		Sheet("说明", []string{"unused"}).
		Sheet("官方报道", workbooktest.OfficialHeader(),
			[]any{1, "人民日报", "2024-05-10", "专访", "官方报道标题", "记者甲", "本报记者", "http://official.example"},
			[]any{2, "地方小报", "2024-05-10", "专访", "非权威报道", "记者乙", "", "http://local.example"},
			[]any{3, "新华网", "2024-05-10", "专访", "缺少链接", "记者丙", "", nil},
		).
		Active("官方报道").
		Save("official.xlsx")
}

func groupStats(t *testing.T, stats Stats, group core.Group) GroupStats {
	t.Helper()
	for _, g := range stats.Groups {
		if g.Group == group {
			return g
		}
	}
	t.Fatalf("No stats for group %s", group)
	return GroupStats{}
}

func TestGenerateReportEndToEnd(t *testing.T) {
	writer := &recordingWriter{}
	p := newTestPipeline(t, writer)

	result, err := p.GenerateReport(context.Background(), Options{
		DataFile:     monitoringWorkbook(t),
		OfficialFile: officialWorkbook(t),
		OutputPath:   filepath.Join(t.TempDir(), "weekly.docx"),
		StartDate:    "2024-05-06",
		EndDate:      "2024-05-12",
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	if writer.calls != 1 {
		t.Fatalf("Expected exactly one write, got %d", writer.calls)
	}
	if writer.format != render.FormatDocx {
		t.Errorf("Expected docx format, got %s", writer.format)
	}
	if !result.Written {
		t.Error("Expected result to be marked as written")
	}

	text := result.Document.PlainText()
	for _, want := range []string{
		"监测平台：2024-05-06-2024-05-12",
		"官方报道标题",
		"盈米基金获奖",
		"盈米基金表示将持续服务投资者",
		"蚂蚁新品上线",
		"【蚂蚁财富】",
		"原文链接：http://ant.example/1",
		"券商动态",
		"【券商竞品】",
		"银行合作签约",
		"原文链接：http://bank.example",
		"新规发布",
		"类别：监管政策",
		"报告生成时间：2024年05月13日 09:30",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
	for _, unwanted := range []string{"盈米转载稿", "无序号行", "基金分红公告", "非权威报道", "缺少链接"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("Report should not contain %q", unwanted)
		}
	}

	if result.Stats.OfficialItems != 1 {
		t.Errorf("Expected 1 official item, got %d", result.Stats.OfficialItems)
	}
	if got := result.Stats.Sheets["蚂蚁财富"]; got != 2 {
		t.Errorf("Expected 2 items from 蚂蚁财富, got %d", got)
	}

	competitor := groupStats(t, result.Stats, core.GroupCompetitor)
	if competitor.CrossDuplicates != 1 {
		t.Errorf("Expected 1 competitor cross duplicate, got %d", competitor.CrossDuplicates)
	}
	if competitor.Reported != 2 {
		t.Errorf("Expected 2 competitor items, got %d", competitor.Reported)
	}

	brand := groupStats(t, result.Stats, core.GroupBrand)
	if brand.Reported != 2 {
		t.Errorf("Expected 2 brand items (official + sheet), got %d", brand.Reported)
	}

	missing := strings.Join(result.Stats.MissingSheets, ",")
	if !strings.Contains(missing, "天天基金") || !strings.Contains(missing, "基金处罚违规") {
		t.Errorf("Expected missing sheets to be reported, got %v", result.Stats.MissingSheets)
	}
	if result.Stats.RunID == "" || result.Stats.RunID != p.RunID() {
		t.Errorf("Expected stats to carry the run id, got %q", result.Stats.RunID)
	}
}

func TestGenerateReportBrandSectionOrder(t *testing.T) {
	p := newTestPipeline(t, &recordingWriter{})

	result, err := p.GenerateReport(context.Background(), Options{
		DataFile:     monitoringWorkbook(t),
		OfficialFile: officialWorkbook(t),
		OutputPath:   "weekly.docx",
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	text := result.Document.PlainText()
	official := strings.Index(text, "1、人民日报  2024-05-10  官方报道标题")
	sheet := strings.Index(text, "2、新华网  2024-05-08  盈米基金获奖")
	if official < 0 || sheet < 0 {
		t.Fatalf("Expected both brand lines, got:\n%s", text)
	}
	if official > sheet {
		t.Error("Expected the more recent official report first")
	}
}

func TestGenerateReportWritesMarkdown(t *testing.T) {
	p := newTestPipeline(t, nil)
	output := filepath.Join(t.TempDir(), "out", "weekly.md")

	result, err := p.GenerateReport(context.Background(), Options{
		DataFile:   monitoringWorkbook(t),
		OutputPath: output,
		Format:     "markdown",
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if result.Format != render.FormatMarkdown {
		t.Errorf("Expected markdown format, got %s", result.Format)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Expected report file: %v", err)
	}
	if !strings.Contains(string(content), "## 三、竞品要闻") {
		t.Error("Expected competitor heading in markdown output")
	}
}

func TestGenerateReportDryRun(t *testing.T) {
	writer := &recordingWriter{}
	p := newTestPipeline(t, writer)

	result, err := p.GenerateReport(context.Background(), Options{
		DataFile: monitoringWorkbook(t),
		DryRun:   true,
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if writer.calls != 0 {
		t.Errorf("Dry run should not write, got %d writes", writer.calls)
	}
	if result.Written {
		t.Error("Dry run result should not be marked as written")
	}
	if len(result.Document.Paragraphs) == 0 {
		t.Error("Dry run should still compose the document")
	}
}

func TestGenerateReportMissingOfficialFile(t *testing.T) {
	p := newTestPipeline(t, &recordingWriter{})

	result, err := p.GenerateReport(context.Background(), Options{
		DataFile:     monitoringWorkbook(t),
		OfficialFile: filepath.Join(t.TempDir(), "missing.xlsx"),
		OutputPath:   "weekly.docx",
	})
	if err != nil {
		t.Fatalf("Missing official file should not fail: %v", err)
	}
	if result.Stats.OfficialItems != 0 {
		t.Errorf("Expected no official items, got %d", result.Stats.OfficialItems)
	}
}

func TestGenerateReportErrors(t *testing.T) {
	data := monitoringWorkbook(t)

	tests := []struct {
		name string
		ctx  func() context.Context
		opts Options
		want error
	}{
		{
			name: "missing data file",
			ctx:  context.Background,
			opts: Options{DataFile: filepath.Join(t.TempDir(), "nope.xlsx"), OutputPath: "x.docx"},
		},
		{
			name: "unknown format",
			ctx:  context.Background,
			opts: Options{DataFile: data, OutputPath: "x.pdf", Format: "pdf"},
			want: render.ErrUnknownFormat,
		},
		{
			name: "missing output path",
			ctx:  context.Background,
			opts: Options{DataFile: data},
		},
		{
			name: "cancelled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			opts: Options{DataFile: data, OutputPath: "x.docx"},
			want: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &recordingWriter{}
			p := newTestPipeline(t, writer)

			_, err := p.GenerateReport(tt.ctx(), tt.opts)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if writer.calls != 0 {
				t.Error("Nothing should be written on failure")
			}
		})
	}
}

func TestGenerateReportDateCells(t *testing.T) {
	header := workbooktest.MonitoringHeader()
	row := workbooktest.MonitoringRow
	jan := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)

	data := workbooktest.New(t).
		Sheet("主品牌-盈米基金", header,
			row(1, "一月稿", jan, "新华网", "盈米同一摘要"),
			row(2, "十二月稿", dec, "新华网", "盈米同一摘要"),
		).
		Sheet("蚂蚁财富", header,
			row(1, "蚂蚁十二月", dec, "证券时报", ""),
			row(2, "蚂蚁一月", jan, "证券时报", ""),
		).
		Save("dates.xlsx")

	p := newTestPipeline(t, &recordingWriter{})
	result, err := p.GenerateReport(context.Background(), Options{DataFile: data, DryRun: true})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	text := result.Document.PlainText()
	if !strings.Contains(text, "1、新华网  2023-12-30 00:00:00  十二月稿") {
		t.Errorf("Expected the earlier-dated duplicate to be kept, got:\n%s", text)
	}
	if strings.Contains(text, "一月稿") {
		t.Error("Expected the later-dated duplicate to be dropped")
	}

	janIdx := strings.Index(text, "1. 蚂蚁一月")
	decIdx := strings.Index(text, "2. 蚂蚁十二月")
	if janIdx < 0 || decIdx < 0 {
		t.Fatalf("Expected competitor items ordered by date, got:\n%s", text)
	}
	if !strings.Contains(text, "发布时间：2024-01-05 00:00:00") {
		t.Error("Expected date cells rendered as full timestamps")
	}
}
