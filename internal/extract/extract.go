// Package extract turns workbook rows into core.Item records.
package extract

import (
	"regexp"
	"strings"

	"mediawatch/internal/classify"
	"mediawatch/internal/core"
	"mediawatch/internal/workbook"

	"github.com/PuerkitoBio/goquery"
)

const hyperlinkPrefix = "=HYPERLINK"

var hyperlinkRe = regexp.MustCompile(`^=HYPERLINK\("([^"]+)",\s*"([^"]*)"\)`)

// Columns is the positional layout of monitoring sheets (0-based).
type Columns struct {
	Sequence, Topic, Title, Time, Tendency, Source, Channel, Author, Summary int
}

// OfficialColumns is the positional layout of the official media reports sheet (0-based).
type OfficialColumns struct {
	Sequence, Media, Date, Topic, Title, Reporter, Signature, Link int
}

// Layout tells the extractor where to find each field.
type Layout struct {
	Columns         Columns
	OfficialColumns OfficialColumns
	StripMarkup     bool
}

// Extractor builds items from rows.
type Extractor struct {
	layout           Layout
	classifier       *classify.Classifier
	positiveTendency string
}

// New creates an Extractor. The classifier screens official report rows and
// positiveTendency is the sentiment assigned to them.
func New(layout Layout, classifier *classify.Classifier, positiveTendency string) *Extractor {
	return &Extractor{
		layout:           layout,
		classifier:       classifier,
		positiveTendency: positiveTendency,
	}
}

// LinkColumns returns the monitoring-sheet columns that may carry links.
func (e *Extractor) LinkColumns() []int {
	return []int{e.layout.Columns.Title}
}

// DateColumns returns the monitoring-sheet columns holding publication times.
func (e *Extractor) DateColumns() []int {
	return []int{e.layout.Columns.Time}
}

// OfficialDateColumns returns the official-sheet columns holding publication dates.
func (e *Extractor) OfficialDateColumns() []int {
	return []int{e.layout.OfficialColumns.Date}
}

// OfficialLinkColumns returns the official-sheet columns that may carry links.
func (e *Extractor) OfficialLinkColumns() []int {
	return []int{e.layout.OfficialColumns.Title}
}

// FromRow extracts a monitoring item. It returns false for padding rows
// (empty first cell) and rows without a usable title.
func (e *Extractor) FromRow(row workbook.Row, sheet string) (core.Item, bool) {
	if strings.TrimSpace(row.Value(0)) == "" {
		return core.Item{}, false
	}

	cols := e.layout.Columns
	title, link := e.resolveTitle(row, cols.Title)
	if strings.TrimSpace(title) == "" {
		return core.Item{}, false
	}

	return core.Item{
		Sequence:  row.Value(cols.Sequence),
		Topic:     row.Value(cols.Topic),
		Title:     title,
		Time:      row.Value(cols.Time),
		Tendency:  row.Value(cols.Tendency),
		Source:    row.Value(cols.Source),
		Channel:   row.Value(cols.Channel),
		Author:    row.Value(cols.Author),
		Link:      link,
		Summary:   e.clean(row.Value(cols.Summary)),
		SheetName: sheet,
	}, true
}

// FromOfficialRow extracts an official media report. Title and link are both
// required and the outlet must be authoritative; summaries are left empty so
// these items dedup by title.
func (e *Extractor) FromOfficialRow(row workbook.Row) (core.Item, bool) {
	if strings.TrimSpace(row.Value(0)) == "" {
		return core.Item{}, false
	}

	cols := e.layout.OfficialColumns
	title, titleLink := e.resolveTitle(row, cols.Title)
	link := row.Value(cols.Link)
	if link == "" {
		link = titleLink
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(link) == "" {
		return core.Item{}, false
	}

	media := row.Value(cols.Media)
	if !e.classifier.IsAuthoritativeMedia(media) {
		return core.Item{}, false
	}

	return core.Item{
		Sequence:  row.Value(cols.Sequence),
		Topic:     row.Value(cols.Topic),
		Title:     title,
		Time:      row.Value(cols.Date),
		Tendency:  e.positiveTendency,
		Source:    media,
		Media:     media,
		Reporter:  row.Value(cols.Reporter),
		Signature: row.Value(cols.Signature),
		Link:      link,
	}, true
}

func (e *Extractor) resolveTitle(row workbook.Row, col int) (string, string) {
	cell := row.Value(col)
	if f := row.Formula(col); strings.HasPrefix(f, hyperlinkPrefix) {
		cell = f
	}

	title, link := ParseHyperlink(cell)
	if link == "" {
		link = row.Hyperlink(col)
	}
	return e.clean(title), link
}

func (e *Extractor) clean(s string) string {
	if !e.layout.StripMarkup {
		return s
	}
	return StripMarkup(s)
}

// ParseHyperlink splits a =HYPERLINK("url","label") cell into its label and url.
// Any other text is returned unchanged as the title with no link.
func ParseHyperlink(cell string) (title, link string) {
	if !strings.HasPrefix(cell, hyperlinkPrefix) {
		return cell, ""
	}
	m := hyperlinkRe.FindStringSubmatch(cell)
	if m == nil {
		return cell, ""
	}
	return m[2], m[1]
}

// StripMarkup removes HTML tags (such as <em> keyword highlights) from cell text.
func StripMarkup(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
