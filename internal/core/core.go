package core

import "strings"

// Group names a report bucket that one or more workbook sheets feed into.
type Group string

const (
	GroupBrand      Group = "brand"
	GroupCompetitor Group = "competitor"
	GroupPartner    Group = "partner"
	GroupBankBroker Group = "bank_broker"
	GroupIndustry   Group = "industry"
)

// Groups lists every group in report order.
func Groups() []Group {
	return []Group{GroupBrand, GroupCompetitor, GroupPartner, GroupBankBroker, GroupIndustry}
}

// Item is one media-monitoring entry extracted from a single workbook row.
type Item struct {
	Sequence  string `json:"sequence" yaml:"sequence"`     // Row identifier from the source sheet (not used for logic)
	Topic     string `json:"topic" yaml:"topic"`           // Free-text category label
	Title     string `json:"title" yaml:"title"`           // Headline; never empty for an extracted item
	Time      string `json:"time" yaml:"time"`             // Publication time, normalized to a string
	Tendency  string `json:"tendency" yaml:"tendency"`     // Sentiment label, informational only
	Source    string `json:"source" yaml:"source"`         // Originating outlet, input to the classifiers
	Media     string `json:"media" yaml:"media"`           // Outlet name from the official reports sheet
	Channel   string `json:"channel" yaml:"channel"`       // Channel metadata, passed through
	Author    string `json:"author" yaml:"author"`         // Author metadata, passed through
	Reporter  string `json:"reporter" yaml:"reporter"`     // Reporter from the official reports sheet
	Signature string `json:"signature" yaml:"signature"`   // Byline signature from the official reports sheet
	Link      string `json:"link" yaml:"link"`             // Original article URL (optional)
	Summary   string `json:"summary" yaml:"summary"`       // Summary text (optional); drives dedup keys
	SheetName string `json:"sheet_name" yaml:"sheet_name"` // Originating sheet, used for category labels
}

// TrimmedTitle returns the title without surrounding whitespace.
func (i Item) TrimmedTitle() string {
	return strings.TrimSpace(i.Title)
}

// TrimmedSummary returns the summary without surrounding whitespace.
func (i Item) TrimmedSummary() string {
	return strings.TrimSpace(i.Summary)
}

// DedupKey returns the trimmed summary, or the trimmed title when there is no summary.
// The second return value reports whether the key came from the summary.
func (i Item) DedupKey() (string, bool) {
	if i.Summary != "" {
		return i.TrimmedSummary(), true
	}
	return i.TrimmedTitle(), false
}

// DisplayMedia returns the outlet name used in rendered output.
func (i Item) DisplayMedia(unknown string) string {
	if i.Media != "" {
		return i.Media
	}
	if i.Source != "" {
		return i.Source
	}
	return unknown
}
