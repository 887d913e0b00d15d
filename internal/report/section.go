package report

import (
	"fmt"
	"sort"
	"strings"

	"mediawatch/internal/classify"
	"mediawatch/internal/core"
)

const indent = "   "

// SectionOptions holds the fixed texts of one section.
type SectionOptions struct {
	Heading       string
	Empty         string            // Sentence rendered when there are no items
	LabelFormat   string            // Category label line, "{label}" is replaced
	Labels        map[string]string // Sheet name -> category label
	LabelFallback bool              // Use the raw sheet name when it has no label
	UnknownMedia  string
	MediaPrefix   string
	TimePrefix    string
	LinkPrefix    string
}

// categoryLabel returns the rendered label line for a sheet, if any.
func (o SectionOptions) categoryLabel(sheet string) (string, bool) {
	if sheet == "" || o.LabelFormat == "" {
		return "", false
	}
	label, ok := o.Labels[sheet]
	if !ok {
		if !o.LabelFallback {
			return "", false
		}
		label = sheet
	}
	return strings.ReplaceAll(o.LabelFormat, "{label}", label), true
}

// SortByTimeDesc returns a copy of items ordered by time string, most recent
// looking first. Equal times keep their input order.
func SortByTimeDesc(items []core.Item) []core.Item {
	sorted := make([]core.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time > sorted[j].Time
	})
	return sorted
}

// BrandSection renders the brand highlights. Summaries are shown only when
// they mention the brand.
func BrandSection(items []core.Item, classifier *classify.Classifier, opts SectionOptions) Section {
	section := Section{Heading: opts.Heading}
	if len(items) == 0 {
		section.Body = []Paragraph{{Kind: KindText, Text: opts.Empty}}
		return section
	}

	for i, item := range SortByTimeDesc(items) {
		section.Body = append(section.Body, Paragraph{
			Kind: KindText,
			Text: fmt.Sprintf("%d、%s  %s  %s", i+1, item.DisplayMedia(opts.UnknownMedia), item.Time, item.Title),
			Size: 12,
		})
		if classifier.HasBrandContent(item.Summary) {
			section.Body = append(section.Body, Paragraph{Kind: KindText, Text: item.Summary, Size: 11})
		}
		if item.Link != "" {
			section.Body = append(section.Body, linkParagraph("", opts.LinkPrefix, item.Link))
		}
		section.Body = append(section.Body, Paragraph{Kind: KindSpacer})
	}
	return section
}

// ItemSection renders a competitor, partner or industry section.
func ItemSection(items []core.Item, opts SectionOptions) Section {
	section := Section{Heading: opts.Heading}
	if len(items) == 0 {
		section.Body = []Paragraph{{Kind: KindText, Text: opts.Empty}}
		return section
	}

	for i, item := range SortByTimeDesc(items) {
		section.Body = append(section.Body, Paragraph{
			Kind: KindText,
			Text: fmt.Sprintf("%d. %s", i+1, item.Title),
			Bold: true,
			Size: 12,
		})
		if label, ok := opts.categoryLabel(item.SheetName); ok {
			section.Body = append(section.Body, Paragraph{Kind: KindText, Text: indent + label})
		}
		media := item.Source
		if media == "" {
			media = opts.UnknownMedia
		}
		section.Body = append(section.Body,
			Paragraph{Kind: KindText, Text: indent + opts.MediaPrefix + media},
			Paragraph{Kind: KindText, Text: indent + opts.TimePrefix + item.Time},
		)
		if item.Link != "" {
			section.Body = append(section.Body, linkParagraph(indent, opts.LinkPrefix, item.Link))
		}
		section.Body = append(section.Body, Paragraph{Kind: KindSpacer})
	}
	return section
}

func linkParagraph(prefix, label, link string) Paragraph {
	return Paragraph{
		Kind:  KindText,
		Text:  prefix + label,
		Link:  link,
		Size:  10,
		Color: ColorLink,
	}
}
