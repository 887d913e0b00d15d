package report

import (
	"strconv"
	"strings"
	"time"

	"mediawatch/internal/classify"
	"mediawatch/internal/core"
)

// Texts are the fixed texts of the document skeleton.
type Texts struct {
	Title           string
	Period          string // "{start_date}" and "{end_date}" are replaced
	SummaryHeading  string
	SummaryTemplate string         // Dates plus one "{name}" placeholder per Counts entry
	Counts          map[string]int // Narrative figures supplied by configuration
	Brand           SectionOptions
	Competitor      SectionOptions
	Partner         SectionOptions
	Industry        SectionOptions
	NotesHeading    string
	Notes           string
	TimestampPrefix string
	TimestampLayout string
}

// Input is everything one report is composed from. Item sets are expected to
// be filtered and deduplicated already.
type Input struct {
	StartDate   string
	EndDate     string
	Brand       []core.Item
	Competitor  []core.Item
	Partner     []core.Item
	Industry    []core.Item
	GeneratedAt time.Time
}

// Composer lays out the report skeleton.
type Composer struct {
	texts      Texts
	classifier *classify.Classifier
}

// NewComposer creates a Composer.
func NewComposer(texts Texts, classifier *classify.Classifier) *Composer {
	return &Composer{texts: texts, classifier: classifier}
}

// Compose builds the document: title, period, summary narrative, the four
// content sections, notes and generation timestamp, in that order.
func (c *Composer) Compose(in Input) Document {
	t := c.texts
	vars := c.placeholders(in)

	doc := Document{}
	doc.Paragraphs = append(doc.Paragraphs,
		Paragraph{Kind: KindTitle, Text: t.Title, Centered: true},
		Paragraph{Kind: KindText, Text: vars.Replace(t.Period), Size: 12, Centered: true},
		Paragraph{Kind: KindSpacer},
	)

	summary := Section{
		Heading: t.SummaryHeading,
		Body:    []Paragraph{{Kind: KindText, Text: strings.TrimSpace(vars.Replace(t.SummaryTemplate))}},
	}

	sections := []Section{
		summary,
		BrandSection(in.Brand, c.classifier, t.Brand),
		ItemSection(in.Competitor, t.Competitor),
		ItemSection(in.Partner, t.Partner),
		ItemSection(in.Industry, t.Industry),
		{
			Heading: t.NotesHeading,
			Body:    []Paragraph{{Kind: KindText, Text: strings.TrimSpace(t.Notes)}},
		},
	}
	for _, s := range sections {
		doc.Paragraphs = append(doc.Paragraphs, s.Paragraphs()...)
	}

	doc.Paragraphs = append(doc.Paragraphs,
		Paragraph{Kind: KindSpacer},
		Paragraph{
			Kind:  KindText,
			Text:  t.TimestampPrefix + in.GeneratedAt.Format(t.TimestampLayout),
			Size:  10,
			Color: ColorMuted,
		},
	)
	return doc
}

func (c *Composer) placeholders(in Input) *strings.Replacer {
	pairs := []string{"{start_date}", in.StartDate, "{end_date}", in.EndDate}
	for name, n := range c.texts.Counts {
		pairs = append(pairs, "{"+name+"}", strconv.Itoa(n))
	}
	return strings.NewReplacer(pairs...)
}
