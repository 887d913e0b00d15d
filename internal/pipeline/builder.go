package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"mediawatch/internal/classify"
	"mediawatch/internal/config"
	"mediawatch/internal/extract"
	"mediawatch/internal/filter"
	"mediawatch/internal/logger"
	"mediawatch/internal/report"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Builder helps construct a fully configured Pipeline
type Builder struct {
	cfg      *config.Config
	logger   *zerolog.Logger
	progress io.Writer
	writer   DocumentWriter
	now      func() time.Time
}

// NewBuilder creates a new pipeline builder for the given configuration
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		cfg:      cfg,
		progress: os.Stdout,
		now:      time.Now,
	}
}

// WithLogger sets the base logger; a run_id field is added on Build
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = &l
	return b
}

// WithProgress sets where step progress is printed
func (b *Builder) WithProgress(w io.Writer) *Builder {
	b.progress = w
	return b
}

// WithWriter replaces the document writer
func (b *Builder) WithWriter(w DocumentWriter) *Builder {
	b.writer = w
	return b
}

// WithClock sets the clock used for the generation timestamp
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build constructs a fully configured Pipeline
func (b *Builder) Build() (*Pipeline, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	runID := uuid.NewString()
	base := logger.Component("pipeline")
	if b.logger != nil {
		base = *b.logger
	}
	log := base.With().Str("run_id", runID).Logger()

	classifier := classify.New(classify.Rules{
		AuthoritativeMedia:   b.cfg.Classifier.AuthoritativeMedia,
		RepostSites:          b.cfg.Classifier.RepostSites,
		AnnouncementKeywords: b.cfg.Classifier.AnnouncementKeywords,
		BrandKeywords:        b.cfg.Classifier.BrandKeywords,
	})

	extractor := extract.New(layoutFromConfig(b.cfg.Layout), classifier, b.cfg.Report.PositiveTendency)
	engine := filter.NewEngine(classifier, log.With().Str("stage", "filter").Logger())
	composer := report.NewComposer(textsFromConfig(b.cfg.Report), classifier)

	writer := b.writer
	if writer == nil {
		writer = NewRendererAdapter()
	}

	progress := b.progress
	if progress == nil {
		progress = io.Discard
	}

	return &Pipeline{
		runID:      runID,
		sheets:     b.cfg.Sheets,
		headerRows: b.cfg.Layout.HeaderRows,
		format:     b.cfg.Output.Format,
		extractor:  extractor,
		filter:     engine,
		composer:   composer,
		writer:     writer,
		logger:     log,
		out:        progress,
		now:        b.now,
	}, nil
}

func layoutFromConfig(l config.Layout) extract.Layout {
	c, o := l.Columns, l.OfficialColumns
	return extract.Layout{
		Columns: extract.Columns{
			Sequence: c.Sequence, Topic: c.Topic, Title: c.Title, Time: c.Time,
			Tendency: c.Tendency, Source: c.Source, Channel: c.Channel,
			Author: c.Author, Summary: c.Summary,
		},
		OfficialColumns: extract.OfficialColumns{
			Sequence: o.Sequence, Media: o.Media, Date: o.Date, Topic: o.Topic,
			Title: o.Title, Reporter: o.Reporter, Signature: o.Signature, Link: o.Link,
		},
		StripMarkup: l.StripMarkup,
	}
}

func textsFromConfig(r config.Report) report.Texts {
	section := func(s config.Section) report.SectionOptions {
		return report.SectionOptions{
			Heading:       s.Heading,
			Empty:         s.Empty,
			LabelFormat:   s.LabelFormat,
			Labels:        s.LabelMap(),
			LabelFallback: s.LabelFallback,
			UnknownMedia:  r.UnknownMedia,
			MediaPrefix:   r.MediaPrefix,
			TimePrefix:    r.TimePrefix,
			LinkPrefix:    r.LinkPrefix,
		}
	}

	return report.Texts{
		Title:           r.Title,
		Period:          r.Period,
		SummaryHeading:  r.SummaryHeading,
		SummaryTemplate: r.SummaryTemplate,
		Counts:          r.Counts,
		Brand:           section(r.Brand),
		Competitor:      section(r.Competitor),
		Partner:         section(r.Partner),
		Industry:        section(r.Industry),
		NotesHeading:    r.NotesHeading,
		Notes:           r.Notes,
		TimestampPrefix: r.TimestampPrefix,
		TimestampLayout: r.TimestampLayout,
	}
}
