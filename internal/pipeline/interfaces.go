package pipeline

import (
	"mediawatch/internal/core"
	"mediawatch/internal/filter"
	"mediawatch/internal/render"
	"mediawatch/internal/report"
)

// ItemFilter applies quality gates and deduplication to extracted items
type ItemFilter interface {
	// FilterAndDedup drops unwanted items and collapses duplicates within one set
	FilterAndDedup(items []core.Item) ([]core.Item, filter.Stats)

	// RemoveCrossDuplicates drops candidates already covered by the brand set
	RemoveCrossDuplicates(brand, candidates []core.Item) ([]core.Item, int)
}

// DocumentComposer lays out the report from filtered item sets
type DocumentComposer interface {
	Compose(in report.Input) report.Document
}

// DocumentWriter persists a composed document
type DocumentWriter interface {
	// WriteDocument writes doc to path in the given format
	WriteDocument(doc report.Document, path string, format render.Format) error
}
