// Package filter applies the quality gates and deduplication rules that turn
// extracted rows into reportable items.
package filter

import (
	"mediawatch/internal/classify"
	"mediawatch/internal/core"

	"github.com/rs/zerolog"
)

// Drop reasons reported in Stats and debug logs.
const (
	ReasonRepost           = "repost_site"
	ReasonAnnouncement     = "announcement"
	ReasonNotAuthoritative = "not_authoritative"
	ReasonDuplicate        = "duplicate"
	ReasonCrossDuplicate   = "cross_duplicate"
)

// Stats counts what a filtering pass kept and dropped.
type Stats struct {
	Input    int
	Kept     int
	Replaced int            // Retained items swapped for an earlier-dated duplicate
	Dropped  map[string]int // By reason
}

// Engine runs FilterAndDedup passes with one classifier.
type Engine struct {
	classifier *classify.Classifier
	logger     zerolog.Logger
}

// NewEngine creates an Engine that logs drop decisions to logger at debug level.
func NewEngine(classifier *classify.Classifier, logger zerolog.Logger) *Engine {
	return &Engine{classifier: classifier, logger: logger}
}

// FilterAndDedup drops repost, announcement and non-authoritative items, then
// deduplicates the rest. The input slice is not modified.
func (e *Engine) FilterAndDedup(items []core.Item) ([]core.Item, Stats) {
	stats := Stats{Input: len(items), Dropped: make(map[string]int)}

	candidates := make([]core.Item, 0, len(items))
	for _, item := range items {
		if reason := e.rejectReason(item); reason != "" {
			stats.Dropped[reason]++
			e.recordDrop(item, reason)
			continue
		}
		candidates = append(candidates, item)
	}

	kept := e.dedup(candidates, &stats)
	stats.Kept = len(kept)
	return kept, stats
}

func (e *Engine) rejectReason(item core.Item) string {
	switch {
	case e.classifier.IsRepostSite(item.Source):
		return ReasonRepost
	case e.classifier.IsAnnouncementTitle(item.Title):
		return ReasonAnnouncement
	case !e.classifier.IsAuthoritativeMedia(item.Source):
		return ReasonNotAuthoritative
	}
	return ""
}

// dedup keeps one item per key. Title keys and summary keys share one key
// space. A title-keyed item never displaces a retained one; a summary-keyed
// item does when its time string is non-empty and strictly smaller.
func (e *Engine) dedup(items []core.Item, stats *Stats) []core.Item {
	index := make(map[string]int, len(items))
	kept := make([]core.Item, 0, len(items))

	for _, item := range items {
		key, fromSummary := item.DedupKey()

		pos, seen := index[key]
		if !seen {
			index[key] = len(kept)
			kept = append(kept, item)
			continue
		}

		existing := kept[pos]
		if fromSummary && item.Time != "" && item.Time < existing.Time {
			kept[pos] = item
			stats.Replaced++
			e.recordDrop(existing, ReasonDuplicate)
		} else {
			e.recordDrop(item, ReasonDuplicate)
		}
		stats.Dropped[ReasonDuplicate]++
	}

	return kept
}

func (e *Engine) recordDrop(item core.Item, reason string) {
	e.logger.Debug().
		Str("reason", reason).
		Str("sheet", item.SheetName).
		Str("source", item.Source).
		Str("time", item.Time).
		Str("title", item.Title).
		Msg("item dropped")
}

// RemoveCrossDuplicates drops candidates whose trimmed title matches a brand
// item's title or whose non-empty trimmed summary matches a brand item's summary.
func (e *Engine) RemoveCrossDuplicates(brand, candidates []core.Item) ([]core.Item, int) {
	titles, summaries := BrandIndex(brand)

	kept := make([]core.Item, 0, len(candidates))
	removed := 0
	for _, item := range candidates {
		if isCrossDuplicate(item, titles, summaries) {
			removed++
			e.recordDrop(item, ReasonCrossDuplicate)
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}

// BrandIndex returns the trimmed title and non-empty trimmed summary sets of the brand items.
func BrandIndex(brand []core.Item) (titles, summaries map[string]struct{}) {
	titles = make(map[string]struct{}, len(brand))
	summaries = make(map[string]struct{}, len(brand))
	for _, item := range brand {
		titles[item.TrimmedTitle()] = struct{}{}
		if item.Summary != "" {
			summaries[item.TrimmedSummary()] = struct{}{}
		}
	}
	return titles, summaries
}

func isCrossDuplicate(item core.Item, titles, summaries map[string]struct{}) bool {
	if _, ok := titles[item.TrimmedTitle()]; ok {
		return true
	}
	if s := item.TrimmedSummary(); s != "" {
		if _, ok := summaries[s]; ok {
			return true
		}
	}
	return false
}
