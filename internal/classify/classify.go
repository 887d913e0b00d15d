// Package classify holds the keyword predicates that decide which monitoring
// entries are worth reporting. All predicates are substring tests against
// configured lists and treat empty input as non-matching.
package classify

import "strings"

// Rules are the keyword lists a Classifier is built from.
type Rules struct {
	AuthoritativeMedia   []string
	RepostSites          []string
	AnnouncementKeywords []string
	BrandKeywords        []string
}

// Classifier answers the four classification questions for an item.
type Classifier struct {
	authoritative []string
	repost        []string
	announcement  []string
	brand         []string
}

// New creates a Classifier. Blank tokens are dropped and announcement
// keywords are lower-cased to match the lower-cased title.
func New(rules Rules) *Classifier {
	announcement := make([]string, 0, len(rules.AnnouncementKeywords))
	for _, kw := range Compact(rules.AnnouncementKeywords) {
		announcement = append(announcement, strings.ToLower(kw))
	}

	return &Classifier{
		authoritative: Compact(rules.AuthoritativeMedia),
		repost:        Compact(rules.RepostSites),
		announcement:  announcement,
		brand:         Compact(rules.BrandKeywords),
	}
}

// IsAuthoritativeMedia reports whether the trimmed source names an allow-listed outlet.
func (c *Classifier) IsAuthoritativeMedia(source string) bool {
	if source == "" {
		return false
	}
	return containsAny(strings.TrimSpace(source), c.authoritative)
}

// IsRepostSite reports whether the trimmed source names a repost site.
func (c *Classifier) IsRepostSite(source string) bool {
	if source == "" {
		return false
	}
	return containsAny(strings.TrimSpace(source), c.repost)
}

// IsAnnouncementTitle reports whether the title looks like a routine notice.
func (c *Classifier) IsAnnouncementTitle(title string) bool {
	if title == "" {
		return false
	}
	return containsAny(strings.ToLower(title), c.announcement)
}

// HasBrandContent reports whether the summary discusses the monitored brand.
func (c *Classifier) HasBrandContent(summary string) bool {
	if summary == "" {
		return false
	}
	return containsAny(summary, c.brand)
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// Compact returns values without blank entries. A blank token would match every string.
func Compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
