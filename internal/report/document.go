// Package report assembles filtered items into the weekly report document.
// Everything here is pure: no files are read or written.
package report

import "strings"

// Kind identifies how a paragraph is presented.
type Kind int

const (
	KindText Kind = iota
	KindTitle
	KindHeading
	KindSpacer
)

// Colors used for emphasis.
const (
	ColorLink  = "0000FF"
	ColorMuted = "808080"
)

// Paragraph is one line (or block of lines) of the document with its styling.
// Styling is presentation only; Text and Link carry the content.
type Paragraph struct {
	Kind     Kind
	Text     string
	Link     string  // When set, rendered after Text as a hyperlink
	Bold     bool
	Size     float64 // Points; 0 keeps the document default
	Color    string  // RGB hex without '#'
	Centered bool
}

// Content returns the paragraph's logical text.
func (p Paragraph) Content() string {
	return p.Text + p.Link
}

// Section is a headed run of paragraphs.
type Section struct {
	Heading string
	Body    []Paragraph
}

// Paragraphs returns the heading paragraph followed by the body.
func (s Section) Paragraphs() []Paragraph {
	out := make([]Paragraph, 0, len(s.Body)+1)
	out = append(out, Paragraph{Kind: KindHeading, Text: s.Heading})
	return append(out, s.Body...)
}

// Document is the composed report in display order.
type Document struct {
	Paragraphs []Paragraph
}

// PlainText renders the document content one paragraph per line.
func (d Document) PlainText() string {
	var b strings.Builder
	for _, p := range d.Paragraphs {
		b.WriteString(p.Content())
		b.WriteString("\n")
	}
	return b.String()
}
