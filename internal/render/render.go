package render

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediawatch/internal/report"

	"github.com/gingfrederik/docx"
)

// ErrUnknownFormat is returned for output formats other than docx and markdown.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output document format.
type Format string

const (
	FormatDocx     Format = "docx"
	FormatMarkdown Format = "markdown"
)

const (
	titleSize   = 20.0
	headingSize = 16.0
)

// ResolveFormat picks the output format from an explicit name, falling back
// to the output path's extension and then to docx.
func ResolveFormat(name, outputPath string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "docx":
		return FormatDocx, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	if f, ok := FormatFromPath(outputPath); ok {
		return f, nil
	}
	return FormatDocx, nil
}

// FormatFromPath infers the format from a known file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".docx":
		return FormatDocx, true
	}
	return "", false
}

// WriteDocument writes doc to outputPath in the given format, creating the parent directory.
func WriteDocument(doc report.Document, outputPath string, format Format) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	switch format {
	case FormatDocx:
		return writeDocx(doc, outputPath)
	case FormatMarkdown:
		if err := os.WriteFile(outputPath, []byte(Markdown(doc)), 0644); err != nil {
			return fmt.Errorf("failed to write report file %s: %w", outputPath, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// writeDocx maps each paragraph onto a Word paragraph. Multi-line text becomes
// one Word paragraph per line with the same styling.
// paragraphProperties is the w:pPr element. The docx package has no
// paragraph alignment, so it is appended to Paragraph.Data ahead of the runs.
type paragraphProperties struct {
	XMLName       xml.Name      `xml:"w:pPr"`
	Justification justification `xml:"w:jc"`
}

type justification struct {
	Val string `xml:"w:val,attr"`
}

func writeDocx(doc report.Document, outputPath string) error {
	f := docx.NewFile()

	for _, p := range doc.Paragraphs {
		if p.Kind == report.KindSpacer {
			f.AddParagraph()
			continue
		}

		size := p.Size
		switch p.Kind {
		case report.KindTitle:
			size = titleSize
		case report.KindHeading:
			size = headingSize
		}

		lines := strings.Split(p.Text, "\n")
		for i, line := range lines {
			para := f.AddParagraph()
			if p.Centered {
				para.Data = append(para.Data, paragraphProperties{Justification: justification{Val: "center"}})
			}
			if line != "" {
				run := para.AddText(line)
				if size > 0 {
					run.Size(int(size * 2)) // half-points
				}
				if p.Color != "" {
					run.Color(p.Color)
				}
			}
			if i == len(lines)-1 && p.Link != "" {
				para.AddLink(p.Link, p.Link)
			}
		}
	}

	if err := f.Save(outputPath); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", outputPath, err)
	}
	return nil
}

// Markdown renders the document as Markdown.
func Markdown(doc report.Document) string {
	var b strings.Builder

	for _, p := range doc.Paragraphs {
		switch p.Kind {
		case report.KindTitle:
			b.WriteString(fmt.Sprintf("# %s\n\n", p.Text))
		case report.KindHeading:
			b.WriteString(fmt.Sprintf("\n## %s\n\n", p.Text))
		case report.KindSpacer:
			b.WriteString("\n")
		default:
			b.WriteString(markdownText(p))
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func markdownText(p report.Paragraph) string {
	lines := strings.Split(p.Text, "\n")
	for i, line := range lines {
		// Leading spaces would turn into code blocks.
		line = strings.TrimLeft(line, " ")
		if p.Bold && line != "" {
			line = "**" + line + "**"
		}
		lines[i] = line
	}

	text := strings.Join(lines, "  \n")
	if p.Link != "" {
		text += fmt.Sprintf("[%s](%s)", p.Link, p.Link)
	}
	return text + "  \n"
}
