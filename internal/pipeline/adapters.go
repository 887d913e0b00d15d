package pipeline

import (
	"mediawatch/internal/render"
	"mediawatch/internal/report"
)

// RendererAdapter wraps internal/render to implement DocumentWriter
type RendererAdapter struct{}

func NewRendererAdapter() *RendererAdapter {
	return &RendererAdapter{}
}

func (a *RendererAdapter) WriteDocument(doc report.Document, path string, format render.Format) error {
	return render.WriteDocument(doc, path, format)
}
