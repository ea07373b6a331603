// Package document turns a computed quotation into a downloadable file.
package document

import (
	"bytes"
	"fmt"

	"cotizador/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

const (
	Title        = "Cotización de Propiedad"
	DetailsLabel = "Detalles de la Cotización:"
	ResultsLabel = "Resultados:"
)

// Document is a rendered file ready to be streamed as an attachment.
type Document struct {
	FileName    string
	ContentType string
	Content     *bytes.Reader
}

func (d *Document) Size() int64 {
	return d.Content.Size()
}

type Renderer interface {
	Format() Format
	Render(q domain.Quotation) (*Document, error)
}

type Registry struct {
	renderers map[Format]Renderer
}

func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[Format]Renderer, len(renderers))}
	for _, rd := range renderers {
		r.renderers[rd.Format()] = rd
	}
	return r
}

// Get returns the renderer for f. An empty format selects PDF.
func (r *Registry) Get(f Format) (Renderer, error) {
	if f == "" {
		f = FormatPDF
	}
	rd, ok := r.renderers[f]
	if !ok {
		return nil, fmt.Errorf("unsupported document format %q", f)
	}
	return rd, nil
}

// Currency formats a whole amount as "$1,234,567.00".
func Currency(amount int64) string {
	return message.NewPrinter(language.English).Sprintf("$%d.00", amount)
}
