package document

import (
	"bytes"
	"fmt"

	"cotizador/internal/domain"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFileName    = "cotizacion.pdf"
	pdfContentType = "application/pdf"

	pdfMarginLeft = 50.0
	pdfFontFamily = "Helvetica"
	pdfFontSize   = 12.0
)

type PDFRenderer struct {
	compress bool
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{compress: true}
}

func (r *PDFRenderer) Format() Format {
	return FormatPDF
}

// line is one text draw; y is measured in points from the bottom of the page.
type line struct {
	y    float64
	text string
}

func pdfLines(q domain.Quotation) []line {
	return []line{
		{750, Title},
		{720, "Fecha: " + q.GeneratedAt},
		{700, "Cliente: " + q.ClientName},
		{680, "Vendedor: " + q.SellerName},
		{650, DetailsLabel},
		{630, "• Valor de la propiedad: " + Currency(q.PropertyValue)},
		{610, "• Valor del pie: " + Currency(q.DownPayment)},
		{590, fmt.Sprintf("• Plazo: %d meses", q.TermMonths)},
		{570, ResultsLabel},
		{550, "» Cuota mensual: " + Currency(q.MonthlyPayment)},
	}
}

// Render draws the quotation on a single Letter page.
func (r *PDFRenderer) Render(q domain.Quotation) (*Document, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(Title, true)
	pdf.SetSubject("Cotización "+q.ID, true)
	pdf.SetCreator("cotizador", false)

	// core fonts are cp1252; runes outside it are printed as "."
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "", pdfFontSize)
	_, pageHeight := pdf.GetPageSize()

	for _, l := range pdfLines(q) {
		pdf.Text(pdfMarginLeft, pageHeight-l.y, tr(l.text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return &Document{
		FileName:    pdfFileName,
		ContentType: pdfContentType,
		Content:     bytes.NewReader(buf.Bytes()),
	}, nil
}
