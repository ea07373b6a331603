package document

import (
	"bytes"
	"fmt"

	"cotizador/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxFileName    = "cotizacion.xlsx"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxSheet       = "Cotizacion"
	xlsxCurrencyFmt = `"$"#,##0.00`
)

type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Format() Format {
	return FormatXLSX
}

type xlsxRow struct {
	label    string
	value    any
	currency bool
	heading  bool
}

func xlsxRows(q domain.Quotation) []xlsxRow {
	return []xlsxRow{
		{label: Title, heading: true},
		{label: "Fecha", value: q.GeneratedAt},
		{label: "Cliente", value: q.ClientName},
		{label: "Vendedor", value: q.SellerName},
		{},
		{label: DetailsLabel, heading: true},
		{label: "Valor de la propiedad", value: q.PropertyValue, currency: true},
		{label: "Valor del pie", value: q.DownPayment, currency: true},
		{label: "Tasa mensual (%)", value: q.MonthlyRate},
		{label: "Plazo (meses)", value: q.TermMonths},
		{},
		{label: ResultsLabel, heading: true},
		{label: "Saldo restante", value: q.RemainingBalance, currency: true},
		{label: "Cuota mensual", value: q.MonthlyPayment, currency: true},
	}
}

// Render lays the quotation out as label/value pairs on one sheet.
func (r *XLSXRenderer) Render(q domain.Quotation) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	_ = f.SetDocProps(&excelize.DocProperties{
		Title:   Title,
		Subject: "Cotización " + q.ID,
		Creator: "cotizador",
	})

	numFmt := xlsxCurrencyFmt
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("currency style: %w", err)
	}
	headingStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("heading style: %w", err)
	}

	for i, row := range xlsxRows(q) {
		if row.label == "" {
			continue
		}
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)

		if err := f.SetCellValue(xlsxSheet, labelCell, row.label); err != nil {
			return nil, fmt.Errorf("set %s: %w", labelCell, err)
		}
		if row.heading {
			_ = f.SetCellStyle(xlsxSheet, labelCell, labelCell, headingStyle)
			continue
		}
		if err := f.SetCellValue(xlsxSheet, valueCell, row.value); err != nil {
			return nil, fmt.Errorf("set %s: %w", valueCell, err)
		}
		if row.currency {
			_ = f.SetCellStyle(xlsxSheet, valueCell, valueCell, currencyStyle)
		}
	}
	_ = f.SetColWidth(xlsxSheet, "A", "A", 28)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	return &Document{
		FileName:    xlsxFileName,
		ContentType: xlsxContentType,
		Content:     bytes.NewReader(buf.Bytes()),
	}, nil
}
