package domain

// Form field names as submitted by the quotation page.
const (
	FieldClientName    = "nombre_cliente"
	FieldSellerName    = "nombre_vendedor"
	FieldPropertyValue = "valor_propiedad"
	FieldDownPayment   = "pie"
	FieldMonthlyRate   = "tasa_mensual"
	FieldTermMonths    = "plazo_meses"
	FieldFormat        = "formato"
)

// QuotationRequest holds the raw text of one form submission.
type QuotationRequest struct {
	ClientName    string
	SellerName    string
	PropertyValue string
	DownPayment   string
	MonthlyRate   string
	TermMonths    string

	// Present lists the fields that were actually submitted, so a missing
	// field can be told apart from an empty one.
	Present map[string]bool
}

// Has reports whether field was submitted. A request built without
// Present bookkeeping is treated as complete.
func (r QuotationRequest) Has(field string) bool {
	if r.Present == nil {
		return true
	}
	return r.Present[field]
}

// Quotation is the computed offer handed to the document renderers.
type Quotation struct {
	ID               string  `json:"id"`
	ClientName       string  `json:"nombre_cliente"`
	SellerName       string  `json:"nombre_vendedor"`
	PropertyValue    int64   `json:"valor_propiedad"`
	DownPayment      int64   `json:"pie"`
	MonthlyRate      float64 `json:"tasa_mensual"`
	TermMonths       int     `json:"plazo_meses"`
	GeneratedAt      string  `json:"fecha"`
	RemainingBalance int64   `json:"saldo_restante"`
	MonthlyPayment   int64   `json:"cuota_mensual"`
}
