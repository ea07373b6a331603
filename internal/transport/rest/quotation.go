package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"cotizador/internal/document"
	"cotizador/internal/domain"
	"cotizador/internal/service"

	"github.com/rs/zerolog"
)

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pageData{})
}

// submitForm answers with the rendered document as an attachment, or with
// the form page carrying a single error message.
func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	values, err := parseQuotationForm(w, r)
	if err != nil {
		h.formError(w, r, values, err)
		return
	}

	q, err := h.quoter.Quote(ctx, values.request())
	if err != nil {
		h.formError(w, r, values, err)
		return
	}

	renderer, err := h.renderers.Get(values.format())
	if err != nil {
		h.formError(w, r, values, &service.ValidationError{
			Field:   domain.FieldFormat,
			Message: "El formato de documento solicitado no está disponible.",
		})
		return
	}

	doc, err := renderer.Render(*q)
	if err != nil {
		h.formError(w, r, values, &service.UnexpectedError{Err: err})
		return
	}

	logger.Info().
		Str("quotation_id", q.ID).
		Str("format", string(renderer.Format())).
		Int64("size", doc.Size()).
		Msg("quotation document generated")

	writeAttachment(w, r, q.ID, doc)
}

// createQuotation is the JSON variant of the form submission.
func (h *Handler) createQuotation(w http.ResponseWriter, r *http.Request) {
	values, err := parseQuotationJSON(r)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	q, err := h.quoter.Quote(r.Context(), values.request())
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	w.Header().Set("X-Quotation-ID", q.ID)
	Success(w, r, "Cotización generada", q)
}

func (h *Handler) formError(w http.ResponseWriter, r *http.Request, values formValues, err error) {
	message, field, status := classifyError(err)
	logError(r, err, status)
	renderPage(w, r, status, pageData{Values: values, Error: message, Field: field})
}

func (h *Handler) apiError(w http.ResponseWriter, r *http.Request, err error) {
	message, field, status := classifyError(err)
	logError(r, err, status)

	var data interface{}
	if field != "" {
		data = map[string]string{"field": field}
	}
	Error(w, r, message, data, status)
}

// classifyError maps an error to the text shown to the user, the offending
// field if any, and the HTTP status.
func classifyError(err error) (message, field string, status int) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Message, verr.Field, http.StatusUnprocessableEntity
	}

	var uerr *service.UnexpectedError
	if !errors.As(err, &uerr) {
		uerr = &service.UnexpectedError{Err: err}
	}

	status = http.StatusInternalServerError
	if errors.Is(err, service.ErrZeroTerm) || errors.Is(err, service.ErrMissingField) {
		status = http.StatusUnprocessableEntity
	}
	return uerr.Error(), "", status
}

func logError(r *http.Request, err error, status int) {
	logger := zerolog.Ctx(r.Context())
	event := logger.Info()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Int("status", status).Msg("quotation rejected")
}

func writeAttachment(w http.ResponseWriter, r *http.Request, quotationID string, doc *document.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size(), 10))
	w.Header().Set("X-Quotation-ID", quotationID)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, doc.Content); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("quotation_id", quotationID).Msg("write document")
	}
}
