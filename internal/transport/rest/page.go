package rest

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").Option("missingkey=zero").ParseFS(templatesFS, "templates/index.html"),
)

type pageData struct {
	Values formValues
	Error  string
	Field  string
}

// renderPage writes the form page. The template is executed into a buffer
// first so a template failure never produces a half-written page.
func renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	if data.Values == nil {
		data.Values = formValues{}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render form page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("write form page")
	}
}
