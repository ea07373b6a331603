package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cotizador/internal/document"
	"cotizador/internal/domain"
	"cotizador/internal/transport/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultRequestTimeout = 30 * time.Second

type Quoter interface {
	Quote(ctx context.Context, req domain.QuotationRequest) (*domain.Quotation, error)
}

type RendererRegistry interface {
	Get(f document.Format) (document.Renderer, error)
}

type Options struct {
	RequestTimeout time.Duration

	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool

	// AllowedOrigins may call the JSON API from a browser.
	AllowedOrigins []string
}

type Handler struct {
	quoter     Quoter
	renderers  RendererRegistry
	logger     zerolog.Logger
	timeout    time.Duration
	trustProxy bool
	origins    []string
}

func NewHandler(quoter Quoter, renderers RendererRegistry, logger zerolog.Logger, opts Options) *Handler {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Handler{
		quoter:     quoter,
		renderers:  renderers,
		logger:     logger,
		timeout:    timeout,
		trustProxy: opts.TrustProxy,
		origins:    opts.AllowedOrigins,
	}
}

func (h *Handler) InitRouter() *chi.Mux {
	return h.InitRouterWithLimiter(nil)
}

// InitRouterWithLimiter applies limit, when given, to the routes that
// compute quotations.
func (h *Handler) InitRouterWithLimiter(limit func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	if h.trustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(
		middleware.Logger(&h.logger),
		chimiddleware.Recoverer,
		chimiddleware.Timeout(h.timeout),
	)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	r.Get("/", h.showForm)

	cors := middleware.CORS(h.origins)
	r.With(cors).Options("/api/quotations", func(http.ResponseWriter, *http.Request) {})

	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Post("/", h.submitForm)
		r.With(cors).Post("/api/quotations", h.createQuotation)
	})

	return r
}
