// Package server is the HTTP intake service for step 1 of the station
// registration.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/gorilla/schema"

	stationreg "github.com/goliatone/go-stationreg"
	"github.com/goliatone/go-stationreg/internal/platform/metrics"
	"github.com/goliatone/go-stationreg/pkg/model"
	"github.com/goliatone/go-stationreg/pkg/orchestrator"
	"github.com/goliatone/go-stationreg/pkg/registration"
	"github.com/goliatone/go-stationreg/pkg/render"
	"github.com/goliatone/go-stationreg/pkg/render/template/gotemplate"
	"github.com/goliatone/go-stationreg/pkg/renderers/vanilla"
)

// Route paths.
const (
	RouteRegister = "/register"
	RouteField    = "/register/fields/{field}"
	RouteLocation = "/register/location"
	RouteCancel   = "/register/cancel"
	RouteStepTwo  = "/register/step-2"
	RouteOpenAPI  = "/openapi.json"
	RouteAssets   = "/assets"
	RouteMetrics  = "/metrics"
	RouteHealth   = "/healthz"
)

// CookieName carries the session id.
const CookieName = "stationreg_session"

// CSRFField is the hidden input every POST must echo back.
const CSRFField = "_csrf"

//go:embed templates/*.tmpl
var pageTemplates embed.FS

// Config wires the handler's collaborators.
type Config struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// NextStep receives the values once step 1 passes. Nil only records them
	// on the session.
	NextStep registration.NextStep
	// ThemeSelector, ThemeName and ThemeVariant pick the page theme. A nil
	// selector renders the base stylesheet only.
	ThemeSelector theme.ThemeSelector
	ThemeName     string
	ThemeVariant  string
	SessionTTL    time.Duration
	CookieSecure  bool
}

// Handler serves the registration routes.
type Handler struct {
	logger       *slog.Logger
	metrics      *metrics.Metrics
	next         registration.NextStep
	orch         *orchestrator.Orchestrator
	form         model.FormModel
	renderer     render.Renderer
	pages        *gotemplate.Engine
	decoder      *schema.Decoder
	sessions     *Store
	themeName    string
	themeVariant string
	cookieSecure bool
}

// New builds the registration form model once and prepares the handler.
func New(ctx context.Context, cfg Config) (*Handler, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New(nil)
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	htmlRenderer, err := vanilla.New(
		vanilla.WithAssetsURL(RouteAssets),
		vanilla.WithFieldValidationURL(RouteField),
	)
	if err != nil {
		return nil, fmt.Errorf("server: renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)

	options := []orchestrator.Option{orchestrator.WithRegistry(registry)}
	if cfg.ThemeSelector != nil {
		options = append(options, orchestrator.WithThemeSelector(cfg.ThemeSelector))
	}
	orch := stationreg.RegistrationOrchestrator(options...)

	form, err := orch.Form(ctx, stationreg.RegistrationRequest())
	if err != nil {
		return nil, fmt.Errorf("server: build registration form: %w", err)
	}

	pages, err := gotemplate.New(gotemplate.WithFS(pageTemplates), gotemplate.WithExtension(".tmpl"))
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		next:         cfg.NextStep,
		orch:         orch,
		form:         form,
		renderer:     htmlRenderer,
		pages:        pages,
		decoder:      decoder,
		sessions:     NewStore(cfg.SessionTTL),
		themeName:    cfg.ThemeName,
		themeVariant: cfg.ThemeVariant,
		cookieSecure: cfg.CookieSecure,
	}, nil
}

// Register mounts the registration routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		redirect(w, r, RouteRegister)
	})
	r.Get(RouteRegister, h.handleForm)
	r.Post(RouteRegister, h.handleSubmit)
	r.Post(RouteField, h.handleField)
	r.Post(RouteLocation, h.handleLocation)
	r.Post(RouteCancel, h.handleCancel)
	r.Get(RouteStepTwo, h.handleStepTwo)
	r.Get(RouteOpenAPI, h.handleOpenAPI)
	r.Handle(RouteAssets+"/*", http.StripPrefix(RouteAssets+"/", http.FileServerFS(vanilla.AssetsFS())))
	r.Method(http.MethodGet, RouteMetrics, h.metrics.Handler())
	r.Get(RouteHealth, h.handleHealth)
}

// Router returns a chi router with request ids, panic recovery and request
// logging in front of the registration routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(h.logger))
	h.Register(r)
	return r
}

// Sessions exposes the session store.
func (h *Handler) Sessions() *Store {
	return h.sessions
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request",
				"request_id", chimiddleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

var (
	errSessionExpired = errors.New("server: session expired")
	errInvalidCSRF    = errors.New("server: invalid csrf token")
)
