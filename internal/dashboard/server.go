package dashboard

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html static/*
var assets embed.FS

// HealthChecker reports whether the context API is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type Server struct {
	mux      *http.ServeMux
	tmpl     *template.Template
	renderer *Renderer
	api      HealthChecker
}

// NewServer wires the dashboard routes. metrics may be nil.
func NewServer(renderer *Renderer, api HealthChecker, metrics http.Handler) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		tmpl:     template.Must(template.ParseFS(assets, "templates/*.html")),
		renderer: renderer,
		api:      api,
	}
	s.routes(metrics)
	return s
}

func (s *Server) routes(metrics http.Handler) {
	static, _ := fs.Sub(assets, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/", s.handleDashboard)
	s.mux.HandleFunc("/dashboard", s.handleDashboard)
	if metrics != nil {
		s.mux.Handle("/metrics", metrics)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rec.status).
		Dur("duration", time.Since(start)).
		Msg("request")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "online"
	if err := s.api.Health(ctx); err != nil {
		status = "offline"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/dashboard" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := s.renderer.Render(r.Context())
	status := http.StatusOK
	if !page.Loaded {
		status = http.StatusBadGateway
	}
	s.render(w, status, "dashboard.html", page)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render error")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
