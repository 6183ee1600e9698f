package http

import (
	"context"
	"embed"
	"errors"
	"encoding/json"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/texdex"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly closed.
const ShutdownTimeout = 5 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// RequestObserver receives one call per served request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Server serves the search page, the status endpoint, and metrics.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address, for example ":10000".
	Addr string

	SearchService texdex.SearchService
	Logger        zerolog.Logger

	// Observer, if set, records request metrics.
	Observer RequestObserver

	// MetricsHandler, if set, is served at /metrics.
	MetricsHandler http.Handler
}

// NewServer returns a new Server with its routes installed.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
		},
		Logger: zerolog.Nop(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/status", s.handleStatus)
	r.Get("/metrics", s.handleMetrics)

	s.router = r
	s.server.Handler = r
	return s
}

// Open binds to Addr and begins serving in a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.Listen(ln)
	return nil
}

// Listen begins serving on ln in a background goroutine. The server takes
// ownership of ln. A serve failure other than shutdown is logged.
func (s *Server) Listen(ln net.Listener) {
	s.ln = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error().Err(err).Str("addr", ln.Addr().String()).Msg("server stopped")
		}
	}()
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type indexData struct {
	Query   string
	Records []*texdex.Record
	Error   string
}

// handleIndex renders the listing for an empty query and search results
// otherwise.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	result, err := s.SearchService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, indexData{Query: result.Query, Records: result.Records})
}

type statusResponse struct {
	Status         string `json:"status"`
	IndexedEntries *int   `json:"indexed_entries,omitempty"`
}

// handleStatus reports the number of indexed records.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.SearchService.Status(r.Context())
	if err != nil {
		code := errorStatusCode(err)
		s.logError(r, err, code)
		resp := statusResponse{Status: "error"}
		if code == http.StatusServiceUnavailable {
			resp.Status = "unavailable"
		}
		s.writeJSON(w, code, resp)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Status: "ok", IndexedEntries: &status.IndexedEntries})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.MetricsHandler == nil {
		http.NotFound(w, r)
		return
	}
	s.MetricsHandler.ServeHTTP(w, r)
}

// renderError writes the error page. Error details are logged, never shown.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorStatusCode(err)
	s.logError(r, err, code)

	msg := "Something went wrong. Please try again later."
	switch code {
	case http.StatusServiceUnavailable:
		msg = "Search is temporarily unavailable. Please try again later."
	case http.StatusBadRequest:
		msg = "That search could not be understood."
	}

	s.render(w, code, indexData{Query: r.URL.Query().Get("q"), Error: msg})
}

func (s *Server) render(w http.ResponseWriter, code int, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := indexTemplate.Execute(w, data); err != nil {
		s.Logger.Error().Err(err).Msg("render index")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) logError(r *http.Request, err error, code int) {
	ev := s.Logger.Warn()
	if code >= http.StatusInternalServerError {
		ev = s.Logger.Error()
	}
	ev.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("request failed")
}

// errorStatusCode maps texdex error codes to HTTP status codes.
func errorStatusCode(err error) int {
	switch texdex.ErrorCode(err) {
	case texdex.EINVALID:
		return http.StatusBadRequest
	case texdex.ENOTFOUND:
		return http.StatusNotFound
	case texdex.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// logRequests logs each request and reports it to the Observer.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(begin)

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		s.Logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", d).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")

		if s.Observer != nil {
			s.Observer.ObserveRequest(r.Method, route, status, d)
		}
	})
}
