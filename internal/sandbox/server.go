// Package sandbox serves the site's content REST API from a local SQLite
// database so the console can be run and tested without the real backend.
package sandbox

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"site-admin/internal/catalog"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Config struct {
	// Token, when set, must be sent as a bearer token on every request.
	Token       string
	MaxPageSize int
}

type Server struct {
	store  *Store
	cfg    Config
	logger *log.Logger
	now    func() time.Time
}

func NewServer(store *Store, cfg Config, logger *log.Logger) *Server {
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = MaxPageSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		store:  store,
		cfg:    cfg,
		logger: logger.WithPrefix("sandbox"),
		now:    time.Now,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, response{Success: true, Message: "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Route("/{resource}", func(r chi.Router) {
			r.Use(s.resolveResource)
			r.Get("/", s.list)
			r.Post("/", s.create)
			r.Get("/{id}", s.get)
			r.Put("/{id}", s.update)
			r.Patch("/{id}", s.update)
			r.Delete("/{id}", s.delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type resourceKey struct{}

func (s *Server) resolveResource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "resource")
		for _, res := range catalog.All() {
			if res.Name == name {
				ctx := context.WithValue(r.Context(), resourceKey{}, res)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		writeError(w, http.StatusNotFound, "Unknown resource: "+name)
	})
}

func resourceFrom(r *http.Request) *catalog.Resource {
	return r.Context().Value(resourceKey{}).(*catalog.Resource)
}
