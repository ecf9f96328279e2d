// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docview/docview/internal/domain/entities"
	"github.com/docview/docview/internal/domain/usecases"
)

// Server serves rendered documents over HTTP.
type Server struct {
	view        *usecases.ViewUseCase
	check       *usecases.CheckUseCase
	defaultFile string
	static      http.Handler
	addr        string
	log         *slog.Logger
}

// NewServer creates a new HTTP server with all collaborators injected.
func NewServer(
	view *usecases.ViewUseCase,
	check *usecases.CheckUseCase,
	root string,
	defaultFile string,
	addr string,
	log *slog.Logger,
) *Server {
	if defaultFile == "" {
		defaultFile = "README.md"
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		view:        view,
		check:       check,
		defaultFile: defaultFile,
		static:      http.FileServer(http.Dir(root)),
		addr:        addr,
		log:         log,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(requestLogger(s.log))

	r.With(noCache).Get("/_check_update", s.handleCheckUpdate)
	r.Get("/*", s.handleAny)

	return r
}

// Start binds the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on an already-bound listener, which lets the
// caller probe for a free port before committing to it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Graceful shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.log.Info("serving documents", "addr", ln.Addr().String())

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleAny dispatches a request to the document pipeline or the static
// file fallback.
//
// 1. "/" and "/index.html" are aliases for the default document
// 2. markdown paths are rendered as full pages
// 3. a markdown path that cannot be served falls through to the static
//    handler so misses answer like a plain file server
func (s *Server) handleAny(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" || name == "index.html" {
		name = s.defaultFile
	}

	if !entities.IsDocument(name) {
		s.static.ServeHTTP(w, r)
		return
	}

	page, err := s.view.View(r.Context(), name)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) || errors.Is(err, entities.ErrNotDocument) {
			s.static.ServeHTTP(w, r)
			return
		}
		s.log.Error("serving document failed", "path", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleCheckUpdate reports the current modification stamp of a file.
// The status is always 200 so the polling client keeps its loop alive
// and decides what to do with an error itself.
func (s *Server) handleCheckUpdate(w http.ResponseWriter, r *http.Request) {
	status := s.check.Check(r.Context(), r.URL.Query().Get("file"))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.log.Error("encoding update status", "error", err)
	}
}

// noCache keeps polling responses out of every cache between the
// browser and the server.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs completed requests at debug level so normal
// browsing stays quiet unless verbose logging is on.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
