// Package server exposes the netlist service over HTTP for the web client
// and serves the client's built assets.
//
// Routes keep the paths and response shapes the web client already calls:
//
//	POST   /upload?email=                        multipart field "file"
//	DELETE /delete_by_filename/{email}/{filename}
//	GET    /list?email=
//	POST   /validate                             raw body, nothing stored
//	GET    /healthz
//
// Everything else is static: /assets/ maps onto dist/assets, /static/ onto
// the dist directory itself, and any other GET answers with index.html so client-side routes
// survive a reload.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/jpl-au/quilter/internal/service"
)

// Defaults for Options fields left zero.
const (
	DefaultAddr      = ":8000"
	DefaultOrigin    = "*"
	DefaultMaxUpload = 10 * 1024 * 1024

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr           string       // Listen address
	FrontendOrigin string       // Access-Control-Allow-Origin value
	StaticDir      string       // Built web application; empty disables static serving
	MaxUpload      int64        // Largest accepted upload body in bytes
	Strict         bool         // Strict validation for /validate
	Logger         *slog.Logger // Request log; defaults to stderr text
}

// Server serves the netlist API.
type Server struct {
	svc     service.Service
	opts    Options
	logger  *slog.Logger
	handler http.Handler
}

// New builds a server around svc. svc may be nil, in which case only
// /validate, /healthz and static files work and every storage route answers
// 503.
func New(svc service.Service, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.FrontendOrigin == "" {
		opts.FrontendOrigin = DefaultOrigin
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = DefaultMaxUpload
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	s := &Server{svc: svc, opts: opts, logger: logger}
	s.handler = s.logRequests(s.cors(s.routes()))
	return s
}

// Handler returns the root handler with CORS and request logging applied.
// Both wrap the router so unmatched routes (404, 405) get them too.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// routes registers every endpoint. API routes come first so the SPA
// catch-all never shadows them.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/delete_by_filename/{email}/{filename}", s.handleDelete).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/list", s.handleList).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	if s.opts.StaticDir != "" {
		// /assets/ is the bundler's output directory; /static/ is the dist
		// root itself.
		assets := filepath.Join(s.opts.StaticDir, "assets")
		r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", s.static(assets)))
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", s.static(s.opts.StaticDir)))
		r.PathPrefix("/").HandlerFunc(s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context) error {
	hs := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("quilter HTTP server ready", "addr", s.opts.Addr, "origin", s.opts.FrontendOrigin, "static", s.opts.StaticDir)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := hs.Shutdown(shutdownCtx)
	if lerr := <-errc; lerr != nil && !errors.Is(lerr, http.ErrServerClosed) && err == nil {
		err = lerr
	}
	s.logger.Info("server stopped")
	return err
}
