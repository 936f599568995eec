// Package server exposes the certificate pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/catalog"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/dispatch"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/health"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/history"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/logger"
)

// Deps are the components the handlers operate on.
type Deps struct {
	Pipeline  *dispatch.Pipeline
	Catalog   *catalog.Catalog
	Ledger    *history.Ledger
	OutputDir string
	Checks    health.Checks
}

// Server is the HTTP front end.
type Server struct {
	deps            Deps
	log             *slog.Logger
	router          chi.Router
	server          *http.Server
	shutdownTimeout time.Duration
	maxUpload       int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAddress sets the listen address. Default: ":8080".
func WithAddress(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.server.Addr = addr
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default: 30s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithMaxUploadSize limits multipart request bodies. Default: 32 MiB.
func WithMaxUploadSize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// New builds a Server with all routes registered.
func New(deps Deps, opts ...Option) *Server {
	s := &Server{
		deps:            deps,
		log:             logger.NewNope(),
		router:          chi.NewRouter(),
		shutdownTimeout: 30 * time.Second,
		maxUpload:       32 << 20,
		server: &http.Server{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	s.server.Handler = s.router
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled or SIGINT/SIGTERM arrives, then shuts down gracefully.
// Batches run synchronously inside requests, so there is no write timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer shutdownCancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.log.Error("shutdown failed", slog.String("error", err.Error()))
		return err
	}
	s.log.Info("shutdown completed")
	return nil
}
