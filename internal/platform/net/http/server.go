package http

import (
	"context"
	stderrs "errors"
	"net"
	stdhttp "net/http"
	"time"

	"orderexport/internal/platform/config"
	"orderexport/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ServerConfig holds listener and timeout settings
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration // 0 means no limit
	ShutdownGrace     time.Duration
}

// ServerConfigFrom reads CORE_API_* style keys from cfg
func ServerConfigFrom(cfg config.Conf) ServerConfig {
	return ServerConfig{
		Addr:              cfg.MayPort("PORT", ":8080"),
		ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 0),
		ShutdownGrace:     cfg.MayDuration("SHUTDOWN_GRACE", 15*time.Second),
	}
}

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	cfg ServerConfig
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer creates a server; opts receive the *chi.Mux so callers can mount routes/mw
func NewServer(cfg ServerConfig, opts ...func(*chi.Mux)) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 15 * time.Second
	}
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		cfg: cfg,
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.Addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listening address
func (s *Server) Addr() string { return s.cfg.Addr }

// Run listens and serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if stderrs.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownGrace)
	defer cancel()
	log.Info().Dur("grace", s.cfg.ShutdownGrace).Msg("http shutting down")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrs.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
