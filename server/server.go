package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"go.uber.org/zap"
	"product-store/cmd/config"
	"product-store/utils/logger"
)

// Server owns the listening socket and the http.Server lifecycle. The
// preferred port is probed upward when occupied, with a bounded attempt
// count, and Run drains in-flight requests once its context is cancelled.
type Server struct {
	httpSrv  *http.Server
	cfg      config.ServerConfig
	listener net.Listener
	port     int
}

func New(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpSrv: &http.Server{
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		cfg: cfg,
	}
}

// Listen binds the first unoccupied port at or above the preferred one.
// Only address-in-use continues the probe; any other bind error aborts.
func (s *Server) Listen() error {
	for i := 0; i < s.cfg.MaxPortAttempts; i++ {
		port := s.cfg.Port + i
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			if i > 0 {
				logger.Warn("preferred port occupied, bound fallback",
					zap.Int("preferred", s.cfg.Port),
					zap.Int("port", port))
			}
			s.listener = ln
			s.port = ln.Addr().(*net.TCPAddr).Port
			return nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return err
		}
		logger.Warn("port in use, probing next", zap.Int("port", port))
	}

	return fmt.Errorf("no free port within %d attempts starting at %d", s.cfg.MaxPortAttempts, s.cfg.Port)
}

// Port reports the bound port; zero before Listen succeeds
func (s *Server) Port() int {
	return s.port
}

// Run serves until ctx is cancelled, then closes the listener and waits for
// in-flight requests up to the configured shutdown timeout. The ctx is the
// generic "termination requested" event; signal wiring lives with the caller.
func (s *Server) Run(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.Serve(s.listener)
	}()

	logger.Info("server running", zap.Int("port", s.port))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("termination requested, draining in-flight requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}
