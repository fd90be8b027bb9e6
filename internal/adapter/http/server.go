package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
)

type Server struct {
	srv    *http.Server
	logger logger.Logger
}

func NewServer(port int, handler http.Handler, logger logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("service_started", fmt.Sprintf("Daily orders listening on %s", s.srv.Addr), "startup", map[string]interface{}{
		"addr": s.srv.Addr,
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown_initiated", "Shutting down HTTP server", "shutdown", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}
