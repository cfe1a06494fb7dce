// Package server owns listener setup and graceful HTTP serving.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/keyforge-games/keyforge/internal/logging"
)

const drainTimeout = 5 * time.Second

type Server struct {
	listener net.Listener
}

// New binds the port immediately so startup fails fast on a busy port.
func New(port string) (*Server, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on :%s: %w", port, err)
	}

	return &Server{listener: listener}, nil
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// ServeHTTP serves until the context is canceled, then drains in-flight
// requests before returning.
func (s *Server) ServeHTTP(ctx context.Context, srv *http.Server) error {
	logger := logging.FromContext(ctx).Named("server")

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", s.Addr())
		if err := srv.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
