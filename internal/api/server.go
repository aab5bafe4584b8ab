package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

func NewHTTPServer(addr string, handler http.Handler) HTTPServer {
	return HTTPServer{
		addr:            addr,
		handler:         handler,
		shutdownTimeout: 5 * time.Second,
	}
}

// HTTPServer is a suture service around http.Server. Request contexts derive
// from the service context so event streams end on shutdown.
type HTTPServer struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
}

func (s HTTPServer) String() string {
	return "api.HTTPServer"
}

func (s HTTPServer) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	slog.Info("Starting HTTP server", "address", s.addr)

	errC := make(chan error, 1)
	go func() { errC <- server.ListenAndServe() }()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Failed to shutdown HTTP server gracefully", "error", err)
		server.Close()
	}

	if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
