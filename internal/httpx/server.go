package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Serve runs an HTTP server for handler on lis until ctx is cancelled,
// then shuts it down gracefully.
func Serve(ctx context.Context, lis net.Listener, handler http.Handler, logger logging.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on address and calls Serve.
func ListenAndServe(ctx context.Context, address string, handler http.Handler, logger logging.Logger) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	return Serve(ctx, lis, handler, logger)
}
