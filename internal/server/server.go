package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"
)

// ErrDocsNotFound is returned when the built documentation directory does
// not exist yet.
var ErrDocsNotFound = errors.New("documentation not found: run 'vyperdoc build' first")

// shutdownTimeout caps how long active requests may run after a shutdown
// signal.
const shutdownTimeout = 10 * time.Second

// Server serves built documentation over HTTP.
type Server interface {
	// Serve blocks until ctx is cancelled or the listener fails.
	Serve(ctx context.Context) error
}

// docsServer implements the Server interface.
type docsServer struct {
	htmlDir string
	port    int
}

// NewServer creates a documentation server exposing htmlDir on the given
// port.
func NewServer(htmlDir string, port int) Server {
	return &docsServer{
		htmlDir: htmlDir,
		port:    port,
	}
}

func (s *docsServer) Serve(ctx context.Context) error {
	info, err := os.Stat(s.htmlDir)
	if err != nil || !info.IsDir() {
		return ErrDocsNotFound
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	log.Printf("Serving documentation at http://localhost:%d", s.port)

	return s.serve(ctx, listener)
}

// serve runs the HTTP server on listener and shuts it down gracefully when
// ctx is cancelled.
func (s *docsServer) serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		<-ctx.Done()

		// Stop accepting new connections, give active requests time to
		// finish.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	if err := httpServer.Serve(listener); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func (s *docsServer) handler() http.Handler {
	return http.FileServer(http.Dir(s.htmlDir))
}
