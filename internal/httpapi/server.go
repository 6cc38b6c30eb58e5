// Package httpapi is the HTTP boundary in front of the query gateway and
// the document archive.
//
// Endpoints:
//
//	POST /execute_sql  execute one SQL statement against the store
//	POST /upload_file  archive one bank-statement document
//	GET  /healthz      liveness probe
//
// All per-request errors are converted to structured JSON responses; nothing
// crashes the process. Each request that touches the store opens its own
// connection and closes it before the response is returned.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"compta/database/internal/config"
	"compta/database/internal/logging"
	"compta/database/internal/store"
)

// Server routes inbound requests to the gateway and the archive.
type Server struct {
	profile  *config.Profile
	provider *store.Provider
	handler  http.Handler
}

// New builds a server around an immutable profile and a connection provider.
func New(profile *config.Profile, provider *store.Provider) *Server {
	s := &Server{profile: profile, provider: provider}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /execute_sql", s.handleExecuteSQL)
	mux.HandleFunc("POST /upload_file", s.handleUploadFile)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.handler = withRequestLog(mux)
	return s
}

// Handler returns the full middleware-wrapped handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logger := logging.Component("httpapi")

	srv := &http.Server{
		Addr:         s.profile.ListenAddr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", s.profile.ListenAddr, "env", string(s.profile.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
