// Package server exposes puid generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"github.com/aitorfernandez/puid"
)

const (
	// MaxCount caps how many IDs a single request may mint.
	MaxCount = 1000

	// MaxLength caps the random suffix length a request may ask for.
	MaxLength = 256
)

// Server mints IDs for HTTP clients.
type Server struct {
	gen    *puid.Generator
	logger *slog.Logger
	mux    *http.ServeMux
}

// New returns a Server that mints IDs with gen.
func New(gen *puid.Generator, logger *slog.Logger) *Server {
	s := &Server{gen: gen, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /v1/ids", s.handleIDs)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type idsResponse struct {
	IDs []string `json:"ids"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIDs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	length, err := intParam(q.Get("length"), puid.DefaultLength)
	if err != nil || length < 0 || length > MaxLength {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("length must be between 0 and %d", MaxLength))
		return
	}
	count, err := intParam(q.Get("count"), 1)
	if err != nil || count < 1 || count > MaxCount {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("count must be between 1 and %d", MaxCount))
		return
	}

	prefix := q.Get("prefix")
	ids := make([]string, 0, count)
	for range count {
		id, err := s.gen.GenerateN(prefix, length)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		ids = append(ids, id)
	}

	s.logger.Debug("minted ids", "prefix", prefix, "count", count)
	s.writeJSON(w, http.StatusOK, idsResponse{IDs: ids})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// Listen opens a local TCP listener on addr.
func Listen(addr string) (net.Listener, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, "http://" + ln.Addr().String(), nil
}

// ListenNgrok opens a public ngrok HTTP endpoint. The auth token is read
// from NGROK_AUTHTOKEN.
func ListenNgrok(ctx context.Context) (net.Listener, string, error) {
	tun, err := ngrok.Listen(ctx, ngrokconfig.HTTPEndpoint(), ngrok.WithAuthtokenFromEnv())
	if err != nil {
		return nil, "", fmt.Errorf("failed to open ngrok tunnel: %w", err)
	}
	return tun, tun.URL(), nil
}

// Serve serves s on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
