// Package http exposes the tracker's derived views and mutation
// commands over a JSON API: the presentation layer consumes these
// endpoints after every mutation and on its refresh timer.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dompet/internal/ai"
	"dompet/internal/format"
	"dompet/internal/insight"
	"dompet/internal/store"
)

type Server struct {
	http.Server
	store     *store.Store
	insights  *insight.Generator
	formatter *format.Formatter
	narrator  *ai.Client
}

// NewServer configures routes and middleware, returning a
// ready-to-run server. narrator may be nil when AI narration is not
// configured.
func NewServer(addr string, st *store.Store, gen *insight.Generator, f *format.Formatter, narrator *ai.Client) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:     st,
		insights:  gen,
		formatter: f,
		narrator:  narrator,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/summary", s.withRequestLog(s.handleSummary))
	mux.HandleFunc("GET /api/dashboard", s.withRequestLog(s.handleDashboard))

	mux.HandleFunc("GET /api/transactions", s.withRequestLog(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withRequestLog(s.handleAddTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withRequestLog(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withRequestLog(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/history", s.withRequestLog(s.handleHistory))
	mux.HandleFunc("DELETE /api/history", s.withRequestLog(s.handleClearHistory))

	mux.HandleFunc("GET /api/analytics", s.withRequestLog(s.handleAnalytics))

	mux.HandleFunc("GET /api/theme", s.withRequestLog(s.handleGetTheme))
	mux.HandleFunc("PUT /api/theme", s.withRequestLog(s.handleSetTheme))

	return s
}

// withRequestLog adds security headers, a request id, and request
// logging to responses.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		ctx := r.Context()

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
