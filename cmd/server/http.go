package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/napolitain/buildorder/internal/config"
	"github.com/napolitain/buildorder/internal/converter"
	"github.com/napolitain/buildorder/internal/order"
	"github.com/napolitain/buildorder/internal/planner"
)

const maxBodyBytes = 1 << 20

// newHTTPHandler exposes the planner as JSON over HTTP for browser clients
func newHTTPHandler(s *server, cfg config.ServerConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/quickest", s.handleQuickest)

	limiter := newClientLimiter(rate.Limit(cfg.Rate), cfg.Burst)
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(rateLimit(limiter, mux))
}

// clientLimiter keeps one token bucket per client IP
type clientLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

func newClientLimiter(limit rate.Limit, burst int) *clientLimiter {
	return &clientLimiter{limit: limit, burst: burst, clients: make(map[string]*rate.Limiter)}
}

func (cl *clientLimiter) allow(r *http.Request) bool {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	cl.mu.Lock()
	limiter, ok := cl.clients[ip]
	if !ok {
		limiter = rate.NewLimiter(cl.limit, cl.burst)
		cl.clients[ip] = limiter
	}
	cl.mu.Unlock()
	return limiter.Allow()
}

func rateLimit(limiter *clientLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.allow(r) {
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var save order.Save
	if err := decodeBody(w, r, &save); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	report, err := s.planner.Analyze(r.Context(), save)
	if err != nil {
		writeError(w, httpStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *server) handleQuickest(w http.ResponseWriter, r *http.Request) {
	req := converter.QuickestRequest{Parent: order.ParentNone}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Unit == "" {
		writeError(w, http.StatusBadRequest, errors.New("unit is required"))
		return
	}
	reply, err := s.planner.Quickest(r.Context(), req)
	if err != nil {
		writeError(w, httpStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func httpStatus(err error) int {
	if errors.Is(err, planner.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
