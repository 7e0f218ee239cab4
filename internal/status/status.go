// Package status serves the health and metrics endpoints of the long-running
// front ends.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"

	probeTimeout    = 3 * time.Second
	shutdownTimeout = 5 * time.Second
)

// ProbeFunc checks that the backend answers.
type ProbeFunc func(ctx context.Context) error

// ConnectedFunc reports whether the front end itself is connected, e.g. the
// Discord gateway.
type ConnectedFunc func() bool

// Health is the /healthz payload.
type Health struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
	BackendReachable bool       `json:"backend_reachable"`
}

// Recorder counts handled commands.
type Recorder struct {
	started time.Time
	count   atomic.Int64

	mu   sync.RWMutex
	last time.Time
}

// NewRecorder starts the uptime clock.
func NewRecorder() *Recorder {
	return &Recorder{started: time.Now()}
}

// RecordCommand notes one handled command.
func (r *Recorder) RecordCommand() {
	r.count.Add(1)
	r.mu.Lock()
	r.last = time.Now()
	r.mu.Unlock()
}

// Commands returns the number of handled commands.
func (r *Recorder) Commands() int64 { return r.count.Load() }

func (r *Recorder) lastCommand() *time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last.IsZero() {
		return nil
	}
	t := r.last
	return &t
}

// Server is the status HTTP server.
type Server struct {
	httpServer *http.Server
	recorder   *Recorder
	probe      ProbeFunc
	connected  ConnectedFunc
}

// NewServer builds the router. A nil connected func reports connected.
func NewServer(port int, recorder *Recorder, probe ProbeFunc, connected ConnectedFunc) *Server {
	s := &Server{recorder: recorder, probe: probe, connected: connected}

	r := chi.NewRouter()
	r.Use(securityHeaders, requestLogger)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves in the background.
func (s *Server) Start() {
	go func() {
		slog.Info("Starting status server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Status server failed", "error", err)
		}
	}()
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Check builds the current health.
func (s *Server) Check(ctx context.Context) Health {
	connected := s.connected == nil || s.connected()

	reachable := false
	if s.probe != nil {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		reachable = s.probe(pctx) == nil
		cancel()
	}

	status := StatusHealthy
	if !connected || !reachable {
		status = StatusDegraded
	}
	return Health{
		Status:           status,
		Uptime:           time.Since(s.recorder.started).Truncate(time.Second).String(),
		Connected:        connected,
		CommandsReceived: s.recorder.Commands(),
		LastCommandTime:  s.recorder.lastCommand(),
		BackendReachable: reachable,
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	health := s.Check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if health.Status != StatusHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Debug("Failed to write health response", "error", err)
	}
}
