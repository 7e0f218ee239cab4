// Package fakeapi is an in-memory stand-in for the DoofiCoin backend used by
// tests. It records every request it receives so tests can assert on the
// exact bytes the client sent.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dooficoin/doofigame/internal/domain"
)

// Request is one recorded call.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      []byte
	Auth      string
	RequestID string
}

type failure struct {
	status  int
	message string
}

// Server is the fake backend. Exported fields may be seeded before the first
// request; afterwards use the accessor methods.
type Server struct {
	*httptest.Server

	Now func() time.Time

	mu       sync.Mutex
	requests []Request
	failures map[string]failure
	nextID   int

	users       []domain.User
	players     map[int]*domain.Player // keyed by user id
	tokens      map[string]int         // token -> user id
	inventory   []domain.InventoryEntry
	scenarios   []domain.Scenario
	countries   []domain.Country
	progress    []domain.ScenarioProgress
	collection  []domain.PlayerCard
	cards       []domain.CollectibleCard
	mining      domain.MiningSession
	miningStats domain.MiningStats
	leaderboard map[domain.LeaderboardCategory][]domain.LeaderboardEntry
	stats       domain.ProfileStats

	collections map[string][]map[string]any
	settings    domain.GameSettings
	adsense     *domain.AdSenseConfig
	adUnits     []domain.AdUnit
	logs        []domain.SecurityLog
	dashboard   domain.DashboardStats
}

// New starts a fake backend. Close it with t.Cleanup(srv.Close).
func New() *Server {
	s := &Server{
		Now:         time.Now,
		failures:    make(map[string]failure),
		nextID:      1000,
		players:     make(map[int]*domain.Player),
		tokens:      make(map[string]int),
		leaderboard: make(map[domain.LeaderboardCategory][]domain.LeaderboardEntry),
		collections: make(map[string][]map[string]any),
		settings:    domain.DefaultGameSettings(),
		mining:      domain.MiningSession{DurationMinutes: 60, EstimatedReward: "0.0000000000000000000000000000000000101"},
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.inject)

	r.Get("/api/users", s.handleListUsers)
	r.Post("/api/users", s.handleCreateUser)
	r.Post("/api/game/player/create", s.handleCreatePlayer)
	r.Get("/api/game/player/{id}", s.handleGetPlayer)
	r.Post("/api/game/player/{id}/{action}", s.handlePlayerAction)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/api/profile", s.handleProfile)
		r.Put("/api/profile/update", s.handleProfileUpdate)
		r.Get("/api/profile/stats", s.handleProfileStats)

		r.Get("/api/scenarios/list", s.handleScenarioList)
		r.Get("/api/scenarios/player-progress", s.handlePlayerProgress)
		r.Post("/api/scenarios/{id}/start", s.handleScenarioStart)

		r.Get("/api/inventory", s.handleInventory)
		r.Post("/api/inventory/{id}/equip", s.handleEquip)
		r.Post("/api/inventory/{id}/sell", s.handleSell)

		r.Get("/api/cards/collection", s.handleCardCollection)
		r.Get("/api/cards/all", s.handleAllCards)

		r.Get("/api/mining/status", s.handleMiningStatus)
		r.Get("/api/mining/statistics", s.handleMiningStats)
		r.Post("/api/mining/start", s.handleMiningStart)
		r.Post("/api/mining/stop", s.handleMiningStop)

		r.Get("/api/level/leaderboard/{category}", s.handleLeaderboard)

		r.Route("/api/admin", s.adminRoutes)
	})

	r.Get("/api/scenarios/countries", s.handleCountries)

	return r
}

// record stores the request before routing so failures are recorded too.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			Body:      body,
			Auth:      r.Header.Get("Authorization"),
			RequestID: r.Header.Get("X-Request-ID"),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			if f.message == "" {
				w.WriteHeader(f.status)
				return
			}
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeError(w, http.StatusUnauthorized, "Token inválido")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail makes every method+path request answer with status. An empty message
// sends no {error} body.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// ClearFailures removes every injected failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the recorded requests matching method and path.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// LastRequest returns the most recent request, or the zero value.
func (s *Server) LastRequest() Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}
	}
	return reqs[len(reqs)-1]
}

// ResetRequests forgets the recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) newID() int {
	s.nextID++
	return s.nextID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
