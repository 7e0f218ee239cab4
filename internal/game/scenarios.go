package game

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// ScenarioPageSize is the per_page sent with the scenario listing.
const ScenarioPageSize = 50

// Scenarios lists scenarios by country and starts them.
type Scenarios struct {
	env    Env
	guard  panel.Guard
	banner panel.Banner

	mu        sync.RWMutex
	scenarios []domain.Scenario
	countries []domain.Country
	progress  []domain.ScenarioProgress
	country   string
}

// NewScenarios creates the panel with the "all" country filter.
func NewScenarios(env Env) *Scenarios {
	return &Scenarios{env: env, country: FilterAll}
}

// Load fetches scenarios, countries and progress concurrently. Each slice is
// replaced only by its own successful fetch.
func (s *Scenarios) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		scenarios, err := s.env.API.ListScenarios(ctx, ScenarioPageSize)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.scenarios = scenarios
		s.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		countries, err := s.env.API.ListCountries(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.countries = countries
		s.mu.Unlock()
		return nil
	})
	g.Go(func() error { return s.loadProgress(ctx) })
	err := g.Wait()
	s.banner.Set(err)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to load scenarios", "error", err)
	}
	return err
}

func (s *Scenarios) loadProgress(ctx context.Context) error {
	progress, err := s.env.API.GetScenarioProgress(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.progress = progress.All()
	s.mu.Unlock()
	return nil
}

// SetCountry filters the list by country name, or FilterAll.
func (s *Scenarios) SetCountry(country string) {
	if country == "" {
		country = FilterAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.country = country
}

// Country returns the active country filter.
func (s *Scenarios) Country() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.country
}

// Countries returns the countries with scenarios.
func (s *Scenarios) Countries() []domain.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Country, len(s.countries))
	copy(out, s.countries)
	return out
}

// Visible returns the scenarios passing the country filter.
func (s *Scenarios) Visible() []domain.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Scenario, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		if s.country == FilterAll || sc.Country == s.country {
			out = append(out, sc)
		}
	}
	return out
}

// Progress returns the player's progress in a scenario, if started.
func (s *Scenarios) Progress(scenarioID int) (domain.ScenarioProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.progress {
		if p.ScenarioID == scenarioID {
			return p, true
		}
	}
	return domain.ScenarioProgress{}, false
}

// Completed counts completed scenarios.
func (s *Scenarios) Completed() int {
	return s.count(func(p domain.ScenarioProgress) bool { return p.IsCompleted })
}

// Perfect counts scenarios completed without dying.
func (s *Scenarios) Perfect() int {
	return s.count(func(p domain.ScenarioProgress) bool { return p.IsPerfect })
}

func (s *Scenarios) count(fn func(domain.ScenarioProgress) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.progress {
		if fn(p) {
			n++
		}
	}
	return n
}

// Banner returns the inline error.
func (s *Scenarios) Banner() string { return s.banner.Message() }

// Start begins a scenario, then re-fetches progress.
func (s *Scenarios) Start(ctx context.Context, scenarioID int) error {
	return s.guard.Run(func() error {
		sc, err := s.env.API.StartScenario(ctx, scenarioID)
		if err != nil {
			return s.env.fail(ctx, "start-scenario", err)
		}
		name := ""
		if sc != nil {
			name = sc.Name
		}
		logger.FromContext(ctx).Info("Scenario started", "scenario_id", scenarioID)
		s.env.UI.Alert(ctx, "Cenário iniciado: "+name)
		if err := s.loadProgress(ctx); err != nil {
			s.banner.Set(err)
			return err
		}
		return nil
	})
}
