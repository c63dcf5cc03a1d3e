package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/api/metrics"
	"github.com/sustaincity/city-backend/internal/core/domain"
)

// CompletionScheduler hands a submitted simulation id to a background worker.
// The id is all that crosses the boundary; workers never hold a live record.
type CompletionScheduler interface {
	Schedule(simulationID int64)
}

// SimulationRegistry is the in-memory store of simulation runs. Submit stores
// the record in the running state and schedules exactly one background
// completion; the terminal flip happens atomically under the registry mutex,
// so readers never observe a half-finished record.
type SimulationRegistry struct {
	mu     sync.RWMutex
	sims   map[int64]*domain.Simulation
	nextID int64

	scheduler CompletionScheduler
	runDelay  time.Duration
	logger    zerolog.Logger
}

func NewSimulationRegistry(scheduler CompletionScheduler, runDelay time.Duration, logger zerolog.Logger) *SimulationRegistry {
	if runDelay <= 0 {
		runDelay = 2 * time.Second
	}
	return &SimulationRegistry{
		sims:      make(map[int64]*domain.Simulation),
		scheduler: scheduler,
		runDelay:  runDelay,
		logger:    logger,
	}
}

// SeedDemoData installs one already-completed demo run. Call once at process
// start; submitted runs continue the id sequence after it.
func (r *SimulationRegistry) SeedDemoData() {
	now := time.Now().UTC()
	completed := now.Add(-time.Hour)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sim := &domain.Simulation{
		ID:     r.nextID,
		Name:   "Morning Traffic Analysis",
		Type:   "traffic",
		Status: domain.SimulationCompleted,
		Parameters: domain.Params{
			"duration":       60,
			"trafficDensity": "high",
		},
		Results: domain.Results{
			"avgSpeed":        45.5,
			"congestionLevel": 0.65,
		},
		CreatedAt:   now.Add(-2 * time.Hour),
		CompletedAt: &completed,
		CreatedBy:   "admin",
	}
	r.sims[sim.ID] = sim
}

// Submit stores a new running simulation and schedules its completion. The
// returned record is a snapshot in the running state; callers poll List to
// observe the terminal flip.
func (r *SimulationRegistry) Submit(_ context.Context, params domain.Params, createdBy string) (*domain.Simulation, error) {
	simType := "traffic"
	if t, ok := params["type"].(string); ok && t != "" {
		simType = t
	}

	r.mu.Lock()
	r.nextID++
	sim := &domain.Simulation{
		ID:         r.nextID,
		Name:       fmt.Sprintf("Simulation %d", r.nextID),
		Type:       simType,
		Status:     domain.SimulationRunning,
		Parameters: cloneBag(params),
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  createdBy,
	}
	r.sims[sim.ID] = sim
	r.mu.Unlock()

	r.scheduler.Schedule(sim.ID)

	metrics.SimulationsSubmittedTotal.WithLabelValues(simType).Inc()
	r.logger.Info().Int64("simulation_id", sim.ID).Str("type", simType).Str("created_by", createdBy).Msg("simulation submitted")
	return cloneSimulation(sim), nil
}

// List returns a point-in-time snapshot of all simulations.
func (r *SimulationRegistry) List(_ context.Context) []domain.Simulation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sims := make([]domain.Simulation, 0, len(r.sims))
	for _, sim := range r.sims {
		sims = append(sims, *cloneSimulation(sim))
	}
	return sims
}

// Delete removes the record regardless of status. A completion job firing
// after the delete finds nothing to mutate and is a no-op.
func (r *SimulationRegistry) Delete(_ context.Context, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sims[id]; !ok {
		return false
	}
	delete(r.sims, id)
	r.logger.Info().Int64("simulation_id", id).Msg("simulation deleted")
	return true
}

// Complete atomically flips a running simulation to completed, attaching the
// results and completion timestamp in the same critical section. Deleted or
// already-terminal records are left untouched.
func (r *SimulationRegistry) Complete(id int64, results domain.Results) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sim, ok := r.sims[id]
	if !ok || !sim.Status.CanTransitionTo(domain.SimulationCompleted) {
		return false
	}
	now := time.Now().UTC()
	sim.Status = domain.SimulationCompleted
	sim.CompletedAt = &now
	sim.Results = cloneBag(results)

	metrics.SimulationsFinishedTotal.WithLabelValues(string(domain.SimulationCompleted)).Inc()
	return true
}

// Fail atomically flips a running simulation to failed. No results are ever
// attached on this path.
func (r *SimulationRegistry) Fail(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sim, ok := r.sims[id]
	if !ok || !sim.Status.CanTransitionTo(domain.SimulationFailed) {
		return false
	}
	sim.Status = domain.SimulationFailed

	metrics.SimulationsFinishedTotal.WithLabelValues(string(domain.SimulationFailed)).Inc()
	return true
}

// Process runs the background completion for one simulation: wait out the
// simulated run time, then compute placeholder results and flip the record.
// Cancellation or an internal panic lands the record in the failed state
// instead of propagating.
func (r *SimulationRegistry) Process(ctx context.Context, id int64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Int64("simulation_id", id).Any("panic", rec).Msg("simulation run panicked")
			r.Fail(id)
		}
	}()

	select {
	case <-ctx.Done():
		if r.Fail(id) {
			r.logger.Warn().Int64("simulation_id", id).Msg("simulation interrupted")
		}
		return
	case <-time.After(r.runDelay):
	}

	if r.Complete(id, demoResults()) {
		r.logger.Info().Int64("simulation_id", id).Msg("simulation completed")
	}
}

func demoResults() domain.Results {
	return domain.Results{
		"avgSpeed":   40 + rand.Float64()*20,
		"efficiency": 70 + rand.Float64()*25,
		"incidents":  rand.Intn(10),
	}
}

func cloneSimulation(s *domain.Simulation) *domain.Simulation {
	clone := *s
	if s.CompletedAt != nil {
		ts := *s.CompletedAt
		clone.CompletedAt = &ts
	}
	clone.Parameters = cloneBag(s.Parameters)
	clone.Results = cloneBag(s.Results)
	return &clone
}

func cloneBag[M ~map[string]any](bag M) M {
	if bag == nil {
		return nil
	}
	out := make(M, len(bag))
	for k, v := range bag {
		out[k] = v
	}
	return out
}
