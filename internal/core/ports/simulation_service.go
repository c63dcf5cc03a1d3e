package ports

import (
	"context"

	"github.com/sustaincity/city-backend/internal/core/domain"
)

type SimulationService interface {
	List(ctx context.Context) []domain.Simulation
	// Submit stores a new simulation in the running state and schedules its
	// background completion. The returned record is a snapshot; callers poll
	// List to observe the terminal state.
	Submit(ctx context.Context, params domain.Params, createdBy string) (*domain.Simulation, error)
	Delete(ctx context.Context, id int64) bool
}
