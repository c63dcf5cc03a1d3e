package domain

import (
	"errors"
	"time"
)

// SimulationStatus represents the lifecycle state of a simulation run.
type SimulationStatus string

const (
	SimulationRunning   SimulationStatus = "running"
	SimulationCompleted SimulationStatus = "completed"
	SimulationFailed    SimulationStatus = "failed"
)

// validTransitions defines the allowed state machine transitions. A
// simulation leaves "running" exactly once and never comes back.
var validTransitions = map[SimulationStatus][]SimulationStatus{
	SimulationRunning: {SimulationCompleted, SimulationFailed},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrSimulationNotFound = errors.New("simulation not found")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s SimulationStatus) CanTransitionTo(next SimulationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status is an end state.
func (s SimulationStatus) Terminal() bool {
	return s == SimulationCompleted || s == SimulationFailed
}

// Params is the opaque key/value bag a caller submits with a simulation.
// The core never inspects it beyond the optional "type" entry.
type Params map[string]any

// Results is the opaque key/value bag attached when a run completes.
type Results map[string]any

// Simulation is the core aggregate for an asynchronous simulation run.
// Results and CompletedAt are nil until the run reaches a terminal state;
// a failed run never carries results.
type Simulation struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Status      SimulationStatus `json:"status"`
	Parameters  Params           `json:"parameters,omitempty"`
	Results     Results          `json:"results,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	CreatedBy   string           `json:"created_by"`
}
