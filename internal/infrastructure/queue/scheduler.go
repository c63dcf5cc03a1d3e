package queue

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Processor runs the background completion for one simulation id. It must
// tolerate the record having been deleted in the meantime.
type Processor interface {
	Process(ctx context.Context, simulationID int64)
}

// Scheduler routes completion jobs to a fixed set of workers sharded by
// simulation id, so jobs for the same id never run concurrently. Workers hold
// only the id, never a live record; a concurrent delete is therefore safe.
type Scheduler struct {
	workers []chan int64
	log     zerolog.Logger
}

// NewScheduler creates a Scheduler with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewScheduler(numWorkers int, log zerolog.Logger) *Scheduler {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Scheduler{
		workers: make([]chan int64, numWorkers),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan int64, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// jobs already dequeued observe the cancellation through the same ctx.
func (s *Scheduler) Start(ctx context.Context, proc Processor) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch, proc)
	}
}

// Schedule sends a simulation id to the worker responsible for it. The call
// is non-blocking up to channelBuffer capacity.
func (s *Scheduler) Schedule(simulationID int64) {
	idx := s.shardIndex(simulationID)
	s.workers[idx] <- simulationID
	metrics.SimulationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(s.workers[idx])))
}

// shardIndex maps a simulation id deterministically to a worker index.
func (s *Scheduler) shardIndex(simulationID int64) int {
	idx := int(simulationID % int64(len(s.workers)))
	if idx < 0 {
		idx += len(s.workers)
	}
	return idx
}

func (s *Scheduler) runWorker(ctx context.Context, id int, ch <-chan int64, proc Processor) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			// Drain what is already queued so each pending run still reaches
			// a terminal state instead of staying running forever.
			for {
				select {
				case simID := <-ch:
					proc.Process(ctx, simID)
				default:
					return
				}
			}
		case simID, ok := <-ch:
			if !ok {
				return
			}
			metrics.SimulationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			start := time.Now()
			proc.Process(ctx, simID)
			metrics.SimulationRunDuration.Observe(time.Since(start).Seconds())
		}
	}
}
