package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/core/domain"
	"github.com/sustaincity/city-backend/internal/core/service"
)

type recordingProcessor struct {
	mu  sync.Mutex
	ids []int64
}

func (p *recordingProcessor) Process(_ context.Context, id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, id)
}

func (p *recordingProcessor) processed() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int64, len(p.ids))
	copy(out, p.ids)
	return out
}

func TestScheduler_ProcessesAllJobs(t *testing.T) {
	proc := &recordingProcessor{}
	sched := NewScheduler(3, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx, proc)

	const n = 12
	for i := int64(1); i <= n; i++ {
		sched.Schedule(i)
	}

	deadline := time.After(2 * time.Second)
	for {
		if len(proc.processed()) == n {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only %d of %d jobs processed", len(proc.processed()), n)
		case <-time.After(5 * time.Millisecond):
		}
	}

	seen := make(map[int64]bool)
	for _, id := range proc.processed() {
		if seen[id] {
			t.Fatalf("job %d processed twice", id)
		}
		seen[id] = true
	}
}

func TestScheduler_ShardIndexStable(t *testing.T) {
	sched := NewScheduler(4, zerolog.Nop())
	for id := int64(0); id < 100; id++ {
		first := sched.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("shard index out of range: %d", first)
		}
		if second := sched.shardIndex(id); second != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}

// End-to-end lifecycle: submit through the registry, observe the terminal
// flip by polling, exactly as an HTTP client would.
func TestScheduler_SimulationLifecycle(t *testing.T) {
	sched := NewScheduler(2, zerolog.Nop())
	reg := service.NewSimulationRegistry(sched, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx, reg)

	sim, err := reg.Submit(context.Background(), domain.Params{"duration": 60}, "alice")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if sim.Status != domain.SimulationRunning {
		t.Fatalf("submit must return a running record, got %s", sim.Status)
	}

	deadline := time.After(2 * time.Second)
	for {
		var found *domain.Simulation
		for _, s := range reg.List(context.Background()) {
			if s.ID == sim.ID {
				s := s
				found = &s
			}
		}
		if found == nil {
			t.Fatalf("submitted simulation missing from list")
		}
		if found.Status.Terminal() {
			if found.Status != domain.SimulationCompleted {
				t.Fatalf("expected completed, got %s", found.Status)
			}
			if found.Results == nil || found.CompletedAt == nil {
				t.Fatalf("terminal record must carry results and completion timestamp")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("simulation never reached a terminal state")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestScheduler_DeleteBeforeCompletionNoResurrection(t *testing.T) {
	sched := NewScheduler(2, zerolog.Nop())
	reg := service.NewSimulationRegistry(sched, 30*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx, reg)

	sim, err := reg.Submit(context.Background(), nil, "alice")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !reg.Delete(context.Background(), sim.ID) {
		t.Fatalf("delete failed")
	}

	// Let the background completion fire against the deleted id.
	time.Sleep(150 * time.Millisecond)

	for _, s := range reg.List(context.Background()) {
		if s.ID == sim.ID {
			t.Fatalf("deleted simulation resurfaced after background completion")
		}
	}
}
