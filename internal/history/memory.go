package history

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore implements Store for testing and throwaway runs.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   map[string]Run
	order  []string // run IDs in BeginRun order
	steps  map[string][]Step
	events map[string][]Event
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:   make(map[string]Run),
		steps:  make(map[string][]Step),
		events: make(map[string][]Event),
	}
}

// BeginRun registers a new run. The run ID must be set and unused.
func (s *MemoryStore) BeginRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run already exists: %s", run.ID)
	}
	if run.Status == "" {
		run.Status = StatusRunning
	}

	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	return nil
}

// FinishRun stamps the run finished and records its final tallies.
func (s *MemoryStore) FinishRun(ctx context.Context, id string, summary Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, exists := s.runs[id]
	if !exists {
		return fmt.Errorf("run not found: %s", id)
	}

	run.FinishedAt = time.Now()
	run.NetATP = summary.NetATP
	run.TotalPyruvate = summary.TotalPyruvate
	run.TotalCO2 = summary.TotalCO2
	run.Status = summary.Status
	if run.Status == "" {
		run.Status = StatusCompleted
	}

	s.runs[id] = run
	return nil
}

// AppendStep records a per-step snapshot for an existing run.
func (s *MemoryStore) AppendStep(ctx context.Context, step Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[step.RunID]; !exists {
		return fmt.Errorf("run not found: %s", step.RunID)
	}

	s.steps[step.RunID] = append(s.steps[step.RunID], step)
	return nil
}

// AppendEvent records an event for an existing run.
func (s *MemoryStore) AppendEvent(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[event.RunID]; !exists {
		return fmt.Errorf("run not found: %s", event.RunID)
	}

	s.events[event.RunID] = append(s.events[event.RunID], event)
	return nil
}

// GetRun retrieves a run by ID. Returns nil if not found.
func (s *MemoryStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, nil
	}
	return &run, nil
}

// ListRuns returns runs most recent first. A limit <= 0 returns all runs.
func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if limit > 0 && len(results) >= limit {
			break
		}
		results = append(results, s.runs[s.order[i]])
	}
	return results, nil
}

// StepsForRun returns the recorded steps for a run in append order.
func (s *MemoryStore) StepsForRun(ctx context.Context, id string) ([]Step, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps := make([]Step, len(s.steps[id]))
	copy(steps, s.steps[id])
	return steps, nil
}

// EventsForRun returns the recorded events for a run in append order.
func (s *MemoryStore) EventsForRun(ctx context.Context, id string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]Event, len(s.events[id]))
	copy(events, s.events[id])
	return events, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
