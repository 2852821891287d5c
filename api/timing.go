package api

import (
	"sync"
	"time"
)

// timingRegistry maps correlation ids to dispatch timestamps. Entries are
// consumed exactly once at response or error time; a missing entry means
// "duration unknown", never an error. Responses are matched by id, not by
// issue order, so out-of-order completion is safe.
type timingRegistry struct {
	mu      sync.Mutex
	started map[string]time.Time
}

func newTimingRegistry() *timingRegistry {
	return &timingRegistry{
		started: make(map[string]time.Time),
	}
}

func (r *timingRegistry) start(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started[id] = time.Now()
}

// finish removes the entry for id and returns the elapsed time since start.
// The second return value is false when no entry exists.
func (r *timingRegistry) finish(id string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startTime, ok := r.started[id]
	if !ok {
		return 0, false
	}
	delete(r.started, id)
	return time.Since(startTime), true
}
