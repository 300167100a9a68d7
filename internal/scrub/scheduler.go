package scrub

import (
	"sync"
	"time"
)

// ManualScheduler is a Scheduler for tests: scheduled functions are queued
// and only run when the test says so.
type ManualScheduler struct {
	mu     sync.Mutex
	queue  []func()
	delays []time.Duration
}

// Schedule queues f. Pass the method value as Options.Schedule.
func (s *ManualScheduler) Schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, f)
	s.delays = append(s.delays, d)
}

// Len returns the number of queued functions.
func (s *ManualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Delays returns the delay of every Schedule call so far.
func (s *ManualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

// RunAll runs the queued functions in scheduling order and returns how many
// ran. Functions scheduled while running wait for the next call.
func (s *ManualScheduler) RunAll() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, f := range queue {
		f()
	}
	return len(queue)
}
