package realtime

import (
	"context"
	"sync"
	"time"
)

// Task is a repeating unit of work. now is the UTC time the timer fired.
type Task func(now time.Time)

// Schedule owns a group of repeating tasks that share one lifetime.
// Stop cancels every task together and waits for in-flight runs, so no task
// body executes after Stop returns.
type Schedule struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped bool
}

// NewSchedule creates a schedule whose tasks also stop when parent is done.
func NewSchedule(parent context.Context) *Schedule {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Schedule{ctx: ctx, cancel: cancel}
}

// Every runs task each interval until the schedule stops. It returns false
// if the schedule is already stopped or interval is not positive.
func (s *Schedule) Every(interval time.Duration, task Task) bool {
	if interval <= 0 || task == nil {
		return false
	}
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case now := <-ticker.C:
				// Both cases may be ready at once; cancellation wins.
				if s.ctx.Err() != nil {
					return
				}
				task(now.UTC())
			}
		}
	}()
	return true
}

// Stop cancels all tasks and blocks until they have returned.
// It must not be called from inside a task of the same schedule.
func (s *Schedule) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

// Done is closed once the schedule has been cancelled.
func (s *Schedule) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Stopped reports whether Stop has been called or the parent context ended.
func (s *Schedule) Stopped() bool {
	return s.ctx.Err() != nil
}
