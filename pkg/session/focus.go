package session

import (
	"sync"
	"time"
)

// FocusTimer elapsed time counter with one second resolution; never persisted
type FocusTimer struct {
	*Store[time.Duration]

	now  func() time.Time
	tick time.Duration

	mu      sync.Mutex
	running bool
	started time.Time
	stop    chan struct{}
	done    chan struct{}
}

func NewFocusTimer() *FocusTimer {
	return &FocusTimer{
		Store: NewStore[time.Duration](0),
		now:   time.Now,
		tick:  time.Second,
	}
}

// Toggle starts the timer or stops and resets it; returns the new running state
func (f *FocusTimer) Toggle() bool {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		f.Stop()
		return false
	}

	f.running = true
	f.started = f.now()
	f.stop = make(chan struct{})
	f.done = make(chan struct{})
	stop, done := f.stop, f.done
	f.mu.Unlock()

	f.Set(0)
	go f.loop(stop, done)
	return true
}

// Stop resets to zero; no-op when not running
func (f *FocusTimer) Stop() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	stop, done := f.stop, f.done
	f.mu.Unlock()

	close(stop)
	<-done
	f.Set(0)
}

func (f *FocusTimer) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *FocusTimer) StartedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return time.Time{}
	}
	return f.started
}

// Elapsed whole seconds since the start, zero when stopped
func (f *FocusTimer) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return 0
	}
	return f.now().Sub(f.started).Truncate(time.Second)
}

func (f *FocusTimer) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			f.Set(f.Elapsed())
		}
	}
}
