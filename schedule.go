package gallery

import (
	"sync"
	"time"
)

// Timer is a pending callback created by Clock.AfterFunc.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the
	// call stopped the timer.
	Stop() bool
}

// Clock abstracts time so timers can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock backed by package time.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Throttle coalesces a burst of values into one delivery per interval.
// The first value arms a timer; values arriving before it fires replace the
// pending one, so the callback always sees the latest value.
type Throttle[T any] struct {
	mu        sync.Mutex
	clock     Clock
	interval  time.Duration
	fn        func(T)
	pending   T
	scheduled bool
	timer     Timer
	cancelled bool
}

// NewThrottle creates a throttle delivering to fn at most once per interval.
// fn runs on the clock's timer goroutine.
func NewThrottle[T any](clock Clock, interval time.Duration, fn func(T)) *Throttle[T] {
	return &Throttle[T]{clock: clock, interval: interval, fn: fn}
}

// Push records v as the latest value and arms the flush timer if needed.
func (t *Throttle[T]) Push(v T) {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.pending = v
	if t.scheduled {
		t.mu.Unlock()
		return
	}
	t.scheduled = true
	t.timer = t.clock.AfterFunc(t.interval, t.flush)
	t.mu.Unlock()
}

// Pending reports whether a delivery is scheduled.
func (t *Throttle[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduled
}

// Cancel drops any pending value and disables further pushes.
func (t *Throttle[T]) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.scheduled = false
	timer := t.timer
	t.timer = nil
	var zero T
	t.pending = zero
	t.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

func (t *Throttle[T]) flush() {
	t.mu.Lock()
	if t.cancelled || !t.scheduled {
		t.mu.Unlock()
		return
	}
	v := t.pending
	t.scheduled = false
	t.timer = nil
	fn := t.fn
	t.mu.Unlock()

	if fn != nil {
		fn(v)
	}
}

// Poller invokes fn at a fixed interval until stopped.
type Poller struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	fn       func()
	timer    Timer
	running  bool
}

// NewPoller creates a stopped poller.
func NewPoller(clock Clock, interval time.Duration, fn func()) *Poller {
	return &Poller{clock: clock, interval: interval, fn: fn}
}

// Start begins polling. Starting a running poller does nothing.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.timer = p.clock.AfterFunc(p.interval, p.tick)
}

// Stop halts polling; a tick already in flight is discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.running = false
	timer := p.timer
	p.timer = nil
	p.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

// Running reports whether the poller is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) tick() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	fn := p.fn
	p.mu.Unlock()

	fn()

	p.mu.Lock()
	if p.running {
		p.timer = p.clock.AfterFunc(p.interval, p.tick)
	}
	p.mu.Unlock()
}
