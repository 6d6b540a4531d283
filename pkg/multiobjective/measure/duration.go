package measure

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Duration is a pull measure reporting the time spent between Start and Stop.
// While running, the value includes the time elapsed since Start.
type Duration struct {
	name        string
	description string
	clock       clock.PassiveClock

	mu      sync.Mutex
	elapsed time.Duration
	started time.Time
	running bool
}

var _ PullMeasure = &Duration{}

// NewDuration creates a stopped stopwatch on the given clock; nil selects the
// real clock.
func NewDuration(name, description string, c clock.PassiveClock) *Duration {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Duration{name: name, description: description, clock: c}
}

func (d *Duration) Name() string        { return d.name }
func (d *Duration) Description() string { return d.description }

// Start begins measuring; it is a no-op when already running.
func (d *Duration) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.started = d.clock.Now()
	d.running = true
}

// Stop accumulates the time since Start.
func (d *Duration) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.elapsed += d.clock.Since(d.started)
	d.running = false
}

// Reset stops the stopwatch and clears the accumulated time.
func (d *Duration) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elapsed = 0
	d.running = false
}

// Get returns the accumulated time.
func (d *Duration) Get() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return d.elapsed + d.clock.Since(d.started)
	}
	return d.elapsed
}

func (d *Duration) Value() (any, bool) {
	return d.Get(), true
}
