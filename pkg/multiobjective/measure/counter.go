package measure

import "sync"

// Counter is a pull and push measure over a monotonically growing count.
type Counter struct {
	*Measure[int]

	mu    sync.Mutex
	count int
}

// NewCounter creates a counter starting at zero.
func NewCounter(name, description string) *Counter {
	c := &Counter{Measure: New[int](name, description)}
	c.Measure.Push(0)
	return c
}

// Reset sets the count to n and pushes it.
func (c *Counter) Reset(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = n
	c.Measure.Push(n)
}

// Increment adds n to the count and pushes the new total.
func (c *Counter) Increment(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count += n
	c.Measure.Push(c.count)
	return c.count
}

// Count returns the current count.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
