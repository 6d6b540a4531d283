// Package measure exposes named values of a running algorithm.
//
// A pull measure is read on demand and always returns the latest value. A
// push measure delivers every new value to the channels subscribed to it.
// Delivery never blocks the publisher: when a subscriber channel is full the
// value is dropped for that subscriber and counted in its stats.
//
//	ch := make(chan int, 16)
//	measure.Subscribe[int](manager, "currentEvaluation", "progress-bar", ch)
//	for evaluations := range ch {
//	    ...
//	}
package measure

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrSubscriberExists is returned when Subscribe is called with a duplicate id.
	ErrSubscriberExists = errors.New("subscriber id already exists")

	// ErrSubscriberNotFound is returned when Unsubscribe is called with unknown id.
	ErrSubscriberNotFound = errors.New("subscriber id not found")

	// ErrNilChannel is returned when Subscribe is called with a nil channel.
	ErrNilChannel = errors.New("subscriber channel cannot be nil")

	// ErrMeasureNotFound is returned when no measure is registered under a key.
	ErrMeasureNotFound = errors.New("measure not found")

	// ErrTypeMismatch is returned when a measure does not carry the requested type.
	ErrTypeMismatch = errors.New("measure value type mismatch")
)

// PullMeasure is a measure whose latest value can be queried.
type PullMeasure interface {
	Name() string
	Description() string
	// Value returns the latest value and whether one has been recorded.
	Value() (any, bool)
}

// PushMeasure is a measure delivering values to subscribers.
type PushMeasure interface {
	Name() string
	Description() string
	Unsubscribe(id string) error
	Stats(id string) (SubscriberStats, error)
}

// SubscriberStats tracks deliveries to one subscriber.
type SubscriberStats struct {
	// Sent is the number of values delivered to the subscriber channel
	Sent uint64
	// Dropped is the number of values lost because the channel was full
	Dropped uint64
}

type subscriber[T any] struct {
	ch      chan<- T
	sent    atomic.Uint64
	dropped atomic.Uint64
}

// Measure caches the last pushed value and fans it out to subscribers.
type Measure[T any] struct {
	name        string
	description string

	mu          sync.RWMutex
	value       T
	set         bool
	subscribers map[string]*subscriber[T]
}

var (
	_ PullMeasure = &Measure[int]{}
	_ PushMeasure = &Measure[int]{}
)

// New creates an empty measure.
func New[T any](name, description string) *Measure[T] {
	return &Measure[T]{
		name:        name,
		description: description,
		subscribers: make(map[string]*subscriber[T]),
	}
}

func (m *Measure[T]) Name() string        { return m.name }
func (m *Measure[T]) Description() string { return m.description }

// Get returns the latest value and whether one has been pushed.
func (m *Measure[T]) Get() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.set
}

func (m *Measure[T]) Value() (any, bool) {
	v, ok := m.Get()
	return v, ok
}

// Push records v as the latest value and offers it to every subscriber.
func (m *Measure[T]) Push(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.set = true

	for _, sub := range m.subscribers {
		select {
		case sub.ch <- v:
			sub.sent.Add(1)
		default:
			sub.dropped.Add(1)
		}
	}
}

// Reset forgets the latest value; subscribers are kept.
func (m *Measure[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	m.value = zero
	m.set = false
}

// Subscribe registers a channel to receive every pushed value.
func (m *Measure[T]) Subscribe(id string, ch chan<- T) error {
	if ch == nil {
		return ErrNilChannel
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.subscribers[id]; exists {
		return ErrSubscriberExists
	}
	m.subscribers[id] = &subscriber[T]{ch: ch}
	return nil
}

// Unsubscribe removes a subscriber by id. The channel is not closed.
func (m *Measure[T]) Unsubscribe(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.subscribers[id]; !exists {
		return ErrSubscriberNotFound
	}
	delete(m.subscribers, id)
	return nil
}

// Stats returns the delivery counters of a subscriber.
func (m *Measure[T]) Stats(id string) (SubscriberStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subscribers[id]
	if !ok {
		return SubscriberStats{}, ErrSubscriberNotFound
	}
	return SubscriberStats{
		Sent:    sub.sent.Load(),
		Dropped: sub.dropped.Load(),
	}, nil
}
