package measure

import (
	"fmt"
	"sort"
	"sync"
)

// Manager maps keys to pull and push measures. Registering a key twice
// replaces the previous measure.
type Manager struct {
	mu   sync.RWMutex
	pull map[string]PullMeasure
	push map[string]PushMeasure
}

func NewManager() *Manager {
	return &Manager{
		pull: make(map[string]PullMeasure),
		push: make(map[string]PushMeasure),
	}
}

func (m *Manager) SetPullMeasure(key string, measure PullMeasure) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pull[key] = measure
}

func (m *Manager) SetPushMeasure(key string, measure PushMeasure) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.push[key] = measure
}

func (m *Manager) PullMeasure(key string) (PullMeasure, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pm, ok := m.pull[key]
	return pm, ok
}

func (m *Manager) PushMeasure(key string) (PushMeasure, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pm, ok := m.push[key]
	return pm, ok
}

// PullMeasureKeys returns the registered pull keys in lexical order.
func (m *Manager) PullMeasureKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.pull)
}

// PushMeasureKeys returns the registered push keys in lexical order.
func (m *Manager) PushMeasureKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.push)
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pull reads the latest value of the pull measure under key.
func Pull[T any](m *Manager, key string) (T, bool, error) {
	var zero T
	pm, ok := m.PullMeasure(key)
	if !ok {
		return zero, false, fmt.Errorf("%w: %q", ErrMeasureNotFound, key)
	}
	v, set := pm.Value()
	if !set {
		return zero, false, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false, fmt.Errorf("%w: %q holds %T", ErrTypeMismatch, key, v)
	}
	return typed, true, nil
}

// Subscribe registers ch on the push measure under key.
func Subscribe[T any](m *Manager, key, id string, ch chan<- T) error {
	pm, ok := m.PushMeasure(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMeasureNotFound, key)
	}
	sub, ok := pm.(interface {
		Subscribe(id string, ch chan<- T) error
	})
	if !ok {
		return fmt.Errorf("%w: %q does not deliver %T values", ErrTypeMismatch, key, *new(T))
	}
	return sub.Subscribe(id, ch)
}
