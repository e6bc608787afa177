package store

import (
	"bytes"
	"context"
	"sync"
)

// MemoryBackend keeps everything in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
	lists  map[string][][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string][]byte),
		lists:  make(map[string][][]byte),
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (m *MemoryBackend) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.values[key]; ok {
		return true, nil
	}
	return len(m.lists[key]) > 0, nil
}

func (m *MemoryBackend) Range(_ context.Context, key string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([][]byte, 0, len(m.lists[key]))
	for _, v := range m.lists[key] {
		items = append(items, clone(v))
	}
	return items, nil
}

// holds reports whether r still describes the current state. Callers hold mu.
func (m *MemoryBackend) holds(r Read) bool {
	switch r.Kind {
	case ReadValue:
		v, ok := m.values[r.Key]
		return ok == r.Found && bytes.Equal(v, r.Value)
	case ReadExists:
		_, ok := m.values[r.Key]
		return (ok || len(m.lists[r.Key]) > 0) == r.Found
	case ReadList:
		return len(m.lists[r.Key]) == r.Len
	}
	return false
}

func (m *MemoryBackend) Apply(_ context.Context, reads []Read, mutations []Mutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range reads {
		if !m.holds(r) {
			return ErrConflict
		}
	}
	for _, mut := range mutations {
		switch mut.Op {
		case OpSet:
			m.values[mut.Key] = clone(mut.Value)
		case OpAppend:
			m.lists[mut.Key] = append(m.lists[mut.Key], clone(mut.Value))
		}
	}
	return nil
}
