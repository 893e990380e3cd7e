package store

import "sync"

// MemoryBackend keeps tables in process memory. Used by tests and by the
// memory store backend in dev mode.
type MemoryBackend struct {
	mu     sync.RWMutex
	sheets map[string][][]string
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{
		sheets: make(map[string][][]string),
	}
}

// Table returns a handle for one named table, creating it lazily.
func (b *MemoryBackend) Table(name string) TableStore {
	return &memoryTable{backend: b, name: name}
}

// Close is a no-op.
func (b *MemoryBackend) Close() error {
	return nil
}

// Seed replaces one table's contents directly, bypassing the handle. Test
// convenience.
func (b *MemoryBackend) Seed(name string, rows [][]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sheets[name] = copyRows(rows)
}

type memoryTable struct {
	backend *MemoryBackend
	name    string
}

func (t *memoryTable) ReadAllRows() ([][]string, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	return copyRows(t.backend.sheets[t.name]), nil
}

func (t *memoryTable) ReplaceAllRows(rows [][]string) error {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	t.backend.sheets[t.name] = copyRows(rows)
	return nil
}

func copyRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, cells := range rows {
		out[i] = append([]string(nil), cells...)
	}
	return out
}
