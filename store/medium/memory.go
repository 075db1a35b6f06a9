package medium

import "sync"

type memory struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]

	if !ok {
		return "", ErrNotFound
	}

	return value, nil
}

func (m *memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// NewMemory returns a process-local Medium. Values do not survive a restart.
func NewMemory() Medium {
	return &memory{values: make(map[string]string)}
}
