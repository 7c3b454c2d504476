package secret

import (
	"sync"

	"github.com/arcana-network/keygen/scalar"
)

// MemoryManager keeps secrets in process memory. It is meant for tests and
// local runs; nothing survives a restart.
type MemoryManager struct {
	mu      sync.RWMutex
	secrets map[string][]byte
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{secrets: make(map[string][]byte)}
}

func (m *MemoryManager) Setup() error {
	return nil
}

func (m *MemoryManager) GetSecret(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.secrets[name]
	if !ok {
		return nil, ErrSecretNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryManager) SetSecret(name string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.secrets[name]; ok {
		scalar.Wipe(old)
	}
	m.secrets[name] = v
	return nil
}

func (m *MemoryManager) DeleteSecret(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.secrets[name]
	if !ok {
		return ErrSecretNotFound
	}
	scalar.Wipe(v)
	delete(m.secrets, name)
	return nil
}
