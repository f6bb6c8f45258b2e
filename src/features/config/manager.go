package config

import (
	"sync"
)

// Manager holds the application configuration and provides thread-safe
// access to it.
type Manager struct {
	mu     sync.RWMutex
	config *Config
}

// NewManager creates a new Manager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Update replaces the configuration.
func (m *Manager) Update(config *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config
}
