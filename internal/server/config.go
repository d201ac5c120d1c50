// File server/config.go
package server

import "sync"

// Config is the runtime-tunable part of the move service.
type Config struct {
	AgentName      string `json:"agent_name"`
	BoardSize      int    `json:"board_size"`
	TimeBudgetMs   int    `json:"time_budget_ms"`
	RandomMode     bool   `json:"random_mode"`
	LogSearchStats bool   `json:"log_search_stats"`
}

// DefaultConfig returns the settings the service starts with.
func DefaultConfig() Config {
	return Config{
		AgentName:      "hive",
		BoardSize:      13,
		TimeBudgetMs:   950,
		RandomMode:     false,
		LogSearchStats: true,
	}
}

// ConfigStore guards the live config for concurrent readers.
type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

// NewConfigStore seeds the store with the default config.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{config: DefaultConfig()}
}

// Get returns a copy of the current config.
func (s *ConfigStore) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update replaces the config after filling omitted fields from the current
// values.
func (s *ConfigStore) Update(next Config) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next.AgentName == "" {
		next.AgentName = s.config.AgentName
	}
	if next.BoardSize == 0 {
		next.BoardSize = s.config.BoardSize
	}
	if next.TimeBudgetMs == 0 {
		next.TimeBudgetMs = s.config.TimeBudgetMs
	}
	s.config = next
	return s.config
}
