package config

import (
	"strings"
	"time"
)

// GetQueryTimeout returns the per request storage deadline
func (s *Settings) GetQueryTimeout() time.Duration {
	if s.QueryTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.QueryTimeout) * time.Second
}

func (s *Settings) GetBreakerCooldown() time.Duration {
	if s.Breaker.Cooldown <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.Breaker.Cooldown) * time.Second
}

// IsDebugHost reports whether host contains one of the configured debug
// host patterns
func (s *Settings) IsDebugHost(host string) bool {
	for _, pattern := range s.DebugHosts {
		if pattern != "" && strings.Contains(host, pattern) {
			return true
		}
	}
	return false
}
