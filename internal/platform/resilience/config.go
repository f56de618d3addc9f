package resilience

import "time"

// CircuitBreakerConfig tunes a breaker guarding one outbound dependency.
// Name labels state-change logs.
type CircuitBreakerConfig struct {
	Name             string
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// DefaultCircuitBreakerConfig suits optional narration calls: trip after a
// few failures and stay open long enough to cover several half-times.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "dependency",
		Enabled:          true,
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// Normalized fills zero or negative fields from DefaultCircuitBreakerConfig.
func (c CircuitBreakerConfig) Normalized() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if c.Name == "" {
		c.Name = defaults.Name
	}
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return c
}
