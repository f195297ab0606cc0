package ciudadauth

import (
	"errors"
	"time"
)

// Config defines a public type used by ciudadauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Audit       AuditConfig
	Metrics     MetricsConfig
	AutoRefresh AutoRefreshConfig
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by ciudadauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by ciudadauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
AUTO REFRESH CONFIG
====================================
*/

// AutoRefreshConfig controls the background silent-refresh scheduler started
// by [Store.StartAutoRefresh]. Lead is how long before access-token expiry a
// refresh is attempted; MinInterval is the floor between attempts so a
// short-lived or unparsable token cannot produce a refresh storm.
type AutoRefreshConfig struct {
	Enabled     bool
	Lead        time.Duration
	MinInterval time.Duration
}

func defaultConfig() Config {
	return Config{
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		AutoRefresh: AutoRefreshConfig{
			Enabled:     false,
			Lead:        30 * time.Second,
			MinInterval: 10 * time.Second,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must be >= 0")
	}
	if c.AutoRefresh.Enabled {
		if c.AutoRefresh.Lead <= 0 {
			return errors.New("auto refresh lead must be positive")
		}
		if c.AutoRefresh.MinInterval <= 0 {
			return errors.New("auto refresh min interval must be positive")
		}
	}
	return nil
}
