package ciudadauth

import (
	"errors"
	"log/slog"
)

// Builder defines a public type used by ciudadauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	gateway Gateway
	vault   TokenVault
	holder  *TokenHolder
	logger  *slog.Logger

	auditSink AuditSink

	built bool
}

// New returns a builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithGateway sets the authentication backend. Required.
func (b *Builder) WithGateway(gw Gateway) *Builder {
	b.gateway = gw
	return b
}

// WithTokenVault sets the refresh-token persistence adapter. Optional; with
// no vault the refresh token lives only in memory and every process start
// boots into the anonymous state.
func (b *Builder) WithTokenVault(v TokenVault) *Builder {
	b.vault = v
	return b
}

// WithTokenHolder sets the access-token holder shared with the gateway
// transport. Optional; a fresh holder is created when omitted, readable via
// [Store.TokenHolder].
func (b *Builder) WithTokenHolder(h *TokenHolder) *Builder {
	b.holder = h
	return b
}

// WithLogger sets the structured logger for suppressed failures. Optional;
// defaults to [slog.Default].
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// WithAuditSink sets the destination for audit events. Enables auditing when
// the config has not already.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	if sink != nil {
		b.config.Audit.Enabled = true
	}
	return b
}

// WithMetricsEnabled toggles metric recording.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the refresh latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Store, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if b.gateway == nil {
		return nil, errors.New("gateway required")
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	holder := b.holder
	if holder == nil {
		holder = NewTokenHolder()
	}

	store := &Store{
		config:  b.config,
		gateway: b.gateway,
		vault:   b.vault,
		holder:  holder,
		logger:  logger,
		audit:   newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics: NewMetrics(b.config.Metrics),
	}

	b.built = true

	return store, nil
}
