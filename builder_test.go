package ciudadauth

import (
	"testing"
	"time"
)

func TestBuildRequiresGateway(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected error without a gateway")
	}
}

func TestBuilderCannotBeReused(t *testing.T) {
	b := New().WithGateway(&mockGateway{})

	store, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	t.Cleanup(store.Close)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error on builder reuse")
	}
}

func TestBuildUsesProvidedHolder(t *testing.T) {
	holder := NewTokenHolder()

	store, err := New().WithGateway(&mockGateway{}).WithTokenHolder(holder).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(store.Close)

	if store.TokenHolder() != holder {
		t.Fatal("expected the provided holder")
	}
}

func TestBuildCreatesHolderWhenOmitted(t *testing.T) {
	store, err := New().WithGateway(&mockGateway{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(store.Close)

	if store.TokenHolder() == nil {
		t.Fatal("expected a holder to be created")
	}
}

func TestWithAuditSinkEnablesAuditing(t *testing.T) {
	store, err := New().WithGateway(&mockGateway{}).WithAuditSink(&countingSink{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(store.Close)

	if store.audit == nil {
		t.Fatal("expected the audit dispatcher to be running")
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.AutoRefresh = AutoRefreshConfig{Enabled: true, Lead: 0, MinInterval: time.Second}

	if _, err := New().WithConfig(cfg).WithGateway(&mockGateway{}).Build(); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name: "auto refresh needs positive lead",
			mutate: func(c *Config) {
				c.AutoRefresh = AutoRefreshConfig{Enabled: true, MinInterval: time.Second}
			},
			wantErr: true,
		},
		{
			name: "auto refresh needs positive min interval",
			mutate: func(c *Config) {
				c.AutoRefresh = AutoRefreshConfig{Enabled: true, Lead: time.Minute}
			},
			wantErr: true,
		},
		{
			name: "negative audit buffer rejected",
			mutate: func(c *Config) {
				c.Audit = AuditConfig{Enabled: true, BufferSize: -1}
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNilStoreAccessorsAreSafe(t *testing.T) {
	var store *Store

	if s := store.State(); s != (SessionState{}) {
		t.Fatalf("expected zero state, got %+v", s)
	}
	if store.TokenHolder() != nil {
		t.Fatal("expected nil holder")
	}
	store.Subscribe(func(SessionState) {})()
	store.Close()
	if store.AuditDropped() != 0 {
		t.Fatal("expected zero dropped")
	}
}
