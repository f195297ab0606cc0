package vault

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	v := NewMemory()
	ctx := context.Background()

	token, err := v.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if token != "" {
		t.Fatalf("fresh vault must be empty, got %q", token)
	}

	if err := v.Save(ctx, "refresh-1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token, err = v.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if token != "refresh-1" {
		t.Fatalf("expected refresh-1, got %q", token)
	}

	if err := v.Save(ctx, "refresh-2"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token, _ = v.Load(ctx)
	if token != "refresh-2" {
		t.Fatalf("save must replace, got %q", token)
	}

	if err := v.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	token, _ = v.Load(ctx)
	if token != "" {
		t.Fatalf("cleared vault must be empty, got %q", token)
	}
}
