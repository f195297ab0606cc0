package vault

import (
	"context"
	"sync"
)

// Memory is a process-lifetime vault. Useful in tests and for deployments
// that deliberately forget the session on restart.
type Memory struct {
	mu    sync.Mutex
	token string
}

// NewMemory creates an empty in-memory vault.
func NewMemory() *Memory {
	return &Memory{}
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Save(_ context.Context, refreshToken string) error {
	m.mu.Lock()
	m.token = refreshToken
	m.mu.Unlock()
	return nil
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
