package ciudadauth

import (
	"net/http"
	"sync"
	"time"
)

// TokenHolder is the process-wide, in-memory holder of the current access
// token. Set is the only mutator; the contents are never readable by
// application code. The holder exists solely so outbound request signing can
// attach the token — it is deliberately not part of [SessionState], so
// rotating the access token never triggers a session notification.
type TokenHolder struct {
	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewTokenHolder creates an empty holder.
func NewTokenHolder() *TokenHolder {
	return &TokenHolder{}
}

// Set replaces the held access token. An empty string clears it. The token's
// exp claim, when parsable, is cached for the auto-refresh scheduler.
func (h *TokenHolder) Set(token string) {
	if h == nil {
		return
	}
	var expires time.Time
	if token != "" {
		if exp, ok := accessTokenExpiry(token); ok {
			expires = exp
		}
	}

	h.mu.Lock()
	h.token = token
	h.expires = expires
	h.mu.Unlock()
}

// Apply signs an outbound request with the held token as a bearer
// Authorization header. No-op while no token is held.
func (h *TokenHolder) Apply(req *http.Request) {
	if h == nil || req == nil {
		return
	}
	h.mu.Lock()
	token := h.token
	h.mu.Unlock()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// expiresAt returns the cached expiry of the held token. ok is false when no
// token is held or its exp claim could not be read.
func (h *TokenHolder) expiresAt() (time.Time, bool) {
	if h == nil {
		return time.Time{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.token == "" || h.expires.IsZero() {
		return time.Time{}, false
	}
	return h.expires, true
}
