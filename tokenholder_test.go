package ciudadauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintAccessToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "acc-1",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestTokenHolderAppliesBearerHeader(t *testing.T) {
	h := NewTokenHolder()
	h.Set("opaque-token")

	req := httptest.NewRequest(http.MethodGet, "http://backend/profile", nil)
	h.Apply(req)

	if got := req.Header.Get("Authorization"); got != "Bearer opaque-token" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestTokenHolderEmptyIsNoOp(t *testing.T) {
	h := NewTokenHolder()

	req := httptest.NewRequest(http.MethodGet, "http://backend/profile", nil)
	h.Apply(req)
	if got := req.Header.Get("Authorization"); got != "" {
		t.Fatalf("empty holder must not sign, got %q", got)
	}

	h.Set("token")
	h.Set("")
	h.Apply(req)
	if got := req.Header.Get("Authorization"); got != "" {
		t.Fatalf("cleared holder must not sign, got %q", got)
	}
}

func TestTokenHolderReplacesToken(t *testing.T) {
	h := NewTokenHolder()
	h.Set("first")
	h.Set("second")

	req := httptest.NewRequest(http.MethodGet, "http://backend/profile", nil)
	h.Apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer second" {
		t.Fatalf("expected replaced token, got %q", got)
	}
}

func TestTokenHolderCachesExpiry(t *testing.T) {
	expiry := time.Now().Add(15 * time.Minute).Truncate(time.Second)

	h := NewTokenHolder()
	h.Set(mintAccessToken(t, expiry))

	got, ok := h.expiresAt()
	if !ok {
		t.Fatal("expected readable expiry")
	}
	if !got.Equal(expiry) {
		t.Fatalf("expected expiry %v, got %v", expiry, got)
	}
}

func TestTokenHolderOpaqueTokenHasNoExpiry(t *testing.T) {
	h := NewTokenHolder()
	h.Set("not-a-jwt")

	if _, ok := h.expiresAt(); ok {
		t.Fatal("opaque token must not report an expiry")
	}

	// Opaque tokens are still applied; expiry is only for scheduling.
	req := httptest.NewRequest(http.MethodGet, "http://backend/profile", nil)
	h.Apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer not-a-jwt" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestTokenHolderClearDropsExpiry(t *testing.T) {
	h := NewTokenHolder()
	h.Set(mintAccessToken(t, time.Now().Add(time.Hour)))
	h.Set("")

	if _, ok := h.expiresAt(); ok {
		t.Fatal("cleared holder must not report an expiry")
	}
}

func TestNilTokenHolderIsSafe(t *testing.T) {
	var h *TokenHolder
	h.Set("token")
	h.Apply(httptest.NewRequest(http.MethodGet, "http://backend/", nil))
	if _, ok := h.expiresAt(); ok {
		t.Fatal("nil holder must not report an expiry")
	}
}
