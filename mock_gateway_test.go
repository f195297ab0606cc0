package ciudadauth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// mockGateway scripts each operation with an optional function and counts
// calls. Unscripted operations succeed with empty acks, except credential
// operations which fail loudly so tests cannot pass by accident.
type mockGateway struct {
	loginFn          func(ctx context.Context, email, password string) (*CredentialPayload, error)
	sendOTPFn        func(ctx context.Context, phoneNumber string) error
	verifyOTPFn      func(ctx context.Context, phoneNumber, otp string) (*CredentialPayload, error)
	signUpFn         func(ctx context.Context, req SignUpRequest) (*CredentialPayload, error)
	refreshFn        func(ctx context.Context, refreshToken string) (*CredentialPayload, error)
	logoutFn         func(ctx context.Context) error
	sendEmailOTPFn   func(ctx context.Context, email string) error
	verifyEmailOTPFn func(ctx context.Context, email, otp string) (*CredentialPayload, error)

	loginCalls   atomic.Int64
	refreshCalls atomic.Int64
	logoutCalls  atomic.Int64
}

var errUnscripted = errors.New("gateway call not scripted")

func (g *mockGateway) Login(ctx context.Context, email, password string) (*CredentialPayload, error) {
	g.loginCalls.Add(1)
	if g.loginFn == nil {
		return nil, errUnscripted
	}
	return g.loginFn(ctx, email, password)
}

func (g *mockGateway) SendOTP(ctx context.Context, phoneNumber string) error {
	if g.sendOTPFn == nil {
		return nil
	}
	return g.sendOTPFn(ctx, phoneNumber)
}

func (g *mockGateway) VerifyOTP(ctx context.Context, phoneNumber, otp string) (*CredentialPayload, error) {
	if g.verifyOTPFn == nil {
		return nil, errUnscripted
	}
	return g.verifyOTPFn(ctx, phoneNumber, otp)
}

func (g *mockGateway) SignUp(ctx context.Context, req SignUpRequest) (*CredentialPayload, error) {
	if g.signUpFn == nil {
		return nil, errUnscripted
	}
	return g.signUpFn(ctx, req)
}

func (g *mockGateway) Refresh(ctx context.Context, refreshToken string) (*CredentialPayload, error) {
	g.refreshCalls.Add(1)
	if g.refreshFn == nil {
		return nil, errUnscripted
	}
	return g.refreshFn(ctx, refreshToken)
}

func (g *mockGateway) Logout(ctx context.Context) error {
	g.logoutCalls.Add(1)
	if g.logoutFn == nil {
		return nil
	}
	return g.logoutFn(ctx)
}

func (g *mockGateway) SendEmailOTP(ctx context.Context, email string) error {
	if g.sendEmailOTPFn == nil {
		return nil
	}
	return g.sendEmailOTPFn(ctx, email)
}

func (g *mockGateway) VerifyEmailOTP(ctx context.Context, email, otp string) (*CredentialPayload, error) {
	if g.verifyEmailOTPFn == nil {
		return nil, errUnscripted
	}
	return g.verifyEmailOTPFn(ctx, email, otp)
}

// stubVault is an in-memory TokenVault with scriptable failures.
type stubVault struct {
	mu      sync.Mutex
	token   string
	saveErr error
	loadErr error
}

func (v *stubVault) Save(_ context.Context, refreshToken string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.saveErr != nil {
		return v.saveErr
	}
	v.token = refreshToken
	return nil
}

func (v *stubVault) Load(_ context.Context) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loadErr != nil {
		return "", v.loadErr
	}
	return v.token, nil
}

func (v *stubVault) Clear(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token = ""
	return nil
}

func (v *stubVault) stored() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.token
}

func credPayload(accID, email, access, refresh string) *CredentialPayload {
	return &CredentialPayload{
		AccessToken:  access,
		RefreshToken: refresh,
		User: &User{
			AccID:      accID,
			Email:      email,
			SupabaseID: "sb-" + accID,
		},
	}
}

func newTestStore(t *testing.T, gw Gateway, vault TokenVault) *Store {
	t.Helper()

	builder := New().WithGateway(gw)
	if vault != nil {
		builder = builder.WithTokenVault(vault)
	}

	store, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(store.Close)

	return store
}

// authenticate drives the store into the Authenticated state through a
// scripted login.
func authenticate(t *testing.T, store *Store, gw *mockGateway, accID, refresh string) {
	t.Helper()

	gw.loginFn = func(context.Context, string, string) (*CredentialPayload, error) {
		return credPayload(accID, accID+"@example.com", "access-"+accID, refresh), nil
	}
	if err := store.Login(context.Background(), accID+"@example.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !store.State().IsAuthenticated {
		t.Fatal("expected authenticated state after login")
	}
}
