package ciudadauth

import (
	"context"
	"fmt"
)

// User is the identity record returned by the backend on every credential
// payload. It is replaced wholesale on each successful auth operation, never
// merged field-by-field; callers must treat it as immutable.
type User struct {
	AccID        string         `json:"acc_id"`
	Email        string         `json:"email"`
	Username     string         `json:"username,omitempty"`
	SupabaseID   string         `json:"supabase_id"`
	ProfileImage string         `json:"profile_image,omitempty"`
	Resident     map[string]any `json:"resident,omitempty"`
	Staff        map[string]any `json:"staff,omitempty"`
}

// CredentialPayload is the decoded success response of a credential-bearing
// gateway call. OTP verification and email OTP verification may resolve with
// an acknowledgement only: User is nil and Message carries the server text.
type CredentialPayload struct {
	AccessToken          string `json:"access_token"`
	RefreshToken         string `json:"refresh_token"`
	User                 *User  `json:"user"`
	Message              string `json:"message,omitempty"`
	RequiresConfirmation bool   `json:"requiresConfirmation,omitempty"`
}

// Credentialed reports whether the payload carries a full credential set
// (access token plus user identity).
func (p *CredentialPayload) Credentialed() bool {
	return p != nil && p.AccessToken != "" && p.User != nil
}

// SignUpRequest is the input for [Store.SignUp]. Username is optional.
type SignUpRequest struct {
	Email    string
	Password string
	Username string
}

// SignUpResult is returned by [Store.SignUp]. When the backend defers
// activation (for example pending email verification) RequiresConfirmation is
// true and User is nil; this outcome is distinct from failure.
type SignUpResult struct {
	RequiresConfirmation bool
	User                 *User
}

// VerifyResult is returned by [Store.VerifyOTP] and [Store.VerifyEmailOTP].
// Authenticated is true only in the credential-bearing branch; in the
// acknowledgement branch Message carries the server text and the session is
// untouched.
type VerifyResult struct {
	Authenticated bool
	User          *User
	Message       string
}

// Gateway is the primary interface that callers must implement to integrate
// ciudadauth with the authentication backend. Each call is request/response;
// no retries are performed inside the gateway. The HTTP implementation lives
// in the gateway subpackage.
//
// Structured backend rejections must be returned as [*APIError] so that the
// server message is surfaced verbatim to [SessionState].Error; transport
// failures may be any other error and fall back to a generic message.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*CredentialPayload, error)
	SendOTP(ctx context.Context, phoneNumber string) error
	VerifyOTP(ctx context.Context, phoneNumber, otp string) (*CredentialPayload, error)
	SignUp(ctx context.Context, req SignUpRequest) (*CredentialPayload, error)
	Refresh(ctx context.Context, refreshToken string) (*CredentialPayload, error)
	Logout(ctx context.Context) error
	SendEmailOTP(ctx context.Context, email string) error
	VerifyEmailOTP(ctx context.Context, email, otp string) (*CredentialPayload, error)
}

// TokenVault persists the long-lived refresh token between application
// launches. Implementations live in the vault subpackage; the store treats
// vault failures as non-fatal (logged, never surfaced to the session).
type TokenVault interface {
	Save(ctx context.Context, refreshToken string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// APIError is a structured rejection from the authentication backend: a
// non-2xx response that carried a message body. Message is surfaced verbatim
// to [SessionState].Error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return "api error"
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}
