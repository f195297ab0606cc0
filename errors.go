package ciudadauth

import "errors"

var (
	// ErrStoreNotReady is an exported constant or variable used by the session lifecycle.
	ErrStoreNotReady = errors.New("store not initialized")
	// ErrNoRefreshToken is an exported constant or variable used by the session lifecycle.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrResponseShape is an exported constant or variable used by the session lifecycle.
	ErrResponseShape = errors.New("credential response missing required fields")
	// ErrSessionExpired is an exported constant or variable used by the session lifecycle.
	ErrSessionExpired = errors.New("session expired")
	// ErrSignUpFailed is an exported constant or variable used by the session lifecycle.
	ErrSignUpFailed = errors.New("signup failed")
	// ErrOTPRejected is an exported constant or variable used by the session lifecycle.
	ErrOTPRejected = errors.New("otp rejected")
)

// User-facing fallback messages, used when the backend provides no structured
// error. The refresh message is deliberately distinct from a raw transport
// error so the UI can prompt a re-login.
const (
	msgLoginFailed        = "Login failed"
	msgSendOTPFailed      = "Failed to send OTP"
	msgVerifyOTPFailed    = "Failed to verify OTP"
	msgSendEmailOTPFailed = "Failed to send email OTP"
	msgVerifyEmailFailed  = "Failed to verify email OTP"
	msgSignUpFailed       = "Signup failed"
	msgSessionExpired     = "Session expired - Please Login Again"
)

// failureMessage maps a gateway error to the string surfaced on
// [SessionState].Error: structured backend rejections verbatim, everything
// else the operation's generic fallback.
func failureMessage(err error, fallback string) string {
	var api *APIError
	if errors.As(err, &api) && api.Message != "" {
		return api.Message
	}
	return fallback
}
