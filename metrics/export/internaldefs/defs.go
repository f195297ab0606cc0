package internaldefs

import (
	ciudadauth "github.com/Aytsuu/CIUDAD-APP-sub033"
)

// CounterDef defines a public type used by ciudadauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   ciudadauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by ciudadauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   ciudadauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session lifecycle.
var CounterDefs = []CounterDef{
	{ID: ciudadauth.MetricLoginSuccess, Name: "ciudadauth_login_success_total", Help: "Successful login operations."},
	{ID: ciudadauth.MetricLoginFailure, Name: "ciudadauth_login_failure_total", Help: "Failed login operations."},
	{ID: ciudadauth.MetricOTPSendSuccess, Name: "ciudadauth_otp_send_success_total", Help: "Successful SMS OTP sends."},
	{ID: ciudadauth.MetricOTPSendFailure, Name: "ciudadauth_otp_send_failure_total", Help: "Failed SMS OTP sends."},
	{ID: ciudadauth.MetricOTPVerifySuccess, Name: "ciudadauth_otp_verify_success_total", Help: "Successful SMS OTP verifications (both branches)."},
	{ID: ciudadauth.MetricOTPVerifyFailure, Name: "ciudadauth_otp_verify_failure_total", Help: "Failed SMS OTP verifications."},
	{ID: ciudadauth.MetricEmailOTPSendSuccess, Name: "ciudadauth_email_otp_send_success_total", Help: "Successful email OTP sends."},
	{ID: ciudadauth.MetricEmailOTPSendFailure, Name: "ciudadauth_email_otp_send_failure_total", Help: "Failed email OTP sends."},
	{ID: ciudadauth.MetricEmailOTPVerifySuccess, Name: "ciudadauth_email_otp_verify_success_total", Help: "Successful email OTP verifications (both branches)."},
	{ID: ciudadauth.MetricEmailOTPVerifyFailure, Name: "ciudadauth_email_otp_verify_failure_total", Help: "Failed email OTP verifications."},
	{ID: ciudadauth.MetricSignUpSuccess, Name: "ciudadauth_signup_success_total", Help: "Signups that activated immediately."},
	{ID: ciudadauth.MetricSignUpConfirmationPending, Name: "ciudadauth_signup_confirmation_pending_total", Help: "Signups deferred pending confirmation."},
	{ID: ciudadauth.MetricSignUpFailure, Name: "ciudadauth_signup_failure_total", Help: "Failed signups."},
	{ID: ciudadauth.MetricRefreshSuccess, Name: "ciudadauth_refresh_success_total", Help: "Successful session refreshes."},
	{ID: ciudadauth.MetricRefreshFailure, Name: "ciudadauth_refresh_failure_total", Help: "Failed session refreshes."},
	{ID: ciudadauth.MetricCheckAuthSuccess, Name: "ciudadauth_check_auth_success_total", Help: "Bootstrap checks that recovered a session."},
	{ID: ciudadauth.MetricCheckAuthAnonymous, Name: "ciudadauth_check_auth_anonymous_total", Help: "Bootstrap checks that resolved anonymous."},
	{ID: ciudadauth.MetricLogout, Name: "ciudadauth_logout_total", Help: "Logout operations."},
	{ID: ciudadauth.MetricLogoutRevokeFailed, Name: "ciudadauth_logout_revoke_failed_total", Help: "Logouts whose server-side revoke failed."},
	{ID: ciudadauth.MetricStaleEventDiscarded, Name: "ciudadauth_stale_event_discarded_total", Help: "Late operation resolutions discarded by the epoch guard."},
	{ID: ciudadauth.MetricVaultFailure, Name: "ciudadauth_vault_failure_total", Help: "Refresh-token vault read/write failures."},
}

// HistogramDefs is an exported constant or variable used by the session lifecycle.
var HistogramDefs = []HistogramDef{
	{ID: ciudadauth.MetricRefreshLatency, Name: "ciudadauth_refresh_latency_seconds", Help: "Silent refresh round-trip latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session lifecycle.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session lifecycle.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed 8-bucket
// layout.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative counts
// Prometheus and OTel expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
