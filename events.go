package ciudadauth

// Op identifies one of the nine session operations. The reducer switches
// exhaustively over Op × phase, so the transition table is closed at compile
// time.
type Op uint8

const (
	// OpLogin is the password login operation.
	OpLogin Op = iota
	// OpSendOTP triggers a server-side SMS send.
	OpSendOTP
	// OpVerifyOTP verifies a phone OTP; may or may not carry credentials.
	OpVerifyOTP
	// OpSignUp creates an account; may defer activation.
	OpSignUp
	// OpRefresh rotates the session from the stored refresh token.
	OpRefresh
	// OpCheckAuth is the startup bootstrap; its failures are silent.
	OpCheckAuth
	// OpLogout forgets the session locally regardless of server outcome.
	OpLogout
	// OpSendEmailOTP triggers a server-side email OTP send.
	OpSendEmailOTP
	// OpVerifyEmailOTP verifies an email OTP; may or may not carry credentials.
	OpVerifyEmailOTP

	opCount
)

var opNames = [opCount]string{
	OpLogin:          "login",
	OpSendOTP:        "send_otp",
	OpVerifyOTP:      "verify_otp",
	OpSignUp:         "sign_up",
	OpRefresh:        "refresh_session",
	OpCheckAuth:      "check_auth",
	OpLogout:         "logout",
	OpSendEmailOTP:   "send_email_otp",
	OpVerifyEmailOTP: "verify_email_otp",
}

// String returns the snake_case operation name used in audit events and logs.
func (o Op) String() string {
	if o >= opCount {
		return "unknown"
	}
	return opNames[o]
}

type eventPhase uint8

const (
	phaseStart eventPhase = iota
	phaseSuccess
	phaseFailure
)

// event is an operation lifecycle event fed to the reducer. Exactly one Start
// is dispatched per operation invocation, followed by exactly one Success or
// Failure carrying the same epoch.
type event struct {
	op    Op
	phase eventPhase
	epoch uint64

	// Success payload. credentialed marks a full credential set; user and
	// refreshToken are only meaningful when it is true.
	credentialed bool
	user         *User
	refreshToken string

	// confirmationPending marks a signup that resolved without credentials.
	confirmationPending bool

	// failure reason, already mapped to a user-facing message.
	errMsg string
}
