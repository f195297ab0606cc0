package ciudadauth

// SessionState is the single authoritative record of "who is logged in and
// how sure are we". It is owned exclusively by the store's reducer; the rest
// of the application reads it through [Store.State] and [Store.Subscribe].
//
// Derived phases, not enumerated as a separate field:
//
//	Unknown       HasCheckedAuth == false
//	Anonymous     HasCheckedAuth == true && User == nil
//	Authenticated User != nil
//
// with IsLoading overlaying whichever base phase an in-flight operation was
// entered from.
type SessionState struct {
	// User is present iff a session is currently considered valid.
	User *User

	// IsAuthenticated is true only while User != nil.
	IsAuthenticated bool

	// IsLoading is true while the most recently started operation is still
	// in flight.
	IsLoading bool

	// Error holds the last operation's human-readable failure reason, or ""
	// when there is none. Cleared at the start of every new operation, so
	// errors are single-shot.
	Error string

	// HasCheckedAuth is a one-way latch: false only before the very first
	// bootstrap resolution. Once true it never reverts for the lifetime of
	// the process.
	HasCheckedAuth bool

	// RefreshToken is the opaque long-lived credential; present iff the
	// client believes it can silently re-authenticate.
	RefreshToken string

	// ConfirmationPending records a signup that resolved with
	// "confirmation required" instead of immediate credentials. Cleared at
	// the start of the next operation.
	ConfirmationPending bool

	// Epoch identifies the most recently started operation. Resolution
	// events stamped with an older epoch are discarded by the reducer.
	Epoch uint64
}

// Anonymous reports whether the session has been checked and no user is
// logged in.
func (s SessionState) Anonymous() bool {
	return s.HasCheckedAuth && s.User == nil
}
