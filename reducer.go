package ciudadauth

// reduce is the session state machine: given the current state and an
// operation event, it returns the next state. It is pure — no I/O, no side
// effects — so every transition in it is unit-testable in isolation.
//
// Stale-event guard: a Start always applies and stamps the state with the
// operation's epoch. A Success or Failure applies only while its operation is
// still the most recently started one; otherwise a newer operation owns the
// state and the late resolution is discarded unchanged.
func reduce(s SessionState, ev event) SessionState {
	switch ev.phase {
	case phaseStart:
		s.IsLoading = true
		s.Error = ""
		s.ConfirmationPending = false
		s.Epoch = ev.epoch
		return s

	case phaseSuccess:
		if ev.epoch != s.Epoch {
			return s
		}
		return reduceSuccess(s, ev)

	case phaseFailure:
		if ev.epoch != s.Epoch {
			return s
		}
		return reduceFailure(s, ev)
	}
	return s
}

func reduceSuccess(s SessionState, ev event) SessionState {
	s.IsLoading = false
	s.Error = ""

	switch ev.op {
	case OpLogin, OpRefresh, OpCheckAuth:
		// Credential replacement. checkAuth success only ever arrives via a
		// successful refresh, so all three land here identically.
		s.User = ev.user
		s.IsAuthenticated = true
		s.RefreshToken = ev.refreshToken
		s.HasCheckedAuth = true
		return s

	case OpVerifyOTP, OpVerifyEmailOTP, OpSignUp:
		if ev.credentialed {
			s.User = ev.user
			s.IsAuthenticated = true
			s.RefreshToken = ev.refreshToken
			s.HasCheckedAuth = true
			return s
		}
		if ev.op == OpSignUp {
			s.ConfirmationPending = ev.confirmationPending
		}
		// Acknowledgement-only: identity fields untouched.
		return s

	case OpSendOTP, OpSendEmailOTP:
		// Fire-and-acknowledge; no state identity change.
		return s

	case OpLogout:
		return loggedOut(s)
	}
	return s
}

func reduceFailure(s SessionState, ev event) SessionState {
	s.IsLoading = false

	switch ev.op {
	case OpLogin:
		s.Error = ev.errMsg
		s.User = nil
		s.IsAuthenticated = false
		s.HasCheckedAuth = true
		return s

	case OpRefresh:
		out := loggedOut(s)
		out.Error = ev.errMsg
		return out

	case OpCheckAuth:
		// A failed silent bootstrap is not a user-actionable event: the user
		// lands in a quiet anonymous state, never an error banner.
		return loggedOut(s)

	case OpLogout:
		// Logout never fails observably; the client's job is to locally
		// forget the session whether or not the server-side revoke landed.
		return loggedOut(s)

	case OpSendOTP, OpVerifyOTP, OpSignUp, OpSendEmailOTP, OpVerifyEmailOTP:
		s.Error = ev.errMsg
		return s
	}
	return s
}

// loggedOut resets the session to anonymous. HasCheckedAuth is forced true:
// reaching a logged-out state is itself a resolution of "do we have a
// session".
func loggedOut(s SessionState) SessionState {
	return SessionState{
		HasCheckedAuth: true,
		Epoch:          s.Epoch,
	}
}
