package ciudadauth

import "context"

const (
	auditEventLoginSuccess = "login_success"
	auditEventLoginFailure = "login_failure"
)

// Login authenticates with email and password. On success the access token is
// installed in the [TokenHolder] before the session transition is published,
// the refresh token is persisted, and the session becomes Authenticated. On
// failure the session becomes Anonymous with [SessionState].Error populated:
// the backend's message verbatim when it sent one, "Login failed" otherwise.
//
// The failure is recorded in state and also returned; a 2xx response missing
// the access token or user is reported as [ErrResponseShape].
func (s *Store) Login(ctx context.Context, email, password string) error {
	if s == nil || s.gateway == nil {
		return ErrStoreNotReady
	}

	epoch := s.beginOp(OpLogin)

	payload, err := s.gateway.Login(ctx, email, password)
	if err == nil && !payload.Credentialed() {
		err = ErrResponseShape
	}
	if err != nil {
		s.resolveFailure(OpLogin, epoch, failureMessage(err, msgLoginFailed))
		s.metricInc(MetricLoginFailure)
		s.emitAudit(ctx, auditEventLoginFailure, OpLogin, false, nil, email, err)
		return err
	}

	s.adoptCredentials(ctx, payload)
	s.resolveCredentialed(OpLogin, epoch, payload.User, payload.RefreshToken)
	s.metricInc(MetricLoginSuccess)
	s.emitAudit(ctx, auditEventLoginSuccess, OpLogin, true, payload.User, email, nil)
	return nil
}
