package ciudadauth

import "context"

const (
	auditEventSignUpSuccess = "signup_success"
	auditEventSignUpPending = "signup_pending"
	auditEventSignUpFailure = "signup_failure"
)

// SignUp creates an account. The backend either activates immediately — the
// response carries credentials and the session becomes Authenticated exactly
// as a login success — or defers activation (for example pending email
// verification), in which case the result carries RequiresConfirmation and
// the session identity is unchanged. The deferred outcome is distinct from
// failure: the returned error is nil.
func (s *Store) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResult, error) {
	if s == nil || s.gateway == nil {
		return nil, ErrStoreNotReady
	}

	epoch := s.beginOp(OpSignUp)

	payload, err := s.gateway.SignUp(ctx, req)
	if err != nil {
		s.resolveFailure(OpSignUp, epoch, failureMessage(err, msgSignUpFailed))
		s.metricInc(MetricSignUpFailure)
		s.emitAudit(ctx, auditEventSignUpFailure, OpSignUp, false, nil, req.Email, err)
		return nil, err
	}

	if payload.Credentialed() {
		s.adoptCredentials(ctx, payload)
		s.resolveCredentialed(OpSignUp, epoch, payload.User, payload.RefreshToken)
		s.metricInc(MetricSignUpSuccess)
		s.emitAudit(ctx, auditEventSignUpSuccess, OpSignUp, true, payload.User, req.Email, nil)
		return &SignUpResult{User: payload.User}, nil
	}

	if payload != nil && payload.RequiresConfirmation {
		s.dispatch(event{
			op:                  OpSignUp,
			phase:               phaseSuccess,
			epoch:               epoch,
			confirmationPending: true,
		})
		s.metricInc(MetricSignUpConfirmationPending)
		s.emitAudit(ctx, auditEventSignUpPending, OpSignUp, true, nil, req.Email, nil)
		return &SignUpResult{RequiresConfirmation: true}, nil
	}

	// 2xx with neither credentials nor a confirmation marker is a contract
	// violation, same as a malformed login response.
	err = ErrResponseShape
	s.resolveFailure(OpSignUp, epoch, msgSignUpFailed)
	s.metricInc(MetricSignUpFailure)
	s.emitAudit(ctx, auditEventSignUpFailure, OpSignUp, false, nil, req.Email, err)
	return nil, err
}
