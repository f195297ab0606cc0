package ciudadauth

import "context"

const (
	auditEventOTPSend        = "otp_send"
	auditEventOTPVerify      = "otp_verify"
	auditEventEmailOTPSend   = "email_otp_send"
	auditEventEmailOTPVerify = "email_otp_verify"
)

// SendOTP asks the backend to send a login OTP to the given phone number.
// Fire-and-acknowledge: no identity fields are touched on either outcome.
func (s *Store) SendOTP(ctx context.Context, phoneNumber string) error {
	if s == nil || s.gateway == nil {
		return ErrStoreNotReady
	}

	epoch := s.beginOp(OpSendOTP)

	if err := s.gateway.SendOTP(ctx, phoneNumber); err != nil {
		s.resolveFailure(OpSendOTP, epoch, failureMessage(err, msgSendOTPFailed))
		s.metricInc(MetricOTPSendFailure)
		s.emitAudit(ctx, auditEventOTPSend, OpSendOTP, false, nil, "", err)
		return err
	}

	s.resolveAck(OpSendOTP, epoch)
	s.metricInc(MetricOTPSendSuccess)
	s.emitAudit(ctx, auditEventOTPSend, OpSendOTP, true, nil, "", nil)
	return nil
}

// VerifyOTP submits a phone OTP. The backend answers in one of two shapes: a
// full credential payload (the session becomes Authenticated, exactly as a
// login success) or a bare acknowledgement such as "OTP valid, proceed to
// signup" (identity fields untouched, TokenHolder untouched). The result
// reports which branch was taken.
func (s *Store) VerifyOTP(ctx context.Context, phoneNumber, otp string) (*VerifyResult, error) {
	return s.verifyChannel(ctx, OpVerifyOTP, auditEventOTPVerify, func(ctx context.Context) (*CredentialPayload, error) {
		return s.gateway.VerifyOTP(ctx, phoneNumber, otp)
	}, "", msgVerifyOTPFailed, MetricOTPVerifySuccess, MetricOTPVerifyFailure)
}

// SendEmailOTP is the email-channel counterpart of [Store.SendOTP]. The two
// channels are kept as a parallel pair rather than unified; their backend
// contracts evolve independently.
func (s *Store) SendEmailOTP(ctx context.Context, email string) error {
	if s == nil || s.gateway == nil {
		return ErrStoreNotReady
	}

	epoch := s.beginOp(OpSendEmailOTP)

	if err := s.gateway.SendEmailOTP(ctx, email); err != nil {
		s.resolveFailure(OpSendEmailOTP, epoch, failureMessage(err, msgSendEmailOTPFailed))
		s.metricInc(MetricEmailOTPSendFailure)
		s.emitAudit(ctx, auditEventEmailOTPSend, OpSendEmailOTP, false, nil, email, err)
		return err
	}

	s.resolveAck(OpSendEmailOTP, epoch)
	s.metricInc(MetricEmailOTPSendSuccess)
	s.emitAudit(ctx, auditEventEmailOTPSend, OpSendEmailOTP, true, nil, email, nil)
	return nil
}

// VerifyEmailOTP is the email-channel counterpart of [Store.VerifyOTP].
func (s *Store) VerifyEmailOTP(ctx context.Context, email, otp string) (*VerifyResult, error) {
	return s.verifyChannel(ctx, OpVerifyEmailOTP, auditEventEmailOTPVerify, func(ctx context.Context) (*CredentialPayload, error) {
		return s.gateway.VerifyEmailOTP(ctx, email, otp)
	}, email, msgVerifyEmailFailed, MetricEmailOTPVerifySuccess, MetricEmailOTPVerifyFailure)
}

func (s *Store) verifyChannel(
	ctx context.Context,
	op Op,
	auditType string,
	call func(context.Context) (*CredentialPayload, error),
	email string,
	fallback string,
	successMetric, failureMetric MetricID,
) (*VerifyResult, error) {
	if s == nil || s.gateway == nil {
		return nil, ErrStoreNotReady
	}

	epoch := s.beginOp(op)

	payload, err := call(ctx)
	if err != nil {
		s.resolveFailure(op, epoch, failureMessage(err, fallback))
		s.metricInc(failureMetric)
		s.emitAudit(ctx, auditType, op, false, nil, email, err)
		return nil, err
	}

	if payload.Credentialed() {
		s.adoptCredentials(ctx, payload)
		s.resolveCredentialed(op, epoch, payload.User, payload.RefreshToken)
		s.metricInc(successMetric)
		s.emitAudit(ctx, auditType, op, true, payload.User, email, nil)
		return &VerifyResult{Authenticated: true, User: payload.User}, nil
	}

	// Acknowledgement-only branch: the OTP is valid but the flow continues
	// elsewhere (typically signup). No TokenHolder mutation.
	s.resolveAck(op, epoch)
	s.metricInc(successMetric)
	s.emitAudit(ctx, auditType, op, true, nil, email, nil)

	var message string
	if payload != nil {
		message = payload.Message
	}
	return &VerifyResult{Message: message}, nil
}
