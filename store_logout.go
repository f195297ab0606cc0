package ciudadauth

import "context"

const (
	auditEventLogout             = "logout"
	auditEventLogoutRevokeFailed = "logout_revoke_failed"
)

// Logout forgets the session. The server-side revoke is attempted only when a
// session was actually established, and its failure is logged, never
// propagated: correctness favors a fail-open logout over a wedged "still
// logged in" UI. The access token and persisted refresh token are always
// cleared and the session always resets to Anonymous, so Logout returns nil
// unconditionally. Calling it again while already anonymous is a local no-op
// that issues no network request.
func (s *Store) Logout(ctx context.Context) error {
	if s == nil || s.gateway == nil {
		return nil
	}

	wasAuthenticated := s.State().IsAuthenticated

	epoch := s.beginOp(OpLogout)

	var revokeErr error
	if wasAuthenticated {
		if revokeErr = s.gateway.Logout(ctx); revokeErr != nil {
			s.metricInc(MetricLogoutRevokeFailed)
			s.logger.Warn("logout revoke failed", "error", revokeErr)
			s.emitAudit(ctx, auditEventLogoutRevokeFailed, OpLogout, false, nil, "", revokeErr)
		}
	}

	s.dropCredentials(ctx)
	s.resolveAck(OpLogout, epoch)
	s.metricInc(MetricLogout)
	s.emitAudit(ctx, auditEventLogout, OpLogout, true, nil, "", nil)
	return nil
}
