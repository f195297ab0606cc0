package ciudadauth

import (
	"context"
	"time"
)

const (
	auditEventRefreshSuccess   = "refresh_success"
	auditEventRefreshFailure   = "refresh_failure"
	auditEventCheckAuthSuccess = "check_auth_success"
	auditEventCheckAuthAnon    = "check_auth_anonymous"
)

// RefreshSession exchanges the current refresh token for a fresh credential
// set, rotating both tokens. It is the one operation driven by existing state
// rather than caller input: the token comes from [SessionState], falling back
// to the vault. With no token anywhere it fails locally with
// [ErrNoRefreshToken] and never touches the network.
//
// On failure the session resets to Anonymous and [SessionState].Error carries
// the session-expired message — deliberately distinct from a raw transport
// error, so the UI prompts a re-login instead of a retry.
func (s *Store) RefreshSession(ctx context.Context) error {
	if s == nil || s.gateway == nil {
		return ErrStoreNotReady
	}

	epoch := s.beginOp(OpRefresh)
	return s.performRefresh(ctx, OpRefresh, epoch)
}

// CheckAuth is the bootstrap "check auth on app start": invoked exactly once
// when the application launches. With no stored refresh token it
// short-circuits to the quiet Anonymous state without a network call;
// otherwise it delegates entirely to the shared refresh routine and adopts
// its outcome. Failures are silent — a user who has never logged in must see
// a clean anonymous state, not an error banner — so CheckAuth always returns
// nil.
func (s *Store) CheckAuth(ctx context.Context) error {
	if s == nil || s.gateway == nil {
		return nil
	}

	epoch := s.beginOp(OpCheckAuth)
	_ = s.performRefresh(ctx, OpCheckAuth, epoch)
	return nil
}

// performRefresh is the shared silent-refresh routine behind both
// RefreshSession and CheckAuth — a plain internal call, not a re-dispatch
// through the public entry points.
func (s *Store) performRefresh(ctx context.Context, op Op, epoch uint64) error {
	token := s.State().RefreshToken
	if token == "" && s.vault != nil {
		stored, err := s.vault.Load(ctx)
		if err != nil {
			s.metricInc(MetricVaultFailure)
			s.logger.Warn("refresh token load failed", "error", err)
		} else {
			token = stored
		}
	}

	if token == "" {
		s.resolveRefreshFailure(ctx, op, epoch, ErrNoRefreshToken)
		return ErrNoRefreshToken
	}

	started := time.Now()
	payload, err := s.gateway.Refresh(ctx, token)
	s.observeRefreshLatency(time.Since(started))

	if err == nil && !payload.Credentialed() {
		err = ErrResponseShape
	}
	if err != nil {
		s.resolveRefreshFailure(ctx, op, epoch, err)
		if op == OpRefresh {
			return ErrSessionExpired
		}
		return err
	}

	// Rotation: both tokens are replaced, never just the access token. A
	// superseded refresh (a logout or login resolved while it was in flight)
	// must not re-install credentials, so the adoption is epoch-guarded like
	// the state event itself.
	if s.State().Epoch == epoch {
		s.adoptCredentials(ctx, payload)
	}
	s.resolveCredentialed(op, epoch, payload.User, payload.RefreshToken)

	if op == OpCheckAuth {
		s.metricInc(MetricCheckAuthSuccess)
		s.emitAudit(ctx, auditEventCheckAuthSuccess, op, true, payload.User, "", nil)
	} else {
		s.metricInc(MetricRefreshSuccess)
		s.emitAudit(ctx, auditEventRefreshSuccess, op, true, payload.User, "", nil)
	}
	return nil
}

// resolveRefreshFailure concludes a failed silent refresh: the session can no
// longer be recovered, so the access token and the persisted refresh token
// are dropped alongside the state reset. CheckAuth lands in the quiet
// anonymous state; RefreshSession surfaces the session-expired message.
func (s *Store) resolveRefreshFailure(ctx context.Context, op Op, epoch uint64, cause error) {
	// A superseded refresh must not tear down credentials a newer operation
	// installed in the meantime. The reducer discards the stale event by
	// epoch; the teardown side effects are skipped for the same reason.
	if s.State().Epoch == epoch {
		s.dropCredentials(ctx)
	}

	if op == OpCheckAuth {
		s.resolveFailure(op, epoch, "")
		s.metricInc(MetricCheckAuthAnonymous)
		s.emitAudit(ctx, auditEventCheckAuthAnon, op, false, nil, "", cause)
		return
	}

	s.resolveFailure(op, epoch, msgSessionExpired)
	s.metricInc(MetricRefreshFailure)
	s.emitAudit(ctx, auditEventRefreshFailure, op, false, nil, "", cause)
}

func (s *Store) observeRefreshLatency(d time.Duration) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Observe(MetricRefreshLatency, d)
}
