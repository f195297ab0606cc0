package ciudadauth

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Store owns the session record and orchestrates the nine session
// operations. Construct it through [Builder.Build]; there are no ambient
// singletons, so tests and multi-account tooling can run independent stores
// side by side.
type Store struct {
	config  Config
	gateway Gateway
	vault   TokenVault
	holder  *TokenHolder
	logger  *slog.Logger
	audit   *auditDispatcher
	metrics *Metrics

	mu        sync.Mutex
	state     SessionState
	listeners map[uint64]func(SessionState)
	nextSub   uint64

	epoch atomic.Uint64

	refreshStop   context.CancelFunc
	refreshActive atomic.Bool
}

// State returns a snapshot of the current session record.
func (s *Store) State() SessionState {
	if s == nil {
		return SessionState{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TokenHolder returns the holder that signs outbound requests for this
// store's session. Its contents are not readable; wire it into the gateway
// transport.
func (s *Store) TokenHolder() *TokenHolder {
	if s == nil {
		return nil
	}
	return s.holder
}

// Subscribe registers fn to be called with a state snapshot after every
// applied transition. It returns an unsubscribe function. fn runs outside the
// store lock, on the goroutine that resolved the operation; it must not
// block.
func (s *Store) Subscribe(fn func(SessionState)) func() {
	if s == nil || fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.listeners == nil {
		s.listeners = make(map[uint64]func(SessionState))
	}
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close stops the auto-refresh scheduler and drains the audit dispatcher.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.StopAutoRefresh()
	if s.audit != nil {
		s.audit.Close()
	}
}

// MetricsSnapshot returns a point-in-time copy of all counters and
// histograms. Exporters under metrics/export read from this.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded under
// backpressure.
func (s *Store) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}

// dispatch applies one event through the reducer under the store lock and
// notifies subscribers with the resulting snapshot. Mutation is a single
// replace of the whole record; there is never a partially applied
// transition visible to readers.
func (s *Store) dispatch(ev event) SessionState {
	s.mu.Lock()
	prev := s.state
	stale := ev.phase != phaseStart && ev.epoch != prev.Epoch
	next := reduce(prev, ev)
	s.state = next

	var fns []func(SessionState)
	if next != prev && len(s.listeners) > 0 {
		fns = make([]func(SessionState), 0, len(s.listeners))
		for _, fn := range s.listeners {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	if stale {
		s.metricInc(MetricStaleEventDiscarded)
	}

	for _, fn := range fns {
		fn(next)
	}
	return next
}

// beginOp stamps a new operation epoch and dispatches its Start event. The
// returned epoch must be carried on the operation's resolution event.
func (s *Store) beginOp(op Op) uint64 {
	epoch := s.epoch.Add(1)
	s.dispatch(event{op: op, phase: phaseStart, epoch: epoch})
	return epoch
}

func (s *Store) resolveFailure(op Op, epoch uint64, msg string) {
	s.dispatch(event{op: op, phase: phaseFailure, epoch: epoch, errMsg: msg})
}

func (s *Store) resolveAck(op Op, epoch uint64) {
	s.dispatch(event{op: op, phase: phaseSuccess, epoch: epoch})
}

func (s *Store) resolveCredentialed(op Op, epoch uint64, user *User, refreshToken string) {
	s.dispatch(event{
		op:           op,
		phase:        phaseSuccess,
		epoch:        epoch,
		credentialed: true,
		user:         user,
		refreshToken: refreshToken,
	})
}

func (s *Store) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}

func (s *Store) emitAudit(ctx context.Context, eventType string, op Op, success bool, user *User, email string, opErr error) {
	if s == nil || s.audit == nil {
		return
	}

	ev := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Operation: op.String(),
		Email:     email,
		Success:   success,
	}
	if user != nil {
		ev.AccID = user.AccID
		if ev.Email == "" {
			ev.Email = user.Email
		}
	}
	if opErr != nil {
		ev.Error = opErr.Error()
	}

	s.audit.Emit(ctx, ev)
}

// adoptCredentials runs the side effects shared by every credential-bearing
// success branch: the access token is installed before the success event is
// published, so subscribers reacting to the new state can immediately issue
// authenticated requests; the refresh token is persisted best-effort.
func (s *Store) adoptCredentials(ctx context.Context, payload *CredentialPayload) {
	s.holder.Set(payload.AccessToken)
	if s.vault != nil && payload.RefreshToken != "" {
		if err := s.vault.Save(ctx, payload.RefreshToken); err != nil {
			s.metricInc(MetricVaultFailure)
			s.logger.Warn("refresh token persist failed", "error", err)
		}
	}
}

// dropCredentials clears the access token and the persisted refresh token on
// every transition to logged-out.
func (s *Store) dropCredentials(ctx context.Context) {
	s.holder.Set("")
	if s.vault != nil {
		if err := s.vault.Clear(ctx); err != nil {
			s.metricInc(MetricVaultFailure)
			s.logger.Warn("refresh token clear failed", "error", err)
		}
	}
}
