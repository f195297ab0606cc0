// Package ciudadauth implements the client-side session authentication
// lifecycle for the CIUDAD municipal e-services applications: password login,
// phone and email OTP verification, signup, silent session refresh, startup
// bootstrap, and logout, reconciled against a single authoritative session
// record.
//
// The package is designed for concurrent application workloads: Store methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build]. All session mutations flow through one pure reducer under
// the store lock; readers observe the session through [Store.State] snapshots
// or [Store.Subscribe].
//
// # Architecture boundaries
//
// ciudadauth is the public surface. It exposes [Store], [Builder], [Config],
// the [Gateway] and [TokenVault] integration interfaces, and value types
// (SessionState, User, AuditEvent, MetricsSnapshot). HTTP transport lives in
// gateway/, refresh-token persistence adapters in vault/, metric exporters in
// metrics/export/.
//
// # What this package must NOT do
//
//   - Expose the access token to application code. It lives only in
//     [TokenHolder], which signs outbound requests and is otherwise opaque.
//   - Render UI state or make retry decisions. Callers subscribe to
//     [SessionState] and decide when to re-invoke operations.
//   - Mutate SessionState outside the reducer. Every transition is a single
//     atomic replace of the whole record.
package ciudadauth
