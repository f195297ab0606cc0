// Package prometheus provides Prometheus rendering for ciudadauth metrics.
//
// [NewPrometheusExporter] accepts a [ciudadauth.Store] and exposes an
// [http.Handler] that renders all session counters and the refresh latency
// histogram in Prometheus text exposition format. Counter names are prefixed
// ciudadauth_*_total; the single histogram is
// ciudadauth_refresh_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate store state.
package prometheus
