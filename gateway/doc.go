// Package gateway is the HTTP implementation of the ciudadauth [Gateway]
// interface, consuming the CIUDAD authentication REST API.
//
// Each method is a single request/response round trip — no retries, no
// caching. Outbound requests are signed by the store's TokenHolder and tagged
// with an X-Request-ID (caller-supplied via [WithRequestID] or generated).
//
// # What this package must NOT do
//
//   - Interpret session semantics. A non-2xx response becomes a
//     *ciudadauth.APIError; what that does to the session is the store's
//     business.
//   - Read the access token. The signer attaches it; this package never sees
//     the string.
package gateway
