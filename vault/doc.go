// Package vault provides refresh-token persistence adapters implementing the
// ciudadauth TokenVault interface.
//
// [Memory] keeps the token for the process lifetime only; [Redis] persists it
// under a namespaced key with an optional TTL, for deployments where the
// client runtime shares a Redis instance (kiosks, the staff web terminal).
//
// The store treats every vault failure as non-fatal, so adapters should
// return errors rather than retrying internally.
package vault
