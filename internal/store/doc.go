// Package store provides local-first persistence for the configuration
// document.
//
// The store keeps the document in memory, writes it synchronously to a
// state file under the user's config directory on every mutation, and
// mirrors it to the gateway backend opportunistically. The remote mirror is
// an eventually-consistent write with no acknowledgment guarantee: sync
// calls are fire-and-forget, may arrive out of order, and the last arriving
// write wins. This is an accepted data-loss risk window; the local file is
// always the source of truth.
//
// Two files are managed:
//   - state.json: the full document plus the session user
//   - token: the bearer token for the backend session
//
// The store never validates: section controllers validate before mutating.
package store
