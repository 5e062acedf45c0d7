// Package server implements the gateway-side backend consumed by the setup
// client: user accounts with bcrypt-hashed passwords and JWT sessions,
// per-user configuration persistence in SQLite, the system telemetry
// endpoint, a websocket telemetry stream, and an mDNS advertisement so
// setup clients can find the gateway.
package server
