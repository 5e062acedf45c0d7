// Package logging provides structured logging for the ZedBee setup tools.
//
// This package wraps the zap logger with convenience functions for the
// logging patterns used throughout the wizard client and the gateway
// backend. Logging is silent by default so interactive wizard output stays
// clean; set ZEDBEE_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (sync payloads, poll ticks)
//   - Info: Normal operations (requests, logins, persisted documents)
//   - Warn: Non-fatal issues (remote sync failures, poll errors)
//   - Error: Fatal issues (startup failures, storage errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Configuration persisted",
//	    zap.String("path", statePath),
//	    zap.String("user", username),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
