// Package document defines the gateway configuration document and its
// static lookup tables.
//
// The root aggregate is Config: one document per authenticated user, covering
// the device selection, the Modbus RTU/TCP polling tables, and the uplink
// (WiFi/MQTT) connection settings. State wraps Config together with the
// session user; it is the exact JSON shape persisted locally and mirrored to
// the gateway backend.
//
// The package also carries the fixed selection tables the wizard forms are
// built from (device types, manufacturer lists, baud rates, function codes)
// and the boodskap platform conventions (broker auto-fill, topic templates).
// It has no behavior beyond pure derivation helpers; validation lives in the
// validate package and persistence in the store package.
package document
