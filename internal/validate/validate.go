// Package validate provides the pure field validators used by the wizard
// forms and the row table editors.
//
// Every validator is a stateless predicate with no side effects. Row-level
// checks compose the field predicates and report the offending fields by
// name so callers can flag the matching inputs.
package validate

import (
	"strconv"
	"strings"

	"github.com/zedbee/gateway-wizard/internal/document"
)

// IntInRange reports whether v lies within [min, max] inclusive.
func IntInRange(v, min, max int) bool {
	return v >= min && v <= max
}

// NonEmpty reports whether s contains anything besides whitespace.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// OneOf reports whether s is a member of the given option list.
func OneOf(s string, options []string) bool {
	for _, opt := range options {
		if s == opt {
			return true
		}
	}
	return false
}

// OneOfInt reports whether v is a member of the given option list.
func OneOfInt(v int, options []int) bool {
	for _, opt := range options {
		if v == opt {
			return true
		}
	}
	return false
}

// IPv4 reports whether s is a dotted-quad IPv4 address: exactly four
// decimal octets in [0,255] with no leading or trailing garbage.
//
// net.ParseIP is deliberately not used here: it accepts IPv6 and other
// notations the gateway firmware rejects.
func IPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// Port reports whether v is a valid TCP port.
func Port(v int) bool {
	return IntInRange(v, 1, 65535)
}

// RTU row field names, used as keys in the invalid-field set.
const (
	FieldSlaveID   = "slaveId"
	FieldBaud      = "baud"
	FieldParity    = "parity"
	FieldDataBits  = "dataBits"
	FieldStopBits  = "stopBits"
	FieldFuncCode  = "funcCode"
	FieldSlaveAddr = "slaveAddr"
	FieldQuantity  = "quantity"

	// TCP-only fields
	FieldIP      = "ip"
	FieldPort    = "port"
	FieldGateway = "gateway"
)

// RtuRow validates a single RTU table row and returns the set of invalid
// field names. An empty map means the row is valid.
func RtuRow(row document.RtuRow) map[string]bool {
	invalid := map[string]bool{}

	if !IntInRange(row.SlaveID, 1, 247) {
		invalid[FieldSlaveID] = true
	}
	if !OneOf(row.Baud, document.BaudRates) {
		invalid[FieldBaud] = true
	}
	if !OneOf(row.Parity, document.ParityOptions) {
		invalid[FieldParity] = true
	}
	if !OneOf(row.DataBits, document.DataBitsOptions) {
		invalid[FieldDataBits] = true
	}
	if !OneOf(row.StopBits, document.StopBitsOptions) {
		invalid[FieldStopBits] = true
	}
	if !OneOfInt(row.FuncCode, document.FuncCodes) {
		invalid[FieldFuncCode] = true
	}
	if !NonEmpty(row.SlaveAddr) {
		invalid[FieldSlaveAddr] = true
	}
	if !NonEmpty(row.Quantity) {
		invalid[FieldQuantity] = true
	}

	return invalid
}

// TcpRow validates a single TCP table row and returns the set of invalid
// field names. An empty map means the row is valid.
func TcpRow(row document.TcpRow) map[string]bool {
	invalid := map[string]bool{}

	if !IPv4(row.IP) {
		invalid[FieldIP] = true
	}
	if !Port(row.Port) {
		invalid[FieldPort] = true
	}
	if !IPv4(row.Gateway) {
		invalid[FieldGateway] = true
	}
	if !OneOfInt(row.FuncCode, document.FuncCodes) {
		invalid[FieldFuncCode] = true
	}
	if !IntInRange(row.SlaveID, 0, 255) {
		invalid[FieldSlaveID] = true
	}
	if !NonEmpty(row.SlaveAddr) {
		invalid[FieldSlaveAddr] = true
	}
	if !NonEmpty(row.Quantity) {
		invalid[FieldQuantity] = true
	}

	return invalid
}
