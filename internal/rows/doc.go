// Package rows implements the editable Modbus row tables of the protocol
// section.
//
// Each editor owns an ordered row sequence. Display order is insertion
// order; the shown sequence number is the 1-based position, recomputed on
// every insert and delete. Rows are validated independently and invalid
// fields are remembered per row so a UI can flag the matching inputs.
//
// Save is all-or-nothing: if any row is invalid the table is rejected as a
// whole and the first failing row is surfaced. An empty table is vacuously
// valid and saves an empty sequence.
package rows
