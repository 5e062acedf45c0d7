package rows

import (
	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/validate"
)

// rtuColumnOrder is the table column order, used for error reporting.
var rtuColumnOrder = []string{
	validate.FieldSlaveID,
	validate.FieldBaud,
	validate.FieldParity,
	validate.FieldDataBits,
	validate.FieldStopBits,
	validate.FieldFuncCode,
	validate.FieldSlaveAddr,
	validate.FieldQuantity,
}

// RtuEditor edits the RTU polling table.
type RtuEditor struct {
	rows    []document.RtuRow
	invalid []map[string]bool
}

// NewRtuEditor creates an editor over a copy of the saved rows.
func NewRtuEditor(saved []document.RtuRow) *RtuEditor {
	e := &RtuEditor{
		rows:    append([]document.RtuRow{}, saved...),
		invalid: make([]map[string]bool, len(saved)),
	}
	for i := range e.rows {
		e.validateRow(i)
	}
	return e
}

// Len returns the number of rows in the table.
func (e *RtuEditor) Len() int { return len(e.rows) }

// Rows returns a copy of the current row sequence in display order.
func (e *RtuEditor) Rows() []document.RtuRow {
	return append([]document.RtuRow{}, e.rows...)
}

// Row returns the row at index i.
func (e *RtuEditor) Row(i int) (document.RtuRow, error) {
	if i < 0 || i >= len(e.rows) {
		return document.RtuRow{}, ErrRowOutOfRange
	}
	return e.rows[i], nil
}

// Number returns the 1-based sequence number shown for row i.
// Numbers follow display order and are recomputed on insert and delete.
func (e *RtuEditor) Number(i int) int { return i + 1 }

// Add appends a blank row with Modbus serial defaults applied and returns
// its index.
func (e *RtuEditor) Add() int {
	return e.AddRow(document.DefaultRtuRow())
}

// AddRow appends the given row and returns its index.
func (e *RtuEditor) AddRow(row document.RtuRow) int {
	e.rows = append(e.rows, row)
	e.invalid = append(e.invalid, nil)
	i := len(e.rows) - 1
	e.validateRow(i)
	return i
}

// Remove deletes the row at index i. Later rows shift up and renumber.
func (e *RtuEditor) Remove(i int) error {
	if i < 0 || i >= len(e.rows) {
		return ErrRowOutOfRange
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
	e.invalid = append(e.invalid[:i], e.invalid[i+1:]...)
	return nil
}

// Set replaces the row at index i and revalidates it, mirroring per-input
// validation in the table UI.
func (e *RtuEditor) Set(i int, row document.RtuRow) error {
	if i < 0 || i >= len(e.rows) {
		return ErrRowOutOfRange
	}
	e.rows[i] = row
	e.validateRow(i)
	return nil
}

// ValidateRow validates row i, records its invalid fields for flagging, and
// reports whether the row is valid.
func (e *RtuEditor) ValidateRow(i int) (bool, error) {
	if i < 0 || i >= len(e.rows) {
		return false, ErrRowOutOfRange
	}
	return e.validateRow(i), nil
}

func (e *RtuEditor) validateRow(i int) bool {
	marks := validate.RtuRow(e.rows[i])
	e.invalid[i] = marks
	return len(marks) == 0
}

// InvalidFields returns the currently flagged fields of row i, keyed by
// field name. An empty map means the row is valid.
func (e *RtuEditor) InvalidFields(i int) map[string]bool {
	if i < 0 || i >= len(e.invalid) || e.invalid[i] == nil {
		return map[string]bool{}
	}
	return e.invalid[i]
}

// Save validates every row. If all rows are valid it returns the full row
// sequence for the caller to commit; otherwise it rejects the save as a
// whole and surfaces the first failing row. An empty table saves an empty
// sequence.
func (e *RtuEditor) Save() ([]document.RtuRow, error) {
	var firstErr *SaveError
	for i := range e.rows {
		if ok := e.validateRow(i); !ok && firstErr == nil {
			firstErr = &SaveError{
				Number: e.Number(i),
				Fields: orderedFields(e.invalid[i], rtuColumnOrder),
			}
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return e.Rows(), nil
}
