package rows

import (
	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/validate"
)

// tcpColumnOrder is the table column order, used for error reporting.
var tcpColumnOrder = []string{
	validate.FieldIP,
	validate.FieldPort,
	validate.FieldGateway,
	validate.FieldFuncCode,
	validate.FieldSlaveID,
	validate.FieldSlaveAddr,
	validate.FieldQuantity,
}

// TcpEditor edits the TCP polling table.
type TcpEditor struct {
	rows    []document.TcpRow
	invalid []map[string]bool
}

// NewTcpEditor creates an editor over a copy of the saved rows.
func NewTcpEditor(saved []document.TcpRow) *TcpEditor {
	e := &TcpEditor{
		rows:    append([]document.TcpRow{}, saved...),
		invalid: make([]map[string]bool, len(saved)),
	}
	for i := range e.rows {
		e.validateRow(i)
	}
	return e
}

// Len returns the number of rows in the table.
func (e *TcpEditor) Len() int { return len(e.rows) }

// Rows returns a copy of the current row sequence in display order.
func (e *TcpEditor) Rows() []document.TcpRow {
	return append([]document.TcpRow{}, e.rows...)
}

// Row returns the row at index i.
func (e *TcpEditor) Row(i int) (document.TcpRow, error) {
	if i < 0 || i >= len(e.rows) {
		return document.TcpRow{}, ErrRowOutOfRange
	}
	return e.rows[i], nil
}

// Number returns the 1-based sequence number shown for row i.
func (e *TcpEditor) Number(i int) int { return i + 1 }

// Add appends a blank row with table defaults applied and returns its index.
// The IP starts empty, so a freshly added row is invalid until filled in.
func (e *TcpEditor) Add() int {
	return e.AddRow(document.DefaultTcpRow())
}

// AddRow appends the given row and returns its index.
func (e *TcpEditor) AddRow(row document.TcpRow) int {
	e.rows = append(e.rows, row)
	e.invalid = append(e.invalid, nil)
	i := len(e.rows) - 1
	e.validateRow(i)
	return i
}

// Remove deletes the row at index i. Later rows shift up and renumber.
func (e *TcpEditor) Remove(i int) error {
	if i < 0 || i >= len(e.rows) {
		return ErrRowOutOfRange
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
	e.invalid = append(e.invalid[:i], e.invalid[i+1:]...)
	return nil
}

// Set replaces the row at index i and revalidates it.
func (e *TcpEditor) Set(i int, row document.TcpRow) error {
	if i < 0 || i >= len(e.rows) {
		return ErrRowOutOfRange
	}
	e.rows[i] = row
	e.validateRow(i)
	return nil
}

// ValidateRow validates row i, records its invalid fields for flagging, and
// reports whether the row is valid.
func (e *TcpEditor) ValidateRow(i int) (bool, error) {
	if i < 0 || i >= len(e.rows) {
		return false, ErrRowOutOfRange
	}
	return e.validateRow(i), nil
}

func (e *TcpEditor) validateRow(i int) bool {
	marks := validate.TcpRow(e.rows[i])
	e.invalid[i] = marks
	return len(marks) == 0
}

// InvalidFields returns the currently flagged fields of row i.
func (e *TcpEditor) InvalidFields(i int) map[string]bool {
	if i < 0 || i >= len(e.invalid) || e.invalid[i] == nil {
		return map[string]bool{}
	}
	return e.invalid[i]
}

// Save validates every row. If all rows are valid it returns the full row
// sequence for the caller to commit; otherwise it rejects the save as a
// whole and surfaces the first failing row.
func (e *TcpEditor) Save() ([]document.TcpRow, error) {
	var firstErr *SaveError
	for i := range e.rows {
		if ok := e.validateRow(i); !ok && firstErr == nil {
			firstErr = &SaveError{
				Number: e.Number(i),
				Fields: orderedFields(e.invalid[i], tcpColumnOrder),
			}
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return e.Rows(), nil
}
