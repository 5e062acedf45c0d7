package rows

import (
	"fmt"
	"strings"
)

// ErrRowOutOfRange is returned for operations on a row index that does not
// exist in the table.
var ErrRowOutOfRange = fmt.Errorf("row index out of range")

// SaveError reports the first invalid row encountered during a table save.
type SaveError struct {
	// Number is the 1-based sequence number of the failing row.
	Number int
	// Fields are the invalid field names of that row, in table column order.
	Fields []string
}

// Error implements the error interface.
func (e *SaveError) Error() string {
	return fmt.Sprintf("row %d has invalid fields: %s", e.Number, strings.Join(e.Fields, ", "))
}

// orderedFields filters the canonical column order down to the fields
// actually marked invalid, keeping error output deterministic.
func orderedFields(invalid map[string]bool, columnOrder []string) []string {
	fields := make([]string, 0, len(invalid))
	for _, f := range columnOrder {
		if invalid[f] {
			fields = append(fields, f)
		}
	}
	return fields
}
