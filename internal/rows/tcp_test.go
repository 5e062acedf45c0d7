package rows

import (
	"errors"
	"testing"

	"github.com/zedbee/gateway-wizard/internal/document"
)

func validTcpRow() document.TcpRow {
	return document.TcpRow{
		IP:        "192.168.1.50",
		Port:      502,
		Gateway:   "192.168.1.1",
		FuncCode:  3,
		SlaveID:   1,
		SlaveAddr: "0000",
		Quantity:  "2",
	}
}

func TestTcpEditorFreshRowIsInvalid(t *testing.T) {
	e := NewTcpEditor(nil)
	i := e.Add()

	ok, err := e.ValidateRow(i)
	if err != nil {
		t.Fatalf("ValidateRow() error = %v", err)
	}
	if ok {
		t.Error("freshly added TCP row should be invalid (empty IP)")
	}
	if !e.InvalidFields(i)["ip"] {
		t.Errorf("InvalidFields() = %v, want ip flagged", e.InvalidFields(i))
	}
}

func TestTcpEditorSaveAllValid(t *testing.T) {
	e := NewTcpEditor(nil)
	e.AddRow(validTcpRow())

	second := validTcpRow()
	second.IP = "192.168.1.51"
	second.SlaveID = 0 // zero is valid for TCP
	e.AddRow(second)

	rows, err := e.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Save() returned %d rows, want 2", len(rows))
	}
}

func TestTcpEditorSaveRejectsWhole(t *testing.T) {
	e := NewTcpEditor(nil)

	bad := validTcpRow()
	bad.IP = "256.1.1.1"
	bad.Port = 0
	e.AddRow(bad)
	e.AddRow(validTcpRow())

	rows, err := e.Save()
	if rows != nil {
		t.Errorf("Save() returned rows despite invalid table: %v", rows)
	}

	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("Save() error = %v, want *SaveError", err)
	}
	if saveErr.Number != 1 {
		t.Errorf("SaveError.Number = %d, want 1", saveErr.Number)
	}
	if len(saveErr.Fields) != 2 || saveErr.Fields[0] != "ip" || saveErr.Fields[1] != "port" {
		t.Errorf("SaveError.Fields = %v, want [ip port] in column order", saveErr.Fields)
	}
}

func TestTcpEditorSaveEmptyTable(t *testing.T) {
	e := NewTcpEditor(nil)

	rows, err := e.Save()
	if err != nil {
		t.Fatalf("Save() on empty table error = %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("Save() on empty table = %v, want empty non-nil sequence", rows)
	}
}

func TestTcpEditorRenumberAfterDelete(t *testing.T) {
	e := NewTcpEditor(nil)
	for i := 0; i < 3; i++ {
		row := validTcpRow()
		row.SlaveAddr = string(rune('a' + i))
		e.AddRow(row)
	}

	if err := e.Remove(1); err != nil {
		t.Fatalf("Remove(1) error = %v", err)
	}

	rows := e.Rows()
	if len(rows) != 2 {
		t.Fatalf("Len() = %d, want 2", len(rows))
	}
	if rows[0].SlaveAddr != "a" || rows[1].SlaveAddr != "c" {
		t.Errorf("rows after delete = [%s, %s], want [a, c]", rows[0].SlaveAddr, rows[1].SlaveAddr)
	}
	if e.Number(1) != 2 {
		t.Errorf("Number(1) = %d, want 2", e.Number(1))
	}
}

func TestTcpEditorSetRevalidates(t *testing.T) {
	e := NewTcpEditor(nil)
	i := e.Add()

	row, _ := e.Row(i)
	row.IP = "10.1.2.3"
	if err := e.Set(i, row); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ok, err := e.ValidateRow(i)
	if err != nil {
		t.Fatalf("ValidateRow() error = %v", err)
	}
	if !ok {
		t.Errorf("row should be valid after filling IP, marks = %v", e.InvalidFields(i))
	}
}
