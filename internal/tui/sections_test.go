package tui

import (
	"reflect"
	"testing"

	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/wizard"
)

func TestRtuValuesRoundTrip(t *testing.T) {
	row := document.RtuRow{
		SlaveID:   12,
		Baud:      "19200",
		Parity:    "Even",
		DataBits:  "8",
		StopBits:  "1",
		FuncCode:  3,
		SlaveAddr: "40001",
		Quantity:  "10",
	}
	got := rtuFromValues(rtuValues(row))
	if !reflect.DeepEqual(got, row) {
		t.Errorf("round trip changed row: got %+v, want %+v", got, row)
	}
}

func TestTcpValuesRoundTrip(t *testing.T) {
	row := document.TcpRow{
		IP:        "192.168.1.40",
		Port:      502,
		Gateway:   "192.168.1.1",
		FuncCode:  4,
		SlaveID:   7,
		SlaveAddr: "30001",
		Quantity:  "2",
	}
	got := tcpFromValues(tcpValues(row))
	if !reflect.DeepEqual(got, row) {
		t.Errorf("round trip changed row: got %+v, want %+v", got, row)
	}
}

func TestRowValuesFromStringsTrimAndParse(t *testing.T) {
	values := []string{" 5 ", "9600", "None", "8", "1", " 3 ", " 40001 ", " 10 "}
	got := rtuFromValues(values)
	want := document.RtuRow{
		SlaveID: 5, Baud: "9600", Parity: "None", DataBits: "8", StopBits: "1",
		FuncCode: 3, SlaveAddr: "40001", Quantity: "10",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNonNumericFieldsParseToZero(t *testing.T) {
	values := []string{"abc", "9600", "None", "8", "1", "xyz", "40001", "10"}
	got := rtuFromValues(values)
	if got.SlaveID != 0 || got.FuncCode != 0 {
		t.Errorf("expected zero for non-numeric fields, got slaveID=%d funcCode=%d",
			got.SlaveID, got.FuncCode)
	}
}

func TestNewRowEditFieldSets(t *testing.T) {
	rtu := newRowEdit(wizard.ProtocolViewRTU, 0, rtuValues(document.DefaultRtuRow()))
	if len(rtu.fields) != len(rtu.values) {
		t.Errorf("rtu fields/values mismatch: %d vs %d", len(rtu.fields), len(rtu.values))
	}
	tcp := newRowEdit(wizard.ProtocolViewTCP, 0, tcpValues(document.DefaultTcpRow()))
	if len(tcp.fields) != len(tcp.values) {
		t.Errorf("tcp fields/values mismatch: %d vs %d", len(tcp.fields), len(tcp.values))
	}
	if rtu.input.Value() != rtuValues(document.DefaultRtuRow())[0] {
		t.Errorf("editor should start on the first field value, got %q", rtu.input.Value())
	}
}
