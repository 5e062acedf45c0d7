package validate

import (
	"testing"

	"github.com/zedbee/gateway-wizard/internal/document"
)

// TestIPv4 tests the dotted-quad syntax check
func TestIPv4(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"Valid: private address", "192.168.1.1", true},
		{"Valid: all zeros", "0.0.0.0", true},
		{"Valid: broadcast", "255.255.255.255", true},
		{"Valid: single digits", "1.2.3.4", true},
		{"Invalid: octet over 255", "256.1.1.1", false},
		{"Invalid: three octets", "1.2.3", false},
		{"Invalid: five octets", "1.2.3.4.5", false},
		{"Invalid: letters", "abc.def.gh.i", false},
		{"Invalid: empty", "", false},
		{"Invalid: trailing dot", "1.2.3.4.", false},
		{"Invalid: leading garbage", " 1.2.3.4", false},
		{"Invalid: embedded sign", "1.2.3.-4", false},
		{"Invalid: octet too wide", "0001.2.3.4", false},
		{"Invalid: empty octet", "1..2.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IPv4(tt.ip); got != tt.want {
				t.Errorf("IPv4(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestIntInRange(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max int
		want        bool
	}{
		{"At lower bound", 1, 1, 247, true},
		{"At upper bound", 247, 1, 247, true},
		{"Below range", 0, 1, 247, false},
		{"Above range", 248, 1, 247, false},
		{"Zero allowed for TCP slave", 0, 0, 255, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntInRange(tt.v, tt.min, tt.max); got != tt.want {
				t.Errorf("IntInRange(%d, %d, %d) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"Plain text", "0000", true},
		{"Empty", "", false},
		{"Whitespace only", "   ", false},
		{"Tabs and newlines", "\t\n", false},
		{"Padded value still counts", "  40001  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NonEmpty(tt.s); got != tt.want {
				t.Errorf("NonEmpty(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	if !OneOf("9600", document.BaudRates) {
		t.Error("9600 should be a valid baud rate")
	}
	if OneOf("14400", document.BaudRates) {
		t.Error("14400 is not a supported baud rate")
	}
	if !OneOfInt(15, document.FuncCodes) {
		t.Error("function code 15 should be valid")
	}
	if OneOfInt(7, document.FuncCodes) {
		t.Error("function code 7 is not supported")
	}
}

// TestRtuRow tests row-level validation with field marking
func TestRtuRow(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*document.RtuRow)
		wantInvalid []string
	}{
		{
			name:        "Default row is valid",
			mutate:      func(r *document.RtuRow) {},
			wantInvalid: nil,
		},
		{
			name:        "Slave ID below range",
			mutate:      func(r *document.RtuRow) { r.SlaveID = 0 },
			wantInvalid: []string{FieldSlaveID},
		},
		{
			name:        "Slave ID above range",
			mutate:      func(r *document.RtuRow) { r.SlaveID = 248 },
			wantInvalid: []string{FieldSlaveID},
		},
		{
			name:        "Unsupported baud",
			mutate:      func(r *document.RtuRow) { r.Baud = "600" },
			wantInvalid: []string{FieldBaud},
		},
		{
			name:        "Empty selections",
			mutate:      func(r *document.RtuRow) { r.Parity = ""; r.StopBits = "" },
			wantInvalid: []string{FieldParity, FieldStopBits},
		},
		{
			name:        "Blank address and quantity",
			mutate:      func(r *document.RtuRow) { r.SlaveAddr = "  "; r.Quantity = "" },
			wantInvalid: []string{FieldSlaveAddr, FieldQuantity},
		},
		{
			name:        "Bad function code",
			mutate:      func(r *document.RtuRow) { r.FuncCode = 16 },
			wantInvalid: []string{FieldFuncCode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := document.DefaultRtuRow()
			tt.mutate(&row)

			invalid := RtuRow(row)
			if len(invalid) != len(tt.wantInvalid) {
				t.Fatalf("RtuRow() marked %v, want %v", invalid, tt.wantInvalid)
			}
			for _, field := range tt.wantInvalid {
				if !invalid[field] {
					t.Errorf("field %q should be marked invalid, got %v", field, invalid)
				}
			}
		})
	}
}

// TestTcpRow tests row-level validation with field marking
func TestTcpRow(t *testing.T) {
	valid := document.TcpRow{
		IP:        "10.0.0.2",
		Port:      502,
		Gateway:   "10.0.0.1",
		FuncCode:  3,
		SlaveID:   1,
		SlaveAddr: "0000",
		Quantity:  "4",
	}

	tests := []struct {
		name        string
		mutate      func(*document.TcpRow)
		wantInvalid []string
	}{
		{
			name:        "Fully valid row",
			mutate:      func(r *document.TcpRow) {},
			wantInvalid: nil,
		},
		{
			name:        "Default row invalid only on IP",
			mutate:      func(r *document.TcpRow) { *r = document.DefaultTcpRow() },
			wantInvalid: []string{FieldIP},
		},
		{
			name:        "Bad gateway syntax",
			mutate:      func(r *document.TcpRow) { r.Gateway = "300.0.0.1" },
			wantInvalid: []string{FieldGateway},
		},
		{
			name:        "Port out of range",
			mutate:      func(r *document.TcpRow) { r.Port = 0 },
			wantInvalid: []string{FieldPort},
		},
		{
			name:        "Port above range",
			mutate:      func(r *document.TcpRow) { r.Port = 65536 },
			wantInvalid: []string{FieldPort},
		},
		{
			name:        "Slave ID zero is valid for TCP",
			mutate:      func(r *document.TcpRow) { r.SlaveID = 0 },
			wantInvalid: nil,
		},
		{
			name:        "Slave ID above 255",
			mutate:      func(r *document.TcpRow) { r.SlaveID = 256 },
			wantInvalid: []string{FieldSlaveID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid
			tt.mutate(&row)

			invalid := TcpRow(row)
			if len(invalid) != len(tt.wantInvalid) {
				t.Fatalf("TcpRow() marked %v, want %v", invalid, tt.wantInvalid)
			}
			for _, field := range tt.wantInvalid {
				if !invalid[field] {
					t.Errorf("field %q should be marked invalid, got %v", field, invalid)
				}
			}
		})
	}
}
