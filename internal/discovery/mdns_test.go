package discovery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		instance string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name:     "gateway with IPv4",
			instance: "zedbee-a1b2c3",
			entry: &zeroconf.ServiceEntry{
				HostName: "zedbee-a1b2c3.local.",
				Port:     8090,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				Text:     []string{"version=0.3.1", "model=zb-gw1"},
			},
			wantIP:   "192.168.1.50",
			wantPort: 8090,
		},
		{
			name:     "no port advertised defaults to 8090",
			instance: "zedbee-d4e5f6",
			entry: &zeroconf.ServiceEntry{
				HostName: "zedbee-d4e5f6.local",
				Port:     0,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.7")},
			},
			wantIP:   "10.0.0.7",
			wantPort: DefaultPort,
		},
		{
			name:     "IPv6 fallback",
			instance: "zedbee-aaaaaa",
			entry: &zeroconf.ServiceEntry{
				HostName: "zedbee-aaaaaa.local",
				Port:     8090,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 8090,
		},
		{
			name:     "no address at all",
			instance: "zedbee-ghost",
			entry: &zeroconf.ServiceEntry{
				HostName: "zedbee-ghost.local",
				Port:     8090,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.entry.Instance = tt.instance

			gw := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if gw != nil {
					t.Fatalf("parseServiceEntry() = %+v, want nil", gw)
				}
				return
			}
			if gw == nil {
				t.Fatal("parseServiceEntry() = nil")
			}
			if gw.Name != tt.instance {
				t.Errorf("Name = %q, want %q", gw.Name, tt.instance)
			}
			if gw.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", gw.IP, tt.wantIP)
			}
			if gw.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", gw.Port, tt.wantPort)
			}
		})
	}
}

func TestParseServiceEntryMetadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "zedbee-a1b2c3.local",
		Port:     8090,
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
		Text:     []string{"version=0.3.1", "flag"},
	}
	entry.Instance = "zedbee-a1b2c3"

	gw := parseServiceEntry(entry)
	if gw == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if got := gw.GetMetadata("version"); got != "0.3.1" {
		t.Errorf("GetMetadata(version) = %q, want 0.3.1", got)
	}
	if got := gw.GetMetadata("flag"); got != "" {
		t.Errorf("GetMetadata(flag) = %q, want empty value", got)
	}
	if got := gw.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %q, want empty", got)
	}
}

func TestGatewayBaseURL(t *testing.T) {
	gw := &Gateway{IP: "192.168.1.50", Port: 8090}
	if got := gw.BaseURL(); got != "http://192.168.1.50:8090" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestWaitForGatewayReturnsOnCancelledContext(t *testing.T) {
	s := NewScanner()
	s.Timeout = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.WaitForGateway(ctx, "no-such-gateway"); err == nil {
		t.Fatal("WaitForGateway() should error when the gateway never appears")
	}
}
