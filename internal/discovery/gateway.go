package discovery

import (
	"fmt"
	"time"
)

// Gateway represents a discovered ZedBee gateway on the network.
type Gateway struct {
	// Name is the mDNS instance name (e.g., "zedbee-a1b2c3")
	Name string

	// Hostname is the mDNS hostname (e.g., "zedbee-a1b2c3.local.")
	Hostname string

	// IP is the IPv4 address
	IP string

	// Port is the backend HTTP port
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=0.3.1", "model=zb-gw1"
	Metadata map[string]string

	// DiscoveredAt is when the gateway was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the gateway.
func (g *Gateway) String() string {
	return fmt.Sprintf("ZedBee Gateway %s (%s) at %s:%d", g.Name, g.Hostname, g.IP, g.Port)
}

// BaseURL returns the backend base URL for the gateway.
func (g *Gateway) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", g.IP, g.Port)
}

// GetMetadata retrieves a TXT record value by key, or "" if absent.
func (g *Gateway) GetMetadata(key string) string {
	if g.Metadata == nil {
		return ""
	}
	return g.Metadata[key]
}
