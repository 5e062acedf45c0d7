// Package discovery provides mDNS-based discovery of ZedBee gateways.
//
// Gateways advertise themselves on the local network using the
// "_zedbee._tcp" service type. The scanner browses for those
// advertisements and returns the gateways it hears from, including the
// backend base URL to point the setup client at.
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Gateways must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
