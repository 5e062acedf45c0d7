// Package telemetry carries the gateway system metrics shown on the
// system-info page: the wire type, the fixed-interval poller, and a
// websocket watcher for backends that push updates.
package telemetry

import "fmt"

// SystemInfo is the telemetry payload returned by the gateway's
// /system-info endpoint.
type SystemInfo struct {
	OS            string  `json:"os"`
	Hostname      string  `json:"hostname"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	RAMUsed       uint64  `json:"ram_used"`
	RAMTotal      uint64  `json:"ram_total"`
	DiskPercent   float64 `json:"disk_percent"`
	UptimeMinutes int64   `json:"uptime_minutes"`
	LastReboot    string  `json:"last_reboot"`
	NetSent       uint64  `json:"net_sent"`
	NetRecv       uint64  `json:"net_recv"`
}

// FormatUptime renders a minute count as "Xh Ym", dropping the hour part
// for sub-hour uptimes.
func FormatUptime(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
