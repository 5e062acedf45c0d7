package server

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/logging"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
)

// CollectSystemInfo gathers the local telemetry snapshot. Individual
// probe failures degrade to zero values rather than failing the request.
func CollectSystemInfo() *telemetry.SystemInfo {
	info := &telemetry.SystemInfo{OS: runtime.GOOS}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	} else if err != nil {
		logging.Debug("Failed to read CPU usage", zap.Error(err))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAMPercent = vm.UsedPercent
		info.RAMUsed = vm.Used
		info.RAMTotal = vm.Total
	} else {
		logging.Debug("Failed to read memory usage", zap.Error(err))
	}

	if usage, err := disk.Usage("/"); err == nil {
		info.DiskPercent = usage.UsedPercent
	} else {
		logging.Debug("Failed to read disk usage", zap.Error(err))
	}

	if uptime, err := host.Uptime(); err == nil {
		info.UptimeMinutes = int64(uptime / 60)
		bootTime := time.Now().Add(-time.Duration(uptime) * time.Second)
		info.LastReboot = bootTime.Format("2006-01-02 15:04:05")
	} else {
		logging.Debug("Failed to read uptime", zap.Error(err))
	}

	if counters, err := gopsnet.IOCounters(false); err == nil && len(counters) > 0 {
		info.NetSent = counters[0].BytesSent
		info.NetRecv = counters[0].BytesRecv
	} else if err != nil {
		logging.Debug("Failed to read network counters", zap.Error(err))
	}

	return info
}
