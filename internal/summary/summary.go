// Package summary derives read-only, human-readable views of the committed
// configuration document for the home page and section summaries.
package summary

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/zedbee/gateway-wizard/internal/document"
)

// sectionCount is the number of wizard sections tracked on the home page.
const sectionCount = 3

// Completion describes overall setup progress.
type Completion struct {
	Done  int
	Total int
	Label string
}

// String renders the "N/3" counter shown on the home page.
func (c Completion) String() string {
	return fmt.Sprintf("%d/%d", c.Done, c.Total)
}

// DeviceDone reports whether the device section is committed.
func DeviceDone(cfg document.Config) bool {
	return cfg.Device.Type != "" && cfg.Device.Manufacturer != ""
}

// ProtocolDone reports whether a protocol table has been saved. Mode stays
// empty until the first table save, so a freshly seeded editor does not
// count.
func ProtocolDone(cfg document.Config) bool {
	return cfg.Protocol.Mode != ""
}

// ConnectionsDone reports whether the MQTT flow reached device ID entry.
func ConnectionsDone(cfg document.Config) bool {
	return cfg.Connections.MQTT.DeviceID != ""
}

// Status computes the setup progress across the three sections.
func Status(cfg document.Config) Completion {
	done := 0
	for _, committed := range []bool{DeviceDone(cfg), ProtocolDone(cfg), ConnectionsDone(cfg)} {
		if committed {
			done++
		}
	}

	label := "In Progress"
	switch done {
	case 0:
		label = "Not Started"
	case sectionCount:
		label = "Complete"
	}
	return Completion{Done: done, Total: sectionCount, Label: label}
}

// Device renders the committed device section as a two-column grid.
// Uncommitted fields show a dash.
func Device(cfg document.Config) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"Device Type", orDash(document.DeviceTypeLabel(cfg.Device.Type))})
	t.AppendRow(table.Row{"Manufacturer", orDash(cfg.Device.Manufacturer)})
	return t.Render()
}

// Protocol renders the authoritative protocol table. The saved mode decides
// which table is shown; an empty mode renders a placeholder.
func Protocol(cfg document.Config) string {
	switch cfg.Protocol.Mode {
	case document.ModeRTU:
		return rtuTable(cfg.Protocol.RtuRows)
	case document.ModeTCP:
		return tcpTable(cfg.Protocol.TcpRows)
	default:
		return "No protocol configured"
	}
}

func rtuTable(rows []document.RtuRow) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Slave ID", "Baud", "Parity", "Data Bits", "Stop Bits", "Func", "Address", "Qty"})
	for i, row := range rows {
		t.AppendRow(table.Row{
			i + 1, row.SlaveID, row.Baud, row.Parity, row.DataBits,
			row.StopBits, row.FuncCode, row.SlaveAddr, row.Quantity,
		})
	}
	return t.Render()
}

func tcpTable(rows []document.TcpRow) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "IP", "Port", "Gateway", "Func", "Slave ID", "Address", "Qty"})
	for i, row := range rows {
		t.AppendRow(table.Row{
			i + 1, row.IP, row.Port, row.Gateway,
			row.FuncCode, row.SlaveID, row.SlaveAddr, row.Quantity,
		})
	}
	return t.Render()
}

// Connections renders the uplink section. Broker credentials are shown
// without the password.
func Connections(cfg document.Config) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	mqtt := cfg.Connections.MQTT
	t.AppendRow(table.Row{"Active Tab", orDash(cfg.Connections.ActiveTab)})
	t.AppendRow(table.Row{"WiFi SSID", orDash(cfg.Connections.WiFi.SSID)})
	t.AppendRow(table.Row{"WiFi Mode", orDash(cfg.Connections.WiFi.NetType)})
	t.AppendRow(table.Row{"Platform", orDash(mqtt.Platform)})
	t.AppendRow(table.Row{"Environment", orDash(mqtt.PlatformType)})
	t.AppendRow(table.Row{"Broker", orDash(mqtt.Broker.URL)})
	t.AppendRow(table.Row{"Device ID", orDash(mqtt.DeviceID)})
	t.AppendRow(table.Row{"Publish Topic", orDash(mqtt.Topics.Pub)})
	t.AppendRow(table.Row{"Subscribe Topic", orDash(mqtt.Topics.Sub)})
	t.AppendRow(table.Row{"Ack Topic", orDash(mqtt.Topics.Ack)})
	return t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
