package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/router"
	"github.com/zedbee/gateway-wizard/internal/rows"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
	"github.com/zedbee/gateway-wizard/internal/wizard"
)

// ---- home -----------------------------------------------------------------

type homeEntry struct {
	label string
	view  router.View
}

var homeMenu = []homeEntry{
	{"Device Setup", router.ViewDevice},
	{"Protocol Setup", router.ViewProtocol},
	{"Connections", router.ViewConnections},
	{"System Info", router.ViewSystemInfo},
	{"Settings", router.ViewSettings},
}

func (m Model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.menu > 0 {
			m.menu--
		}
	case "down", "j":
		if m.menu < len(homeMenu)-1 {
			m.menu++
		}
	case "enter":
		return m, m.navigate(homeMenu[m.menu].view)
	case "ctrl+l":
		m.session.Logout()
		return m, m.navigate(router.ViewLogin)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewHome() string {
	page := m.router.Home()

	var b strings.Builder
	b.WriteString(RenderHeader(m.width))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s    %s %s\n\n",
		LabelStyle.Render("User:"), ValueStyle.Render(page.Username),
		LabelStyle.Render("Setup:"),
		ValueStyle.Render(fmt.Sprintf("%s (%s)", page.Completion.String(), page.Completion.Label))))

	for i, entry := range homeMenu {
		cursor := "  "
		style := MenuItemStyle
		if i == m.menu {
			cursor = "> "
			style = SelectedMenuItemStyle
		}
		b.WriteString("  " + cursor + style.Render(entry.label) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(SubtitleStyle.Render("Current configuration"))
	b.WriteString("\n")
	b.WriteString(indent(page.Device))
	b.WriteString(indent(page.Protocol))
	b.WriteString(indent(page.Connection))
	b.WriteString("\n")

	if s := m.statusLine(); s != "" {
		b.WriteString("  " + s + "\n")
	}
	b.WriteString(HelpStyle.Render("  up/down move · enter open · ctrl+l log out · q quit"))
	return b.String()
}

func indent(block string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// ---- device ---------------------------------------------------------------

func (m Model) updateDevice(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	options := m.deviceOptions()

	switch key.String() {
	case "up", "k":
		if m.menu > 0 {
			m.menu--
		}
	case "down", "j":
		if m.menu < len(options)-1 {
			m.menu++
		}
	case "enter":
		if len(options) == 0 {
			return m, nil
		}
		m.errMsg = ""
		switch m.device.Step() {
		case wizard.DeviceStepSelectType:
			if err := m.device.SelectType(options[m.menu]); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			if err := m.device.Next(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.menu = 0
		case wizard.DeviceStepSelectManufacturer:
			if err := m.device.SelectManufacturer(options[m.menu]); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			if err := m.device.Commit(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.infoMsg = "Device configuration saved"
		}
	case "esc":
		if m.device.Step() == wizard.DeviceStepSelectManufacturer {
			m.device.Back()
			m.menu = 0
			m.errMsg = ""
			return m, nil
		}
		return m, m.navigate(router.ViewHome)
	}
	return m, nil
}

// deviceOptions returns the choices for the current device step.
func (m Model) deviceOptions() []string {
	switch m.device.Step() {
	case wizard.DeviceStepSelectType:
		return document.DeviceTypes()
	case wizard.DeviceStepSelectManufacturer:
		return m.device.Options()
	}
	return nil
}

func (m Model) viewDevice() string {
	var b strings.Builder
	b.WriteString(RenderHeader(m.width))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Device Setup"))
	b.WriteString("\n\n")

	switch m.device.Step() {
	case wizard.DeviceStepSelectType:
		b.WriteString("  " + LabelStyle.Render("Select device type") + "\n\n")
		for i, dt := range document.DeviceTypes() {
			b.WriteString(menuLine(i == m.menu, document.DeviceTypeLabel(dt)))
		}
	case wizard.DeviceStepSelectManufacturer:
		b.WriteString(fmt.Sprintf("  %s %s\n\n",
			LabelStyle.Render("Device type:"),
			ValueStyle.Render(document.DeviceTypeLabel(m.device.DeviceType()))))
		b.WriteString("  " + LabelStyle.Render("Select manufacturer") + "\n\n")
		for i, mf := range m.device.Options() {
			b.WriteString(menuLine(i == m.menu, mf))
		}
	case wizard.DeviceStepCommitted:
		b.WriteString("  " + SuccessStyle.Render("Device configuration saved") + "\n")
		b.WriteString(fmt.Sprintf("  %s %s, %s\n",
			LabelStyle.Render("Selected:"),
			ValueStyle.Render(document.DeviceTypeLabel(m.device.DeviceType())),
			ValueStyle.Render(m.device.Manufacturer())))
	}
	b.WriteString("\n")

	if s := m.statusLine(); s != "" {
		b.WriteString("  " + s + "\n\n")
	}
	b.WriteString(HelpStyle.Render("  up/down move · enter select · esc back"))
	return b.String()
}

func menuLine(selected bool, label string) string {
	if selected {
		return "  > " + SelectedMenuItemStyle.Render(label) + "\n"
	}
	return "    " + MenuItemStyle.Render(label) + "\n"
}

// ---- protocol -------------------------------------------------------------

var (
	rtuFields = []string{"Slave ID", "Baud", "Parity", "Data bits", "Stop bits", "Func code", "Slave address", "Quantity"}
	tcpFields = []string{"IP", "Port", "Gateway", "Func code", "Slave ID", "Slave address", "Quantity"}
)

// rowEditState walks one row field by field. Values are edited as strings
// and parsed back into the row when the last field is confirmed.
type rowEditState struct {
	table  wizard.ProtocolView
	rowIdx int
	field  int
	fields []string
	values []string
	input  textinput.Model
}

func newRowEdit(table wizard.ProtocolView, rowIdx int, values []string) *rowEditState {
	e := &rowEditState{
		table:  table,
		rowIdx: rowIdx,
		values: values,
	}
	if table == wizard.ProtocolViewRTU {
		e.fields = rtuFields
	} else {
		e.fields = tcpFields
	}
	e.input = newInput("", false)
	e.input.SetValue(values[0])
	e.input.Focus()
	return e
}

func rtuValues(r document.RtuRow) []string {
	return []string{
		strconv.Itoa(r.SlaveID), r.Baud, r.Parity, r.DataBits, r.StopBits,
		strconv.Itoa(r.FuncCode), r.SlaveAddr, r.Quantity,
	}
}

func tcpValues(r document.TcpRow) []string {
	return []string{
		r.IP, strconv.Itoa(r.Port), r.Gateway,
		strconv.Itoa(r.FuncCode), strconv.Itoa(r.SlaveID), r.SlaveAddr, r.Quantity,
	}
}

func rtuFromValues(v []string) document.RtuRow {
	slaveID, _ := strconv.Atoi(strings.TrimSpace(v[0]))
	funcCode, _ := strconv.Atoi(strings.TrimSpace(v[5]))
	return document.RtuRow{
		SlaveID:   slaveID,
		Baud:      strings.TrimSpace(v[1]),
		Parity:    strings.TrimSpace(v[2]),
		DataBits:  strings.TrimSpace(v[3]),
		StopBits:  strings.TrimSpace(v[4]),
		FuncCode:  funcCode,
		SlaveAddr: strings.TrimSpace(v[6]),
		Quantity:  strings.TrimSpace(v[7]),
	}
}

func tcpFromValues(v []string) document.TcpRow {
	port, _ := strconv.Atoi(strings.TrimSpace(v[1]))
	funcCode, _ := strconv.Atoi(strings.TrimSpace(v[3]))
	slaveID, _ := strconv.Atoi(strings.TrimSpace(v[4]))
	return document.TcpRow{
		IP:        strings.TrimSpace(v[0]),
		Port:      port,
		Gateway:   strings.TrimSpace(v[2]),
		FuncCode:  funcCode,
		SlaveID:   slaveID,
		SlaveAddr: strings.TrimSpace(v[5]),
		Quantity:  strings.TrimSpace(v[6]),
	}
}

func (m Model) updateProtocol(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.rowEdit != nil {
		return m.updateRowEdit(msg)
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.protocol.View() == wizard.ProtocolViewSelect {
		switch key.String() {
		case "up", "k":
			if m.menu > 0 {
				m.menu--
			}
		case "down", "j":
			if m.menu < 1 {
				m.menu++
			}
		case "enter":
			if m.menu == 0 {
				m.protocol.Show(wizard.ProtocolViewRTU)
			} else {
				m.protocol.Show(wizard.ProtocolViewTCP)
			}
			m.menu = 0
		case "esc":
			return m, m.navigate(router.ViewHome)
		}
		return m, nil
	}

	rowCount := m.protocolRowCount()
	switch key.String() {
	case "up", "k":
		if m.menu > 0 {
			m.menu--
		}
	case "down", "j":
		if m.menu < rowCount-1 {
			m.menu++
		}
	case "a":
		m.errMsg = ""
		if m.protocol.View() == wizard.ProtocolViewRTU {
			m.menu = m.protocol.RTU.Add()
		} else {
			m.menu = m.protocol.TCP.Add()
		}
	case "d":
		m.errMsg = ""
		var err error
		if m.protocol.View() == wizard.ProtocolViewRTU {
			err = m.protocol.RTU.Remove(m.menu)
		} else {
			err = m.protocol.TCP.Remove(m.menu)
		}
		if err != nil {
			m.errMsg = err.Error()
		} else if m.menu > 0 {
			m.menu--
		}
	case "enter":
		m.errMsg = ""
		if m.protocol.View() == wizard.ProtocolViewRTU {
			row, err := m.protocol.RTU.Row(m.menu)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.rowEdit = newRowEdit(wizard.ProtocolViewRTU, m.menu, rtuValues(row))
		} else {
			row, err := m.protocol.TCP.Row(m.menu)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.rowEdit = newRowEdit(wizard.ProtocolViewTCP, m.menu, tcpValues(row))
		}
	case "ctrl+s":
		m.errMsg = ""
		var err error
		if m.protocol.View() == wizard.ProtocolViewRTU {
			err = m.protocol.SaveRTU()
		} else {
			err = m.protocol.SaveTCP()
		}
		var saveErr *rows.SaveError
		switch {
		case errors.As(err, &saveErr):
			m.errMsg = fmt.Sprintf("Row %d is invalid: %s", saveErr.Number, strings.Join(saveErr.Fields, ", "))
		case err != nil:
			m.errMsg = err.Error()
		default:
			m.infoMsg = "Protocol configuration saved"
		}
	case "esc":
		m.protocol.Show(wizard.ProtocolViewSelect)
		m.menu = 0
		m.errMsg = ""
	}
	return m, nil
}

func (m Model) protocolRowCount() int {
	if m.protocol.View() == wizard.ProtocolViewRTU {
		return m.protocol.RTU.Len()
	}
	return m.protocol.TCP.Len()
}

func (m Model) updateRowEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.rowEdit.input, cmd = m.rowEdit.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "enter":
		e := m.rowEdit
		e.values[e.field] = e.input.Value()
		if e.field < len(e.fields)-1 {
			e.field++
			e.input.SetValue(e.values[e.field])
			e.input.CursorEnd()
			return m, nil
		}
		var err error
		if e.table == wizard.ProtocolViewRTU {
			err = m.protocol.RTU.Set(e.rowIdx, rtuFromValues(e.values))
		} else {
			err = m.protocol.TCP.Set(e.rowIdx, tcpFromValues(e.values))
		}
		if err != nil {
			m.errMsg = err.Error()
		}
		m.rowEdit = nil
		return m, nil
	case "esc":
		m.rowEdit = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.rowEdit.input, cmd = m.rowEdit.input.Update(msg)
	return m, cmd
}

func (m Model) viewProtocol() string {
	var b strings.Builder
	b.WriteString(RenderHeader(m.width))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Protocol Setup"))
	b.WriteString("\n\n")

	if m.protocol.View() == wizard.ProtocolViewSelect {
		b.WriteString("  " + LabelStyle.Render("Select protocol") + "\n\n")
		b.WriteString(menuLine(m.menu == 0, "Modbus RTU (serial)"))
		b.WriteString(menuLine(m.menu == 1, "Modbus TCP (network)"))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("  up/down move · enter select · esc home"))
		return b.String()
	}

	if m.rowEdit != nil {
		e := m.rowEdit
		b.WriteString(fmt.Sprintf("  %s row %d\n\n", LabelStyle.Render("Editing"), e.rowIdx+1))
		for i, field := range e.fields {
			if i == e.field {
				b.WriteString(fmt.Sprintf("  > %s: %s\n", LabelStyle.Render(field), e.input.View()))
			} else {
				b.WriteString(fmt.Sprintf("    %s: %s\n", LabelStyle.Render(field), ValueStyle.Render(e.values[i])))
			}
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("  enter next field · esc cancel"))
		return b.String()
	}

	if m.protocol.View() == wizard.ProtocolViewRTU {
		b.WriteString("  " + LabelStyle.Render("Modbus RTU entries") + "\n\n")
		for i, row := range m.protocol.RTU.Rows() {
			line := fmt.Sprintf("#%d  slave %d  %s baud  %s  fc%d  addr %s  qty %s",
				i+1, row.SlaveID, orUnset(row.Baud), orUnset(row.Parity), row.FuncCode,
				orUnset(row.SlaveAddr), orUnset(row.Quantity))
			b.WriteString(menuLine(i == m.menu, line))
		}
	} else {
		b.WriteString("  " + LabelStyle.Render("Modbus TCP entries") + "\n\n")
		for i, row := range m.protocol.TCP.Rows() {
			line := fmt.Sprintf("#%d  %s:%d  gw %s  fc%d  slave %d  addr %s  qty %s",
				i+1, orUnset(row.IP), row.Port, orUnset(row.Gateway), row.FuncCode,
				row.SlaveID, orUnset(row.SlaveAddr), orUnset(row.Quantity))
			b.WriteString(menuLine(i == m.menu, line))
		}
	}
	b.WriteString("\n")

	if s := m.statusLine(); s != "" {
		b.WriteString("  " + s + "\n\n")
	}
	b.WriteString(HelpStyle.Render("  enter edit · a add · d delete · ctrl+s save table · esc protocol select"))
	return b.String()
}

func orUnset(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ---- connections ----------------------------------------------------------

// connFormState backs both connection tabs. The input stack is rebuilt
// whenever the tab or MQTT step changes.
type connFormState struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newConnForm(w *wizard.ConnectionsWizard) connFormState {
	if w.Tab() == "http" {
		return newWiFiForm(w.WiFi())
	}
	return newMQTTStepForm(w.MQTT)
}

func newWiFiForm(cfg document.WiFiConfig) connFormState {
	f := connFormState{
		labels: []string{"SSID", "Password"},
		inputs: []textinput.Model{
			newInput("network name", false),
			newInput("network password", true),
		},
	}
	f.inputs[0].SetValue(cfg.SSID)
	f.inputs[1].SetValue(cfg.Password)
	f.inputs[0].Focus()
	return f
}

func newMQTTStepForm(w *wizard.MQTTWizard) connFormState {
	cfg := w.Config()
	var f connFormState
	switch w.Step() {
	case wizard.MQTTStepDetails:
		f.labels = []string{"Broker URL", "Username", "Password"}
		f.inputs = []textinput.Model{
			newInput("tcp://host:port", false),
			newInput("broker username", false),
			newInput("broker password", true),
		}
		f.inputs[0].SetValue(cfg.Broker.URL)
		f.inputs[1].SetValue(cfg.Broker.User)
		f.inputs[2].SetValue(cfg.Broker.Pass)
	case wizard.MQTTStepDeviceID:
		f.labels = []string{"Device ID"}
		f.inputs = []textinput.Model{newInput("gateway device id", false)}
		f.inputs[0].SetValue(cfg.DeviceID)
	case wizard.MQTTStepTopics:
		f.labels = []string{"Publish topic", "Subscribe topic", "Ack topic"}
		f.inputs = []textinput.Model{
			newInput("publish topic", false),
			newInput("subscribe topic", false),
			newInput("ack topic", false),
		}
		f.inputs[0].SetValue(cfg.Topics.Pub)
		f.inputs[1].SetValue(cfg.Topics.Sub)
		f.inputs[2].SetValue(cfg.Topics.Ack)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *connFormState) cycle(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *connFormState) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m Model) updateConnections(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.conn.updateInputs(msg)
	}

	// Tab switching works from anywhere in the section.
	if key.String() == "ctrl+t" {
		next := "mqtt"
		if m.conns.Tab() == "mqtt" {
			next = "http"
		}
		if err := m.conns.SwitchTab(next); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.conn = newConnForm(m.conns)
		m.menu = 0
		m.errMsg = ""
		m.infoMsg = ""
		return m, nil
	}

	if m.conns.Tab() == "http" {
		return m.updateWiFiTab(key, msg)
	}
	return m.updateMQTTTab(key, msg)
}

func (m Model) updateWiFiTab(key tea.KeyMsg, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "tab", "down":
		m.conn.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.conn.cycle(-1)
		return m, nil
	case "ctrl+d":
		cfg := m.conns.WiFi()
		if cfg.NetType == document.NetTypeStatic {
			cfg.NetType = document.NetTypeDHCP
		} else {
			cfg.NetType = document.NetTypeStatic
		}
		m.conns.SetWiFi(cfg)
		return m, nil
	case "enter":
		if m.conn.focus < len(m.conn.inputs)-1 {
			m.conn.cycle(1)
			return m, nil
		}
		cfg := m.conns.WiFi()
		cfg.SSID = strings.TrimSpace(m.conn.inputs[0].Value())
		cfg.Password = m.conn.inputs[1].Value()
		m.conns.SetWiFi(cfg)
		if err := m.conns.SaveWiFi(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.infoMsg = "Network configuration saved"
		return m, nil
	case "esc":
		return m, m.navigate(router.ViewHome)
	}
	return m, m.conn.updateInputs(msg)
}

func (m Model) updateMQTTTab(key tea.KeyMsg, msg tea.Msg) (tea.Model, tea.Cmd) {
	w := m.conns.MQTT

	switch w.Step() {
	case wizard.MQTTStepPlatform:
		switch key.String() {
		case "up", "k":
			if m.menu > 0 {
				m.menu--
			}
		case "down", "j":
			if m.menu < len(document.Platforms)-1 {
				m.menu++
			}
		case "enter":
			if err := w.SelectPlatform(document.Platforms[m.menu]); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.conn = newMQTTStepForm(w)
		case "esc":
			return m, m.navigate(router.ViewHome)
		}
		return m, nil

	case wizard.MQTTStepDetails:
		switch key.String() {
		case "f1", "f2", "f3":
			envs := map[string]string{
				"f1": document.PlatformTypeTesting,
				"f2": document.PlatformTypeProduction,
				"f3": document.PlatformTypeOther,
			}
			if err := w.SetEnvironment(envs[key.String()]); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.conn = newMQTTStepForm(w)
			return m, nil
		case "tab", "down":
			m.conn.cycle(1)
			return m, nil
		case "shift+tab", "up":
			m.conn.cycle(-1)
			return m, nil
		case "enter":
			if m.conn.focus < len(m.conn.inputs)-1 {
				m.conn.cycle(1)
				return m, nil
			}
			err := w.SubmitDetails(
				m.conn.inputs[0].Value(),
				m.conn.inputs[1].Value(),
				m.conn.inputs[2].Value(),
			)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.conn = newMQTTStepForm(w)
			return m, nil
		case "esc":
			w.Back()
			m.menu = 0
			m.conn = newMQTTStepForm(w)
			return m, nil
		}
		return m, m.conn.updateInputs(msg)

	case wizard.MQTTStepDeviceID:
		switch key.String() {
		case "enter":
			if err := w.SubmitDeviceID(m.conn.inputs[0].Value()); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.conn = newMQTTStepForm(w)
			return m, nil
		case "esc":
			w.Back()
			m.conn = newMQTTStepForm(w)
			return m, nil
		}
		return m, m.conn.updateInputs(msg)

	case wizard.MQTTStepTopics:
		switch key.String() {
		case "tab", "down":
			m.conn.cycle(1)
			return m, nil
		case "shift+tab", "up":
			m.conn.cycle(-1)
			return m, nil
		case "enter":
			if m.conn.focus < len(m.conn.inputs)-1 {
				m.conn.cycle(1)
				return m, nil
			}
			err := w.SubmitTopics(document.TopicSet{
				Pub: strings.TrimSpace(m.conn.inputs[0].Value()),
				Sub: strings.TrimSpace(m.conn.inputs[1].Value()),
				Ack: strings.TrimSpace(m.conn.inputs[2].Value()),
			})
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.infoMsg = "MQTT configuration saved"
			return m, nil
		case "esc":
			w.Back()
			m.conn = newMQTTStepForm(w)
			return m, nil
		}
		return m, m.conn.updateInputs(msg)

	case wizard.MQTTStepCommitted:
		switch key.String() {
		case "esc", "enter":
			return m, m.navigate(router.ViewHome)
		}
	}
	return m, nil
}

func (m Model) viewConnections() string {
	var b strings.Builder
	b.WriteString(RenderHeader(m.width))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Connections"))
	b.WriteString("\n\n")

	httpTab, mqttTab := TabStyle, TabStyle
	if m.conns.Tab() == "http" {
		httpTab = ActiveTabStyle
	} else {
		mqttTab = ActiveTabStyle
	}
	b.WriteString("  " + httpTab.Render(" Network ") + " " + mqttTab.Render(" MQTT ") + "\n\n")

	if m.conns.Tab() == "http" {
		b.WriteString(m.viewWiFiTab())
	} else {
		b.WriteString(m.viewMQTTTab())
	}

	if s := m.statusLine(); s != "" {
		b.WriteString("  " + s + "\n\n")
	}
	b.WriteString(HelpStyle.Render("  ctrl+t switch tab · esc back"))
	return b.String()
}

func (m Model) viewWiFiTab() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s\n\n",
		LabelStyle.Render("Addressing:"), ValueStyle.Render(m.conns.WiFi().NetType)))
	for i, in := range m.conn.inputs {
		b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", LabelStyle.Render(m.conn.labels[i]), in.View()))
	}
	b.WriteString(HelpStyle.Render("  ctrl+d toggle dhcp/static · enter save"))
	b.WriteString("\n\n")
	return b.String()
}

func (m Model) viewMQTTTab() string {
	w := m.conns.MQTT
	cfg := w.Config()
	var b strings.Builder

	switch w.Step() {
	case wizard.MQTTStepPlatform:
		b.WriteString("  " + LabelStyle.Render("Step 1 of 4: Select platform") + "\n\n")
		for i, p := range document.Platforms {
			b.WriteString(menuLine(i == m.menu, p))
		}
	case wizard.MQTTStepDetails:
		b.WriteString("  " + LabelStyle.Render("Step 2 of 4: Broker details") + "\n\n")
		b.WriteString(fmt.Sprintf("  %s %s    %s\n\n",
			LabelStyle.Render("Environment:"), ValueStyle.Render(orUnset(cfg.PlatformType)),
			HelpStyle.Render("f1 testing · f2 production · f3 other")))
		for i, in := range m.conn.inputs {
			b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", LabelStyle.Render(m.conn.labels[i]), in.View()))
		}
	case wizard.MQTTStepDeviceID:
		b.WriteString("  " + LabelStyle.Render("Step 3 of 4: Device ID") + "\n\n")
		b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", LabelStyle.Render("Device ID"), m.conn.inputs[0].View()))
	case wizard.MQTTStepTopics:
		b.WriteString("  " + LabelStyle.Render("Step 4 of 4: Topics") + "\n\n")
		for i, in := range m.conn.inputs {
			b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", LabelStyle.Render(m.conn.labels[i]), in.View()))
		}
	case wizard.MQTTStepCommitted:
		b.WriteString("  " + SuccessStyle.Render("MQTT configuration saved") + "\n")
		b.WriteString(fmt.Sprintf("  %s %s on %s\n\n",
			LabelStyle.Render("Device:"), ValueStyle.Render(cfg.DeviceID),
			ValueStyle.Render(cfg.Broker.URL)))
	}
	return b.String()
}

// ---- system info ----------------------------------------------------------

func (m Model) updateSystemInfo(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "q":
		return m, m.navigate(router.ViewHome)
	}
	return m, nil
}

func (m Model) viewSystemInfo() string {
	var b strings.Builder
	b.WriteString(RenderHeader(m.width))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("System Info"))
	b.WriteString("\n\n")

	if m.info == nil {
		b.WriteString("  " + m.spinner.View() + " waiting for gateway...\n\n")
	} else {
		info := m.info
		line := func(label, value string) {
			b.WriteString(fmt.Sprintf("  %-16s %s\n", LabelStyle.Render(label), ValueStyle.Render(value)))
		}
		line("OS", info.OS)
		line("Hostname", info.Hostname)
		line("CPU", fmt.Sprintf("%.1f%%", info.CPUPercent))
		line("RAM", fmt.Sprintf("%.1f%% (%s of %s)", info.RAMPercent,
			telemetry.FormatBytes(info.RAMUsed), telemetry.FormatBytes(info.RAMTotal)))
		line("Disk", fmt.Sprintf("%.1f%%", info.DiskPercent))
		line("Uptime", telemetry.FormatUptime(info.UptimeMinutes))
		line("Last reboot", info.LastReboot)
		line("Net sent", telemetry.FormatBytes(info.NetSent))
		line("Net received", telemetry.FormatBytes(info.NetRecv))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("  " + ErrorStyle.Render(m.errMsg) + "\n\n")
	}
	b.WriteString(HelpStyle.Render("  refreshes every 3s · esc back"))
	return b.String()
}
