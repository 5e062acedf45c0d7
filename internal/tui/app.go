// Package tui implements the interactive terminal front end of the setup
// wizard. It renders the UI-agnostic router and wizard state machines with
// the Bubble Tea framework, following the Elm-style Model-Update-View
// pattern.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zedbee/gateway-wizard/internal/api"
	"github.com/zedbee/gateway-wizard/internal/router"
	"github.com/zedbee/gateway-wizard/internal/session"
	"github.com/zedbee/gateway-wizard/internal/store"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
	"github.com/zedbee/gateway-wizard/internal/wizard"
)

// Messages produced by asynchronous commands.
type (
	// authResultMsg reports the outcome of a login/signup/password call.
	authResultMsg struct {
		action string // "login", "signup", "reset", "change-password"
		err    error
	}

	// telemetryMsg delivers one system-info update.
	telemetryMsg telemetry.Update

	// telemetryClosedMsg signals the end of the update stream.
	telemetryClosedMsg struct{}
)

// Model is the top-level application model. It owns the router and the
// three wizard controllers and delegates per-screen behavior based on the
// router's active view.
type Model struct {
	router  *router.Router
	session *session.Manager
	store   *store.Store

	device   *wizard.DeviceWizard
	protocol *wizard.ProtocolWizard
	conns    *wizard.ConnectionsWizard

	width  int
	height int

	errMsg  string
	infoMsg string
	busy    bool

	spinner spinner.Model

	auth    authFormState
	menu    int
	rowEdit *rowEditState
	conn    connFormState

	info        *telemetry.SystemInfo
	telemetryCh <-chan telemetry.Update
}

// NewModel creates the application model. The router decides the initial
// view: a valid stored session lands on home, otherwise login.
func NewModel(rt *router.Router, sess *session.Manager, st *store.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(PrimaryColor)

	m := Model{
		router:  rt,
		session: sess,
		store:   st,
		spinner: sp,
	}
	m.auth = newAuthForm(rt.Current())
	return m
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case authResultMsg:
		return m.handleAuthResult(msg)

	case telemetryMsg:
		if msg.Info != nil {
			m.info = msg.Info
		}
		if msg.Err != nil {
			m.errMsg = api.ShortMessage(msg.Err)
		} else {
			m.errMsg = ""
		}
		return m, waitTelemetry(m.telemetryCh)

	case telemetryClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.router.Current() {
	case router.ViewLogin, router.ViewSignup, router.ViewResetPassword:
		return m.updateAuth(msg)
	case router.ViewHome:
		return m.updateHome(msg)
	case router.ViewDevice:
		return m.updateDevice(msg)
	case router.ViewProtocol:
		return m.updateProtocol(msg)
	case router.ViewConnections:
		return m.updateConnections(msg)
	case router.ViewSettings:
		return m.updateSettings(msg)
	case router.ViewSystemInfo:
		return m.updateSystemInfo(msg)
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	switch m.router.Current() {
	case router.ViewLogin, router.ViewSignup, router.ViewResetPassword:
		return m.viewAuth()
	case router.ViewHome:
		return m.viewHome()
	case router.ViewDevice:
		return m.viewDevice()
	case router.ViewProtocol:
		return m.viewProtocol()
	case router.ViewConnections:
		return m.viewConnections()
	case router.ViewSettings:
		return m.viewSettings()
	case router.ViewSystemInfo:
		return m.viewSystemInfo()
	}
	return ""
}

// navigate switches views through the router and resets per-screen state
// for the view actually entered.
func (m *Model) navigate(target router.View) tea.Cmd {
	entered := m.router.Navigate(context.Background(), target)
	m.errMsg = ""
	m.infoMsg = ""
	m.menu = 0
	m.rowEdit = nil

	switch entered {
	case router.ViewLogin, router.ViewSignup, router.ViewResetPassword:
		m.auth = newAuthForm(entered)
	case router.ViewDevice:
		m.device = wizard.NewDeviceWizard(m.store)
	case router.ViewProtocol:
		m.protocol = wizard.NewProtocolWizard(m.store)
	case router.ViewConnections:
		m.conns = wizard.NewConnectionsWizard(m.store)
		m.conn = newConnForm(m.conns)
	case router.ViewSettings:
		m.auth = newSettingsForm()
	case router.ViewSystemInfo:
		m.info = nil
		m.telemetryCh = m.router.TelemetryUpdates()
		return waitTelemetry(m.telemetryCh)
	}
	return nil
}

// waitTelemetry relays one update from the stream into the Bubble Tea
// message loop.
func waitTelemetry(ch <-chan telemetry.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return telemetryClosedMsg{}
		}
		return telemetryMsg(u)
	}
}

// statusLine renders the transient error or info banner.
func (m Model) statusLine() string {
	if m.busy {
		return m.spinner.View() + " working..."
	}
	if m.errMsg != "" {
		return ErrorStyle.Render(m.errMsg)
	}
	if m.infoMsg != "" {
		return SuccessStyle.Render(m.infoMsg)
	}
	return ""
}
