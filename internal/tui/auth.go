package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zedbee/gateway-wizard/internal/api"
	"github.com/zedbee/gateway-wizard/internal/router"
)

// authFormState backs the login, signup, reset-password and settings
// screens. Each is a short stack of text inputs with one focused at a
// time.
type authFormState struct {
	view   router.View
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 32
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

func newAuthForm(view router.View) authFormState {
	f := authFormState{view: view}
	switch view {
	case router.ViewSignup:
		f.labels = []string{"Username", "Password", "Confirm password"}
		f.inputs = []textinput.Model{
			newInput("username", false),
			newInput("min 6 characters", true),
			newInput("repeat password", true),
		}
	case router.ViewResetPassword:
		f.labels = []string{"Username", "New password"}
		f.inputs = []textinput.Model{
			newInput("username", false),
			newInput("min 6 characters", true),
		}
	default:
		f.labels = []string{"Username", "Password"}
		f.inputs = []textinput.Model{
			newInput("username", false),
			newInput("password", true),
		}
	}
	f.inputs[0].Focus()
	return f
}

func newSettingsForm() authFormState {
	f := authFormState{
		view:   router.ViewSettings,
		labels: []string{"Current password", "New password"},
		inputs: []textinput.Model{
			newInput("current password", true),
			newInput("min 6 characters", true),
		},
	}
	f.inputs[0].Focus()
	return f
}

// cycle moves input focus by delta, wrapping around.
func (f *authFormState) cycle(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *authFormState) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *authFormState) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.auth.updateInputs(msg)
	}
	if m.busy {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		m.auth.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.auth.cycle(-1)
		return m, nil
	case "enter":
		if m.auth.focus < len(m.auth.inputs)-1 {
			m.auth.cycle(1)
			return m, nil
		}
		return m.submitAuth()
	case "ctrl+n":
		if m.router.Current() == router.ViewLogin {
			return m, m.navigate(router.ViewSignup)
		}
	case "ctrl+r":
		if m.router.Current() == router.ViewLogin {
			return m, m.navigate(router.ViewResetPassword)
		}
	case "esc":
		if m.router.Current() != router.ViewLogin {
			return m, m.navigate(router.ViewLogin)
		}
		return m, nil
	}
	return m, m.auth.updateInputs(msg)
}

// submitAuth kicks off the network call for the current pre-login form.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	sess := m.session
	f := m.auth
	m.busy = true
	m.errMsg = ""

	switch f.view {
	case router.ViewSignup:
		u, p, confirm := f.value(0), f.inputs[1].Value(), f.inputs[2].Value()
		return m, func() tea.Msg {
			return authResultMsg{action: "signup", err: sess.Signup(context.Background(), u, p, confirm)}
		}
	case router.ViewResetPassword:
		u, p := f.value(0), f.inputs[1].Value()
		return m, func() tea.Msg {
			return authResultMsg{action: "reset", err: sess.ResetPassword(context.Background(), u, p)}
		}
	default:
		u, p := f.value(0), f.inputs[1].Value()
		return m, func() tea.Msg {
			return authResultMsg{action: "login", err: sess.Login(context.Background(), u, p)}
		}
	}
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		// Classified transport errors get the generic user-facing text;
		// validation and credential errors pass through verbatim.
		m.errMsg = api.ShortMessage(msg.err)
		return m, nil
	}
	switch msg.action {
	case "login":
		return m, m.navigate(router.ViewHome)
	case "signup":
		cmd := m.navigate(router.ViewLogin)
		m.infoMsg = "Account created, sign in to continue"
		return m, cmd
	case "reset":
		cmd := m.navigate(router.ViewLogin)
		m.infoMsg = "Password reset, sign in with the new password"
		return m, cmd
	case "change-password":
		m.infoMsg = "Password updated"
		m.auth = newSettingsForm()
		return m, nil
	}
	return m, nil
}

func (m Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(RenderHeader(m.width))
	b.WriteString("\n")

	switch m.auth.view {
	case router.ViewSignup:
		b.WriteString(SubtitleStyle.Render("Create an account"))
	case router.ViewResetPassword:
		b.WriteString(SubtitleStyle.Render("Reset password"))
	default:
		b.WriteString(SubtitleStyle.Render("Sign in to your gateway"))
	}
	b.WriteString("\n\n")

	for i, in := range m.auth.inputs {
		b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", LabelStyle.Render(m.auth.labels[i]), in.View()))
	}

	if s := m.statusLine(); s != "" {
		b.WriteString("  " + s + "\n\n")
	}

	switch m.auth.view {
	case router.ViewLogin:
		b.WriteString(HelpStyle.Render("  tab next field · enter submit · ctrl+n sign up · ctrl+r reset password · ctrl+c quit"))
	default:
		b.WriteString(HelpStyle.Render("  tab next field · enter submit · esc back to sign in · ctrl+c quit"))
	}
	return b.String()
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.auth.updateInputs(msg)
	}
	if m.busy {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		m.auth.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.auth.cycle(-1)
		return m, nil
	case "enter":
		if m.auth.focus < len(m.auth.inputs)-1 {
			m.auth.cycle(1)
			return m, nil
		}
		sess := m.session
		current, next := m.auth.inputs[0].Value(), m.auth.inputs[1].Value()
		m.busy = true
		m.errMsg = ""
		return m, func() tea.Msg {
			return authResultMsg{action: "change-password", err: sess.UpdatePassword(context.Background(), current, next)}
		}
	case "ctrl+l":
		m.session.Logout()
		return m, m.navigate(router.ViewLogin)
	case "esc":
		return m, m.navigate(router.ViewHome)
	}
	return m, m.auth.updateInputs(msg)
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(RenderHeader(m.width))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n", LabelStyle.Render("Signed in as"), ValueStyle.Render(m.session.Username())))

	b.WriteString("  " + LabelStyle.Render("Change password") + "\n\n")
	for i, in := range m.auth.inputs {
		b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", LabelStyle.Render(m.auth.labels[i]), in.View()))
	}

	if s := m.statusLine(); s != "" {
		b.WriteString("  " + s + "\n\n")
	}
	b.WriteString(HelpStyle.Render("  enter submit · ctrl+l log out · esc home · ctrl+c quit"))
	return b.String()
}
