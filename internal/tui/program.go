package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zedbee/gateway-wizard/internal/router"
	"github.com/zedbee/gateway-wizard/internal/session"
	"github.com/zedbee/gateway-wizard/internal/store"
)

// Run starts the full-screen wizard and blocks until the user quits.
// A still-valid stored session skips the login screen.
func Run(ctx context.Context, rt *router.Router, sess *session.Manager, st *store.Store) error {
	if sess.Authenticated() && sess.VerifySession(ctx) {
		rt.Navigate(ctx, router.ViewHome)
	}

	p := tea.NewProgram(NewModel(rt, sess, st), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	return nil
}
