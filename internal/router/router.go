// Package router implements top-level page navigation with an
// authentication guard, plus the per-view enter/leave side effects: summary
// refresh on authenticated views and the telemetry poll lifecycle on the
// system-info view.
package router

import (
	"context"

	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/logging"
	"github.com/zedbee/gateway-wizard/internal/session"
	"github.com/zedbee/gateway-wizard/internal/store"
	"github.com/zedbee/gateway-wizard/internal/summary"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
)

// View names a top-level page.
type View string

const (
	ViewLogin         View = "login"
	ViewSignup        View = "signup"
	ViewResetPassword View = "reset-password"
	ViewHome          View = "home"
	ViewDevice        View = "device"
	ViewProtocol      View = "protocol"
	ViewConnections   View = "connections"
	ViewSettings      View = "settings"
	ViewSystemInfo    View = "system-info"
)

// publicViews are reachable without a session.
var publicViews = map[View]bool{
	ViewLogin:         true,
	ViewSignup:        true,
	ViewResetPassword: true,
}

// Router tracks the active view and enforces the auth guard. At most one
// telemetry polling loop is active, owned by the router and tied to the
// system-info view.
type Router struct {
	session *session.Manager
	store   *store.Store
	poller  *telemetry.Poller

	current   View
	telemetry <-chan telemetry.Update
}

// New creates a router starting on the login view. The poller may be nil
// when the build has no telemetry source; the system-info view then shows
// nothing.
func New(sess *session.Manager, s *store.Store, poller *telemetry.Poller) *Router {
	return &Router{
		session: sess,
		store:   s,
		poller:  poller,
		current: ViewLogin,
	}
}

// Current returns the active view.
func (r *Router) Current() View { return r.current }

// Navigate applies the auth guard and switches to the resolved view,
// running leave and enter side effects. It returns the view actually
// entered, which differs from the request when the guard redirects.
func (r *Router) Navigate(ctx context.Context, target View) View {
	resolved := r.resolve(target)
	if resolved != target {
		logging.Debug("Navigation redirected",
			zap.String("requested", string(target)),
			zap.String("resolved", string(resolved)))
	}

	r.leave(r.current)
	r.current = resolved
	r.enter(ctx, resolved)
	return resolved
}

// resolve applies the guard rules: unauthenticated users land on login for
// any non-public view; an authenticated user asking for login lands home.
func (r *Router) resolve(target View) View {
	authed := r.session.Authenticated()
	if !authed && !publicViews[target] {
		return ViewLogin
	}
	if authed && target == ViewLogin {
		return ViewHome
	}
	return target
}

func (r *Router) leave(view View) {
	if view == ViewSystemInfo && r.poller != nil {
		r.poller.Stop()
		r.telemetry = nil
	}
}

func (r *Router) enter(ctx context.Context, view View) {
	if view == ViewSystemInfo && r.poller != nil {
		r.telemetry = r.poller.Start(ctx)
	}
}

// TelemetryUpdates returns the active system-info update stream, or nil
// when the system-info view is not mounted.
func (r *Router) TelemetryUpdates() <-chan telemetry.Update {
	return r.telemetry
}

// HomePage is the data behind the overview view, recomputed on every
// entry so committed sections are always reflected.
type HomePage struct {
	Username   string
	Completion summary.Completion
	Device     string
	Protocol   string
	Connection string
}

// Home derives the overview page from the current document.
func (r *Router) Home() HomePage {
	cfg := r.store.Config()
	return HomePage{
		Username:   r.session.Username(),
		Completion: summary.Status(cfg),
		Device:     summary.Device(cfg),
		Protocol:   summary.Protocol(cfg),
		Connection: summary.Connections(cfg),
	}
}
