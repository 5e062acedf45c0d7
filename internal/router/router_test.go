package router

import (
	"context"
	"testing"
	"time"

	"github.com/zedbee/gateway-wizard/internal/auth"
	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/session"
	"github.com/zedbee/gateway-wizard/internal/store"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
)

func newRouter(t *testing.T, poller *telemetry.Poller) (*Router, *store.Store, *session.Manager) {
	t.Helper()
	s, err := store.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	backend := auth.NewMemory()
	backend.Seed("alice", "secret")
	sess := session.NewManager(s, backend)
	return New(sess, s, poller), s, sess
}

func login(t *testing.T, sess *session.Manager) {
	t.Helper()
	if err := sess.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	tests := []struct {
		target View
		want   View
	}{
		{ViewHome, ViewLogin},
		{ViewDevice, ViewLogin},
		{ViewSystemInfo, ViewLogin},
		{ViewLogin, ViewLogin},
		{ViewSignup, ViewSignup},
		{ViewResetPassword, ViewResetPassword},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			r, _, _ := newRouter(t, nil)
			if got := r.Navigate(context.Background(), tt.target); got != tt.want {
				t.Errorf("Navigate(%s) = %s, want %s", tt.target, got, tt.want)
			}
			if r.Current() != tt.want {
				t.Errorf("Current() = %s, want %s", r.Current(), tt.want)
			}
		})
	}
}

func TestGuardRedirectsAuthenticatedLogin(t *testing.T) {
	r, _, sess := newRouter(t, nil)
	login(t, sess)

	if got := r.Navigate(context.Background(), ViewLogin); got != ViewHome {
		t.Errorf("Navigate(login) while authenticated = %s, want home", got)
	}
	if got := r.Navigate(context.Background(), ViewProtocol); got != ViewProtocol {
		t.Errorf("Navigate(protocol) while authenticated = %s, want protocol", got)
	}
}

func TestHomeReflectsCommittedSections(t *testing.T) {
	r, s, sess := newRouter(t, nil)
	login(t, sess)

	page := r.Home()
	if page.Completion.String() != "0/3" || page.Completion.Label != "Not Started" {
		t.Errorf("fresh Completion = %s/%s, want 0/3 Not Started",
			page.Completion.String(), page.Completion.Label)
	}
	if page.Username != "alice" {
		t.Errorf("Username = %q, want alice", page.Username)
	}

	if err := s.UpdateDevice(document.Device{Type: document.DeviceTypeEnergy, Manufacturer: "L&T"}); err != nil {
		t.Fatalf("UpdateDevice() error = %v", err)
	}
	if err := s.UpdateProtocolRTU([]document.RtuRow{document.DefaultRtuRow()}); err != nil {
		t.Fatalf("UpdateProtocolRTU() error = %v", err)
	}

	page = r.Home()
	if page.Completion.String() != "2/3" || page.Completion.Label != "In Progress" {
		t.Errorf("Completion = %s/%s, want 2/3 In Progress",
			page.Completion.String(), page.Completion.Label)
	}
}

type stubFetcher struct{}

func (stubFetcher) FetchSystemInfo(ctx context.Context) (*telemetry.SystemInfo, error) {
	return &telemetry.SystemInfo{Hostname: "gw"}, nil
}

func TestSystemInfoPollLifecycle(t *testing.T) {
	poller := telemetry.NewPoller(stubFetcher{})
	poller.SetInterval(10 * time.Millisecond)

	r, _, sess := newRouter(t, poller)
	login(t, sess)

	if r.TelemetryUpdates() != nil {
		t.Fatal("TelemetryUpdates() non-nil before entering system-info")
	}

	r.Navigate(context.Background(), ViewSystemInfo)
	updates := r.TelemetryUpdates()
	if updates == nil {
		t.Fatal("TelemetryUpdates() nil on system-info view")
	}
	select {
	case u := <-updates:
		if u.Info == nil || u.Info.Hostname != "gw" {
			t.Errorf("update = %+v", u)
		}
	case <-time.After(time.Second):
		t.Fatal("no telemetry update")
	}

	// Leaving the view stops the loop and closes the stream
	r.Navigate(context.Background(), ViewHome)
	if r.TelemetryUpdates() != nil {
		t.Error("TelemetryUpdates() non-nil after leaving system-info")
	}
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("poll loop still running after leaving the view")
		}
	}
}

func TestSystemInfoReentryRestartsSingleLoop(t *testing.T) {
	poller := telemetry.NewPoller(stubFetcher{})
	poller.SetInterval(10 * time.Millisecond)

	r, _, sess := newRouter(t, poller)
	login(t, sess)

	r.Navigate(context.Background(), ViewSystemInfo)
	first := r.TelemetryUpdates()
	r.Navigate(context.Background(), ViewSystemInfo)
	second := r.TelemetryUpdates()

	// The first stream must end; the second must deliver
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-first:
			if !ok {
				select {
				case <-second:
					return
				case <-deadline:
					t.Fatal("second loop delivered nothing")
				}
			}
		case <-deadline:
			t.Fatal("first loop still running after re-entry")
		}
	}
}
