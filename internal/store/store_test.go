package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zedbee/gateway-wizard/internal/document"
)

// fakeRemote records sync calls so tests can assert on the fire-and-forget
// mirror without a real backend.
type fakeRemote struct {
	fetched  *document.Config
	fetchErr error

	saved chan document.Config
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{saved: make(chan document.Config, 16)}
}

func (f *fakeRemote) FetchConfig(ctx context.Context, token string) (*document.Config, error) {
	return f.fetched, f.fetchErr
}

func (f *fakeRemote) SaveConfig(ctx context.Context, token string, cfg document.Config) error {
	f.saved <- cfg
	return nil
}

func openTestStore(t *testing.T, remote Remote) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), remote)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestOpenFreshDirectory(t *testing.T) {
	s := openTestStore(t, nil)

	state := s.State()
	if state.User != nil {
		t.Errorf("fresh store User = %+v, want nil", state.User)
	}
	if state.Config.Connections.ActiveTab != document.TabHTTP {
		t.Errorf("fresh store ActiveTab = %q, want http", state.Config.Connections.ActiveTab)
	}
}

func TestMutationPersistsAndReloads(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.UpdateDevice(document.Device{Type: "energy", Manufacturer: "Schneider"}); err != nil {
		t.Fatalf("UpdateDevice() error = %v", err)
	}
	if err := s.UpdateProtocolRTU([]document.RtuRow{document.DefaultRtuRow()}); err != nil {
		t.Fatalf("UpdateProtocolRTU() error = %v", err)
	}

	// A second store over the same directory must see the committed state
	reloaded, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open() reload error = %v", err)
	}

	cfg := reloaded.Config()
	if cfg.Device.Manufacturer != "Schneider" {
		t.Errorf("reloaded Manufacturer = %q, want Schneider", cfg.Device.Manufacturer)
	}
	if cfg.Protocol.Mode != document.ModeRTU {
		t.Errorf("reloaded Mode = %q, want rtu", cfg.Protocol.Mode)
	}
	if len(cfg.Protocol.RtuRows) != 1 {
		t.Errorf("reloaded RtuRows length = %d, want 1", len(cfg.Protocol.RtuRows))
	}
}

func TestCorruptStateFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if s.User() != nil {
		t.Error("corrupt state should yield a fresh default document")
	}
}

func TestIncompleteStateIsBackfilled(t *testing.T) {
	dir := t.TempDir()
	raw := `{"user":{"username":"operator"},"config":{"device":{"type":"flow","manufacturer":"LeHry"}}}`
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte(raw), 0600); err != nil {
		t.Fatalf("seed state file: %v", err)
	}

	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	cfg := s.Config()
	if cfg.Device.Type != "flow" {
		t.Errorf("Device.Type = %q, want flow preserved", cfg.Device.Type)
	}
	if cfg.Connections.ActiveTab != document.TabHTTP {
		t.Errorf("ActiveTab = %q, want backfilled http", cfg.Connections.ActiveTab)
	}
	if cfg.Protocol.RtuRows == nil {
		t.Error("RtuRows should be backfilled to an empty slice")
	}
}

func TestUpdateProtocolKeepsOtherRowSet(t *testing.T) {
	s := openTestStore(t, nil)

	if err := s.UpdateProtocolRTU([]document.RtuRow{document.DefaultRtuRow()}); err != nil {
		t.Fatalf("UpdateProtocolRTU() error = %v", err)
	}
	tcpRow := document.DefaultTcpRow()
	tcpRow.IP = "10.0.0.5"
	if err := s.UpdateProtocolTCP([]document.TcpRow{tcpRow}); err != nil {
		t.Fatalf("UpdateProtocolTCP() error = %v", err)
	}

	cfg := s.Config()
	if cfg.Protocol.Mode != document.ModeTCP {
		t.Errorf("Mode = %q, want tcp (last saved)", cfg.Protocol.Mode)
	}
	if len(cfg.Protocol.RtuRows) != 1 {
		t.Errorf("RtuRows length = %d, want 1 (persists independently of mode)", len(cfg.Protocol.RtuRows))
	}
	if len(cfg.Protocol.TcpRows) != 1 {
		t.Errorf("TcpRows length = %d, want 1", len(cfg.Protocol.TcpRows))
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := openTestStore(t, nil)

	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if err := s.SetUser(&document.User{Username: "operator"}); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}
	if err := s.UpdateDevice(document.Device{Type: "energy", Manufacturer: "L&T"}); err != nil {
		t.Fatalf("UpdateDevice() error = %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if s.User() != nil {
		t.Error("Reset() should clear the user")
	}
	if s.Token() != "" {
		t.Errorf("Reset() should remove the token, got %q", s.Token())
	}
	if cfg := s.Config(); cfg.Device.Type != "" {
		t.Errorf("Reset() should restore defaults, Device.Type = %q", cfg.Device.Type)
	}
}

func TestRemoteSyncFiresOnMutation(t *testing.T) {
	remote := newFakeRemote()
	dir := t.TempDir()
	s, err := Open(dir, remote)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if err := s.SetUser(&document.User{Username: "operator"}); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}
	if err := s.UpdateMQTTDeviceID("G100"); err != nil {
		t.Fatalf("UpdateMQTTDeviceID() error = %v", err)
	}

	// Both mutations after login should have mirrored remotely. The syncs
	// are fire-and-forget goroutines with no ordering guarantee, so accept
	// the DeviceID in whichever snapshot carries it.
	deadline := time.After(2 * time.Second)
	sawDeviceID := false
	for i := 0; i < 2; i++ {
		select {
		case cfg := <-remote.saved:
			if cfg.Connections.MQTT.DeviceID == "G100" {
				sawDeviceID = true
			}
		case <-deadline:
			t.Fatalf("remote sync %d never fired", i+1)
		}
	}
	if !sawDeviceID {
		t.Error("no synced snapshot carried DeviceID G100")
	}
}

func TestNoRemoteSyncWithoutUser(t *testing.T) {
	remote := newFakeRemote()
	s, err := Open(t.TempDir(), remote)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.UpdateConnectionsTab(document.TabMQTT); err != nil {
		t.Fatalf("UpdateConnectionsTab() error = %v", err)
	}

	select {
	case cfg := <-remote.saved:
		t.Errorf("unexpected remote sync while logged out: %+v", cfg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFetchRemoteAdoptsServerCopy(t *testing.T) {
	remote := newFakeRemote()
	fetched := document.DefaultConfig()
	fetched.Device = document.Device{Type: "flow", Manufacturer: "Water Meter"}
	remote.fetched = &fetched

	s, err := Open(t.TempDir(), remote)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	if err := s.FetchRemote(context.Background()); err != nil {
		t.Fatalf("FetchRemote() error = %v", err)
	}

	if got := s.Config().Device.Manufacturer; got != "Water Meter" {
		t.Errorf("Manufacturer = %q, want server copy adopted", got)
	}
}

func TestFetchRemoteWithoutServerCopyKeepsLocal(t *testing.T) {
	remote := newFakeRemote() // fetched == nil: server has no document
	s, err := Open(t.TempDir(), remote)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if err := s.UpdateDevice(document.Device{Type: "energy", Manufacturer: "Elmeasure"}); err != nil {
		t.Fatalf("UpdateDevice() error = %v", err)
	}

	if err := s.FetchRemote(context.Background()); err != nil {
		t.Fatalf("FetchRemote() error = %v", err)
	}

	if got := s.Config().Device.Manufacturer; got != "Elmeasure" {
		t.Errorf("Manufacturer = %q, want local copy kept", got)
	}
}

func TestStateSnapshotIsIndependent(t *testing.T) {
	s := openTestStore(t, nil)
	if err := s.UpdateProtocolRTU([]document.RtuRow{document.DefaultRtuRow()}); err != nil {
		t.Fatalf("UpdateProtocolRTU() error = %v", err)
	}

	snapshot := s.State()
	snapshot.Config.Protocol.RtuRows[0].SlaveID = 99

	if got := s.Config().Protocol.RtuRows[0].SlaveID; got != 1 {
		t.Errorf("store mutated through snapshot: SlaveID = %d, want 1", got)
	}
}

func TestStateFileShape(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetUser(&document.User{Username: "operator"}); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("state file is not valid JSON: %v", err)
	}
	if _, ok := raw["user"]; !ok {
		t.Error("state file missing top-level user field")
	}
	if _, ok := raw["config"]; !ok {
		t.Error("state file missing top-level config field")
	}
}
