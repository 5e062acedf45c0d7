package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/logging"
)

// remoteSyncTimeout bounds each best-effort remote write.
const remoteSyncTimeout = 10 * time.Second

// Remote is the backend config mirror consumed by the store. Absence of the
// backend (nil Remote) degrades the store to local-only persistence.
type Remote interface {
	// FetchConfig returns the server-side copy of the user's document, or
	// nil if the server has none.
	FetchConfig(ctx context.Context, token string) (*document.Config, error)

	// SaveConfig replaces the server-side copy of the user's document.
	SaveConfig(ctx context.Context, token string, cfg document.Config) error
}

// Store owns the in-memory configuration document and its persistence.
//
// Every mutation persists the full document to the local state file
// synchronously, then mirrors it to the backend on a best-effort basis.
// Remote failures are logged and swallowed: local storage is the source of
// truth. Validation is the caller's responsibility; the store never rejects
// a mutation.
type Store struct {
	dir    string
	remote Remote

	mu    sync.Mutex
	state document.State
}

// Open loads the persisted state from dir (created if missing) and returns
// a ready store. A missing or corrupt state file yields a fresh default
// document; a structurally incomplete one is backfilled, never dropped.
func Open(dir string, remote Remote) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	s := &Store{dir: dir, remote: remote}
	s.state = s.load()
	return s, nil
}

// load reads the state file, falling back to defaults.
func (s *Store) load() document.State {
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("Failed to read state file, starting fresh",
				zap.String("path", s.statePath()), zap.Error(err))
		}
		return document.DefaultState()
	}

	var state document.State
	if err := json.Unmarshal(data, &state); err != nil {
		logging.Warn("State file is corrupt, starting fresh",
			zap.String("path", s.statePath()), zap.Error(err))
		return document.DefaultState()
	}

	document.Normalize(&state.Config)
	return state
}

func (s *Store) statePath() string { return filepath.Join(s.dir, stateFile) }
func (s *Store) tokenPath() string { return filepath.Join(s.dir, tokenFile) }

// State returns a snapshot of the current state. Row slices are copied so
// callers cannot mutate the document behind the store's back.
func (s *Store) State() document.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Config returns a snapshot of the configuration document.
func (s *Store) Config() document.Config {
	return s.State().Config
}

// User returns the current session user, or nil when logged out.
func (s *Store) User() *document.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// SetUser records the authenticated user and persists.
func (s *Store) SetUser(u *document.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = u
	return s.persistLocked()
}

// UpdateDevice replaces the device section and persists.
func (s *Store) UpdateDevice(d document.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Device = d
	return s.persistLocked()
}

// UpdateProtocolRTU replaces the RTU row set, records RTU as the
// authoritative mode, and persists. The TCP row set is left untouched.
func (s *Store) UpdateProtocolRTU(rows []document.RtuRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Protocol.Mode = document.ModeRTU
	s.state.Config.Protocol.RtuRows = append([]document.RtuRow{}, rows...)
	return s.persistLocked()
}

// UpdateProtocolTCP replaces the TCP row set, records TCP as the
// authoritative mode, and persists. The RTU row set is left untouched.
func (s *Store) UpdateProtocolTCP(rows []document.TcpRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Protocol.Mode = document.ModeTCP
	s.state.Config.Protocol.TcpRows = append([]document.TcpRow{}, rows...)
	return s.persistLocked()
}

// UpdateConnectionsTab records the active connections tab and persists.
func (s *Store) UpdateConnectionsTab(tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Connections.ActiveTab = tab
	return s.persistLocked()
}

// UpdateWiFi replaces the WiFi sub-section and persists.
func (s *Store) UpdateWiFi(w document.WiFiConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Connections.WiFi = w
	return s.persistLocked()
}

// UpdateMQTTPlatform records the selected platform and persists.
func (s *Store) UpdateMQTTPlatform(platform string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Connections.MQTT.Platform = platform
	return s.persistLocked()
}

// UpdateMQTTDetails records the environment and broker fields (client ID is
// preserved) and persists.
func (s *Store) UpdateMQTTDetails(platformType, url, user, pass string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mqtt := &s.state.Config.Connections.MQTT
	mqtt.PlatformType = platformType
	mqtt.Broker.URL = url
	mqtt.Broker.User = user
	mqtt.Broker.Pass = pass
	return s.persistLocked()
}

// UpdateMQTTDeviceID records the device ID and persists.
func (s *Store) UpdateMQTTDeviceID(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Connections.MQTT.DeviceID = deviceID
	return s.persistLocked()
}

// UpdateMQTTTopics replaces the topic set and persists.
func (s *Store) UpdateMQTTTopics(topics document.TopicSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config.Connections.MQTT.Topics = topics
	return s.persistLocked()
}

// Reset replaces the document with defaults, clears the user and the stored
// token, and persists. Used on logout.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.Config = document.DefaultConfig()
	if err := os.Remove(s.tokenPath()); err != nil && !os.IsNotExist(err) {
		logging.Warn("Failed to remove token file", zap.Error(err))
	}
	return s.persistLocked()
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Store) Token() string {
	data, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetToken stores the bearer token with user-only permissions.
func (s *Store) SetToken(token string) error {
	if err := os.WriteFile(s.tokenPath(), []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// FetchRemote pulls the server-side document and adopts it when present.
// Missing sections in the server copy are backfilled from defaults. The
// merged document is persisted locally only; it is not echoed back to the
// server. A nil remote or fetch failure leaves the local document as-is.
func (s *Store) FetchRemote(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}
	token := s.Token()
	if token == "" {
		return nil
	}

	cfg, err := s.remote.FetchConfig(ctx, token)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config = *cfg
	document.Normalize(&s.state.Config)
	return s.writeLocal()
}

// persistLocked writes the state file synchronously, then kicks off the
// best-effort remote mirror. Callers must hold s.mu.
func (s *Store) persistLocked() error {
	if err := s.writeLocal(); err != nil {
		return err
	}
	s.syncRemote(cloneState(s.state))
	return nil
}

// writeLocal writes the full state atomically (temp file + rename).
func (s *Store) writeLocal() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := s.statePath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.statePath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save state file: %w", err)
	}
	return nil
}

// syncRemote mirrors the document to the backend, fire-and-forget. Calls
// may complete out of order relative to each other; the last arriving write
// wins with no conflict detection.
func (s *Store) syncRemote(snapshot document.State) {
	if s.remote == nil || snapshot.User == nil {
		return
	}
	token := s.Token()
	if token == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteSyncTimeout)
		defer cancel()
		err := s.remote.SaveConfig(ctx, token, snapshot.Config)
		logging.LogRemoteSync("PUT /api/config", err)
	}()
}

// cloneState deep-copies the row slices so snapshots are independent.
func cloneState(state document.State) document.State {
	out := state
	if state.User != nil {
		u := *state.User
		out.User = &u
	}
	out.Config.Protocol.RtuRows = append([]document.RtuRow{}, state.Config.Protocol.RtuRows...)
	out.Config.Protocol.TcpRows = append([]document.TcpRow{}, state.Config.Protocol.TcpRows...)
	return out
}
