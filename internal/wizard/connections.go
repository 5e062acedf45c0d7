package wizard

import (
	"errors"
	"strings"

	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/store"
	"github.com/zedbee/gateway-wizard/internal/validate"
)

// Connections wizard validation errors.
var (
	ErrUnknownTab      = errors.New("unknown connections tab")
	ErrUnknownNetType  = errors.New("network type must be dhcp or static")
	ErrEmptySSID       = errors.New("SSID is required")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrUnknownEnv      = errors.New("unknown environment")
	ErrEmptyBrokerURL  = errors.New("broker URL is required")
	ErrEmptyDeviceID   = errors.New("device ID is required")
	ErrEmptyTopic      = errors.New("all three topics are required")
)

// ConnectionsWizard drives the uplink section: the HTTP/WiFi tab and the
// MQTT tab. The active tab is persisted so the wizard reopens where the
// user left off.
type ConnectionsWizard struct {
	store *store.Store

	// MQTT is the linear MQTT sub-flow, active on the mqtt tab.
	MQTT *MQTTWizard

	tab  string
	wifi document.WiFiConfig
}

// NewConnectionsWizard creates the controller over the saved connections
// section.
func NewConnectionsWizard(s *store.Store) *ConnectionsWizard {
	saved := s.Config().Connections
	return &ConnectionsWizard{
		store: s,
		MQTT:  NewMQTTWizard(s),
		tab:   saved.ActiveTab,
		wifi:  saved.WiFi,
	}
}

// Tab returns the active tab.
func (w *ConnectionsWizard) Tab() string { return w.tab }

// WiFi returns the current WiFi form values.
func (w *ConnectionsWizard) WiFi() document.WiFiConfig { return w.wifi }

// SwitchTab activates and persists the given tab. Form state in the other
// tab is retained.
func (w *ConnectionsWizard) SwitchTab(tab string) error {
	if tab != document.TabHTTP && tab != document.TabMQTT {
		return ErrUnknownTab
	}
	w.tab = tab
	return w.store.UpdateConnectionsTab(tab)
}

// SetWiFi updates the WiFi form values without persisting.
func (w *ConnectionsWizard) SetWiFi(cfg document.WiFiConfig) {
	w.wifi = cfg
}

// SaveWiFi validates and persists the WiFi sub-section. A static network
// type carries no extra fields here; address assignment is the gateway's
// concern.
func (w *ConnectionsWizard) SaveWiFi() error {
	if w.wifi.NetType != "dhcp" && w.wifi.NetType != "static" {
		return ErrUnknownNetType
	}
	if !validate.NonEmpty(w.wifi.SSID) {
		return ErrEmptySSID
	}
	return w.store.UpdateWiFi(w.wifi)
}

// MQTTStep identifies the MQTT sub-flow state.
type MQTTStep int

const (
	// MQTTStepPlatform is step 1: choosing the platform.
	MQTTStepPlatform MQTTStep = iota
	// MQTTStepDetails is step 2: environment and broker credentials.
	MQTTStepDetails
	// MQTTStepDeviceID is step 3: the gateway device ID.
	MQTTStepDeviceID
	// MQTTStepTopics is step 4: reviewing or overriding the derived topics.
	MQTTStepTopics
	// MQTTStepCommitted means the MQTT section has been saved this visit.
	MQTTStepCommitted
)

// MQTTWizard drives the linear MQTT setup flow. Each step persists its
// fields on submit, so a partially completed flow survives a restart.
// Going back retains the values entered in later steps; they reappear when
// the user advances again.
type MQTTWizard struct {
	store *store.Store

	step MQTTStep
	cfg  document.MQTTConfig
}

// NewMQTTWizard creates the controller, restoring saved MQTT values. The
// flow always re-enters at platform selection; saved values pre-fill each
// step as the user advances.
func NewMQTTWizard(s *store.Store) *MQTTWizard {
	return &MQTTWizard{
		store: s,
		step:  MQTTStepPlatform,
		cfg:   s.Config().Connections.MQTT,
	}
}

// Step returns the current MQTT step.
func (w *MQTTWizard) Step() MQTTStep { return w.step }

// Config returns the current MQTT form values.
func (w *MQTTWizard) Config() document.MQTTConfig { return w.cfg }

// SelectPlatform records the platform, auto-fills the broker fields for
// platforms with fixed conventions, persists, and advances to the details
// step.
func (w *MQTTWizard) SelectPlatform(platform string) error {
	if !validate.OneOf(platform, document.Platforms) {
		return ErrUnknownPlatform
	}

	w.cfg.Platform = platform
	w.applyAutoFill()
	if err := w.store.UpdateMQTTPlatform(platform); err != nil {
		return err
	}
	w.step = MQTTStepDetails
	return nil
}

// SetEnvironment records the environment selection and re-runs broker
// auto-fill. Switching environments overwrites any manual edits to the
// broker fields; "other" clears them for manual entry.
func (w *MQTTWizard) SetEnvironment(platformType string) error {
	if !validate.OneOf(platformType, document.PlatformTypes) {
		return ErrUnknownEnv
	}
	w.cfg.PlatformType = platformType
	w.applyAutoFill()
	return nil
}

// applyAutoFill overwrites the broker fields from the platform/environment
// pair when the combination dictates them.
func (w *MQTTWizard) applyAutoFill() {
	url, user, pass, apply := document.AutoFillBroker(w.cfg.Platform, w.cfg.PlatformType)
	if !apply {
		return
	}
	w.cfg.Broker.URL = url
	w.cfg.Broker.User = user
	w.cfg.Broker.Pass = pass
}

// SubmitDetails records the broker fields, persists the details step, and
// advances to device ID entry.
func (w *MQTTWizard) SubmitDetails(url, user, pass string) error {
	if !validate.NonEmpty(url) {
		return ErrEmptyBrokerURL
	}

	w.cfg.Broker.URL = strings.TrimSpace(url)
	w.cfg.Broker.User = user
	w.cfg.Broker.Pass = pass
	if err := w.store.UpdateMQTTDetails(w.cfg.PlatformType, w.cfg.Broker.URL, user, pass); err != nil {
		return err
	}
	w.step = MQTTStepDeviceID
	return nil
}

// SubmitDeviceID records the device ID, derives the topic set from the
// platform conventions (overwriting any previous topics), persists both,
// and advances to the topics step.
func (w *MQTTWizard) SubmitDeviceID(deviceID string) error {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return ErrEmptyDeviceID
	}

	w.cfg.DeviceID = deviceID
	w.cfg.Topics = document.DeriveTopics(w.cfg.Platform, deviceID)
	if err := w.store.UpdateMQTTDeviceID(deviceID); err != nil {
		return err
	}
	if err := w.store.UpdateMQTTTopics(w.cfg.Topics); err != nil {
		return err
	}
	w.step = MQTTStepTopics
	return nil
}

// SubmitTopics records the final topic set (derived or manually overridden),
// persists it, and completes the flow.
func (w *MQTTWizard) SubmitTopics(topics document.TopicSet) error {
	if !validate.NonEmpty(topics.Pub) || !validate.NonEmpty(topics.Sub) || !validate.NonEmpty(topics.Ack) {
		return ErrEmptyTopic
	}

	w.cfg.Topics = topics
	if err := w.store.UpdateMQTTTopics(topics); err != nil {
		return err
	}
	w.step = MQTTStepCommitted
	return nil
}

// Back steps the flow backwards one step. Values entered in later steps are
// retained and reappear when the user advances again.
func (w *MQTTWizard) Back() {
	if w.step > MQTTStepPlatform {
		w.step--
	}
}
