// Package wizard implements the per-section step controllers that drive the
// configuration document.
//
// Each controller is a UI-agnostic state machine: it exposes the current
// step, the values and options a view needs to render, and transition
// methods gated by validation. Controllers validate before mutating the
// store; the store itself never validates.
//
// Three controllers exist, one per section:
//   - DeviceWizard: type then manufacturer, two linear steps
//   - ProtocolWizard: two independent row-table sub-flows (RTU, TCP)
//   - ConnectionsWizard: HTTP/MQTT tab plus the linear MQTT step sequence
package wizard
