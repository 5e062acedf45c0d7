package wizard

import (
	"errors"

	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/store"
	"github.com/zedbee/gateway-wizard/internal/validate"
)

// Device wizard validation errors.
var (
	ErrNoTypeSelected      = errors.New("no device type selected")
	ErrUnknownDeviceType   = errors.New("unknown device type")
	ErrNoManufacturer      = errors.New("no manufacturer selected")
	ErrUnknownManufacturer = errors.New("manufacturer not in the list for this device type")
)

// DeviceStep identifies the device wizard state.
type DeviceStep int

const (
	// DeviceStepSelectType is step 1: choosing the device type.
	DeviceStepSelectType DeviceStep = iota
	// DeviceStepSelectManufacturer is step 2: choosing the manufacturer.
	DeviceStepSelectManufacturer
	// DeviceStepCommitted means the section has been saved this visit.
	DeviceStepCommitted
)

// DeviceWizard drives the device selection section.
//
// When a device configuration was committed previously, the wizard
// initializes directly in step 2 with step 1 locked; an explicit Back
// re-enables step 1 and clears the manufacturer selection.
type DeviceWizard struct {
	store *store.Store

	step       DeviceStep
	typeLocked bool

	deviceType   string
	manufacturer string
	options      []string
}

// NewDeviceWizard creates the controller, restoring the committed selection
// if one exists.
func NewDeviceWizard(s *store.Store) *DeviceWizard {
	w := &DeviceWizard{store: s, step: DeviceStepSelectType}

	saved := s.Config().Device
	if saved.Type != "" {
		// Previously committed: show both steps with step 1 disabled
		w.deviceType = saved.Type
		w.manufacturer = saved.Manufacturer
		w.options = document.ManufacturersFor(saved.Type)
		w.step = DeviceStepSelectManufacturer
		w.typeLocked = true
	}
	return w
}

// Step returns the current wizard step.
func (w *DeviceWizard) Step() DeviceStep { return w.step }

// TypeLocked reports whether step 1 is disabled (previously committed or
// advanced past).
func (w *DeviceWizard) TypeLocked() bool { return w.typeLocked }

// DeviceType returns the currently selected device type.
func (w *DeviceWizard) DeviceType() string { return w.deviceType }

// Manufacturer returns the currently selected manufacturer.
func (w *DeviceWizard) Manufacturer() string { return w.manufacturer }

// Options returns the manufacturer options for the selected type.
func (w *DeviceWizard) Options() []string {
	return append([]string{}, w.options...)
}

// SelectType records the device type. Selecting a type resets the
// manufacturer and repopulates the manufacturer options.
func (w *DeviceWizard) SelectType(deviceType string) error {
	if w.typeLocked {
		return errors.New("device type is locked; go back first")
	}
	if !validate.OneOf(deviceType, document.DeviceTypes()) {
		return ErrUnknownDeviceType
	}
	w.deviceType = deviceType
	w.manufacturer = ""
	w.options = document.ManufacturersFor(deviceType)
	return nil
}

// Next advances from type selection to manufacturer selection. It requires
// a non-empty type selection and locks step 1.
func (w *DeviceWizard) Next() error {
	if w.deviceType == "" {
		return ErrNoTypeSelected
	}
	w.options = document.ManufacturersFor(w.deviceType)
	w.step = DeviceStepSelectManufacturer
	w.typeLocked = true
	return nil
}

// Back re-enables step 1 and clears the manufacturer selection.
func (w *DeviceWizard) Back() {
	w.step = DeviceStepSelectType
	w.typeLocked = false
	w.manufacturer = ""
}

// SelectManufacturer records the manufacturer choice.
func (w *DeviceWizard) SelectManufacturer(manufacturer string) error {
	if manufacturer == "" {
		w.manufacturer = ""
		return nil
	}
	if !validate.OneOf(manufacturer, w.options) {
		return ErrUnknownManufacturer
	}
	w.manufacturer = manufacturer
	return nil
}

// Commit validates both selections, persists the device section, and moves
// to the committed state. The section summary should be rendered after a
// successful commit.
func (w *DeviceWizard) Commit() error {
	if w.deviceType == "" {
		return ErrNoTypeSelected
	}
	if w.manufacturer == "" {
		return ErrNoManufacturer
	}

	if err := w.store.UpdateDevice(document.Device{
		Type:         w.deviceType,
		Manufacturer: w.manufacturer,
	}); err != nil {
		return err
	}

	w.step = DeviceStepCommitted
	w.typeLocked = true
	return nil
}
