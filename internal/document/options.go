package document

// Static selection tables for the wizard forms. These mirror the dropdown
// contents of the gateway's configuration UI.

// manufacturers maps device type to the supported manufacturer list.
var manufacturers = map[string][]string{
	DeviceTypeEnergy: {"L&T", "L&K", "Schneider", "Elmeasure", "Key Kad"},
	DeviceTypeFlow:   {"LeHry", "Ultrasonic", "Water Meter"},
}

// ManufacturersFor returns the manufacturer options for a device type.
// Unknown types yield an empty list.
func ManufacturersFor(deviceType string) []string {
	opts := manufacturers[deviceType]
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

// DeviceTypes lists the selectable device types in display order.
func DeviceTypes() []string {
	return []string{DeviceTypeEnergy, DeviceTypeFlow}
}

// deviceTypeLabels maps device type values to display names.
var deviceTypeLabels = map[string]string{
	DeviceTypeEnergy: "Energy Meter",
	DeviceTypeFlow:   "Flow Meter",
}

// DeviceTypeLabel returns the human-readable name for a device type.
// Unknown types are returned as-is.
func DeviceTypeLabel(deviceType string) string {
	if label, ok := deviceTypeLabels[deviceType]; ok {
		return label
	}
	return deviceType
}

// BaudRates lists the supported RTU baud rates.
var BaudRates = []string{"2400", "4800", "9600", "19200", "38400", "57600", "115200"}

// ParityOptions lists the supported RTU parity settings.
var ParityOptions = []string{"None", "Odd", "Even"}

// DataBitsOptions lists the supported RTU data bit counts.
var DataBitsOptions = []string{"7", "8"}

// StopBitsOptions lists the supported RTU stop bit counts.
var StopBitsOptions = []string{"1", "2"}

// FuncCodes lists the supported Modbus function codes. These are stored as
// opaque identifiers; no Modbus stack interprets them here.
var FuncCodes = []int{1, 2, 3, 4, 5, 6, 15}

// PlatformTypes lists the selectable platform environments.
var PlatformTypes = []string{PlatformTypeTesting, PlatformTypeProduction, PlatformTypeOther}

// Platforms lists the selectable MQTT platforms in display order.
var Platforms = []string{PlatformBoodskap, "generic"}
