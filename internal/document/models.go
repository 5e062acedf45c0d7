package document

// State is the full persisted client state: the configuration document plus
// the authenticated user. This is the JSON shape written to the local state
// file and (config only) mirrored to the gateway backend.
type State struct {
	User   *User  `json:"user"`
	Config Config `json:"config"`
}

// User identifies the authenticated session owner.
type User struct {
	Username string `json:"username"`
}

// Config is the root configuration document, one per user.
type Config struct {
	Device      Device      `json:"device"`
	Protocol    Protocol    `json:"protocol"`
	Connections Connections `json:"connections"`
}

// Device holds the device-type section of the wizard.
type Device struct {
	Type         string `json:"type"`         // "energy", "flow" or "" (not selected)
	Manufacturer string `json:"manufacturer"` // one of ManufacturersFor(Type)
}

// Protocol holds both Modbus table sections. Mode records which table is
// authoritative for summaries; both row sets persist independently.
type Protocol struct {
	Mode    string   `json:"mode"` // "rtu", "tcp" or "" (nothing saved yet)
	RtuRows []RtuRow `json:"rtuRows"`
	TcpRows []TcpRow `json:"tcpRows"`
}

// RtuRow is one Modbus RTU (serial) polling entry. The serial parameters are
// descriptive only; no serial stack is implemented here.
type RtuRow struct {
	SlaveID   int    `json:"slaveId"`   // 1-247
	Baud      string `json:"baud"`      // one of BaudRates
	Parity    string `json:"parity"`    // None, Odd, Even
	DataBits  string `json:"dataBits"`  // 7 or 8
	StopBits  string `json:"stopBits"`  // 1 or 2
	FuncCode  int    `json:"funcCode"`  // one of FuncCodes
	SlaveAddr string `json:"slaveAddr"` // register address, free text, non-empty
	Quantity  string `json:"quantity"`  // register count, free text, non-empty
}

// TcpRow is one Modbus TCP (network) polling entry.
type TcpRow struct {
	IP        string `json:"ip"`      // IPv4 dotted quad
	Port      int    `json:"port"`    // 1-65535
	Gateway   string `json:"gateway"` // IPv4 dotted quad
	FuncCode  int    `json:"funcCode"`
	SlaveID   int    `json:"slaveId"` // 0-255
	SlaveAddr string `json:"slaveAddr"`
	Quantity  string `json:"quantity"`
}

// Connections holds the uplink section: the active tab plus both the
// HTTP/WiFi and MQTT sub-sections.
type Connections struct {
	ActiveTab string     `json:"activeTab"` // "http" or "mqtt"
	WiFi      WiFiConfig `json:"wifi"`
	MQTT      MQTTConfig `json:"mqtt"`
}

// WiFiConfig is the HTTP/WiFi uplink sub-section.
type WiFiConfig struct {
	NetType  string `json:"netType"` // "dhcp" or "static"
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// MQTTConfig is the MQTT uplink sub-section built by the connections wizard.
type MQTTConfig struct {
	Platform     string   `json:"platform"`     // e.g. "boodskap", "generic"
	PlatformType string   `json:"platformType"` // "testing", "production", "other"
	DeviceID     string   `json:"deviceId"`
	Broker       Broker   `json:"broker"`
	Topics       TopicSet `json:"topics"`
}

// Broker holds MQTT broker connection details.
type Broker struct {
	URL    string `json:"url"`
	Client string `json:"client"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
}

// TopicSet holds the three gateway topics.
type TopicSet struct {
	Pub string `json:"pub"`
	Sub string `json:"sub"`
	Ack string `json:"ack"`
}

// Device type values
const (
	DeviceTypeEnergy = "energy"
	DeviceTypeFlow   = "flow"
)

// Protocol mode values
const (
	ModeRTU = "rtu"
	ModeTCP = "tcp"
)

// Connections tab values
const (
	TabHTTP = "http"
	TabMQTT = "mqtt"
)

// WiFi addressing modes
const (
	NetTypeDHCP   = "dhcp"
	NetTypeStatic = "static"
)

// Platform environment values
const (
	PlatformTypeTesting    = "testing"
	PlatformTypeProduction = "production"
	PlatformTypeOther      = "other"
)

// PlatformBoodskap is the one platform with fixed broker and topic
// conventions; everything else is treated generically.
const PlatformBoodskap = "boodskap"
