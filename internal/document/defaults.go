package document

// DefaultConfig returns a fresh all-empty configuration document.
//
// Protocol.Mode starts empty: it is only recorded when a table is saved, so
// the home view can distinguish "never configured" from "configured as RTU".
func DefaultConfig() Config {
	return Config{
		Device: Device{},
		Protocol: Protocol{
			RtuRows: []RtuRow{},
			TcpRows: []TcpRow{},
		},
		Connections: Connections{
			ActiveTab: TabHTTP,
			WiFi: WiFiConfig{
				NetType: "dhcp",
			},
			MQTT: MQTTConfig{
				PlatformType: PlatformTypeTesting,
			},
		},
	}
}

// DefaultState returns a fresh state with no user and a default document.
func DefaultState() State {
	return State{
		User:   nil,
		Config: DefaultConfig(),
	}
}

// Normalize backfills structurally incomplete documents loaded from disk or
// fetched from the backend. Missing nested sections get their defaults;
// populated sections are never dropped.
func Normalize(c *Config) {
	if c.Protocol.RtuRows == nil {
		c.Protocol.RtuRows = []RtuRow{}
	}
	if c.Protocol.TcpRows == nil {
		c.Protocol.TcpRows = []TcpRow{}
	}
	if c.Connections.ActiveTab == "" {
		c.Connections.ActiveTab = TabHTTP
	}
	if c.Connections.WiFi.NetType == "" {
		c.Connections.WiFi.NetType = "dhcp"
	}
	if c.Connections.MQTT.PlatformType == "" {
		c.Connections.MQTT.PlatformType = PlatformTypeTesting
	}
}

// DefaultRtuRow returns a blank RTU table row with the usual Modbus serial
// defaults applied.
func DefaultRtuRow() RtuRow {
	return RtuRow{
		SlaveID:   1,
		Baud:      "9600",
		Parity:    "None",
		DataBits:  "8",
		StopBits:  "1",
		FuncCode:  3,
		SlaveAddr: "0000",
		Quantity:  "1",
	}
}

// DefaultTcpRow returns a blank TCP table row. The IP is intentionally left
// empty so the row is invalid until the user fills it in.
func DefaultTcpRow() TcpRow {
	return TcpRow{
		IP:        "",
		Port:      502,
		Gateway:   "192.168.1.1",
		FuncCode:  3,
		SlaveID:   1,
		SlaveAddr: "0000",
		Quantity:  "1",
	}
}
