package document

import "testing"

// TestDeriveTopics tests topic derivation for both platform families
func TestDeriveTopics(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		deviceID string
		want     TopicSet
	}{
		{
			name:     "Boodskap platform uses domain key scheme",
			platform: "boodskap",
			deviceID: "G100",
			want: TopicSet{
				Pub: "/BHEZISEWY/device/G100/msgs/gateway/1/106",
				Sub: "/BHEZISEWY/device/G100/cmds",
				Ack: "/BHEZISEWY/device/G100/msgs/gateway/1/103",
			},
		},
		{
			name:     "Generic platform uses deviceID prefix",
			platform: "generic",
			deviceID: "G100",
			want: TopicSet{
				Pub: "G100/publish",
				Sub: "G100/subscribe",
				Ack: "G100/ack",
			},
		},
		{
			name:     "Unknown platform treated as generic",
			platform: "thingsboard",
			deviceID: "GW-7",
			want: TopicSet{
				Pub: "GW-7/publish",
				Sub: "GW-7/subscribe",
				Ack: "GW-7/ack",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTopics(tt.platform, tt.deviceID)
			if got != tt.want {
				t.Errorf("DeriveTopics(%q, %q) = %+v, want %+v", tt.platform, tt.deviceID, got, tt.want)
			}
		})
	}
}

// TestAutoFillBroker tests the boodskap broker credential lookup
func TestAutoFillBroker(t *testing.T) {
	tests := []struct {
		name         string
		platform     string
		platformType string
		wantURL      string
		wantUser     string
		wantPass     string
		wantApply    bool
	}{
		{"Boodskap testing", "boodskap", "testing", "zedbee.io", "test", "test@123", true},
		{"Boodskap production", "boodskap", "production", "zedbee.io", "production", "production@123", true},
		{"Boodskap unknown non-other env treated as production", "boodskap", "staging", "zedbee.io", "production", "production@123", true},
		{"Other environment clears fields", "boodskap", "other", "", "", "", true},
		{"Other environment clears fields for generic too", "generic", "other", "", "", "", true},
		{"Generic platform not auto-filled", "generic", "testing", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, user, pass, apply := AutoFillBroker(tt.platform, tt.platformType)
			if url != tt.wantURL || user != tt.wantUser || pass != tt.wantPass || apply != tt.wantApply {
				t.Errorf("AutoFillBroker(%q, %q) = (%q, %q, %q, %v), want (%q, %q, %q, %v)",
					tt.platform, tt.platformType, url, user, pass, apply,
					tt.wantURL, tt.wantUser, tt.wantPass, tt.wantApply)
			}
		})
	}
}

// TestManufacturersFor tests the static type to manufacturer table
func TestManufacturersFor(t *testing.T) {
	tests := []struct {
		name       string
		deviceType string
		want       []string
	}{
		{"Energy meters", "energy", []string{"L&T", "L&K", "Schneider", "Elmeasure", "Key Kad"}},
		{"Flow meters", "flow", []string{"LeHry", "Ultrasonic", "Water Meter"}},
		{"Unknown type yields empty list", "steam", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ManufacturersFor(tt.deviceType)
			if len(got) != len(tt.want) {
				t.Fatalf("ManufacturersFor(%q) = %v, want %v", tt.deviceType, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ManufacturersFor(%q)[%d] = %q, want %q", tt.deviceType, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestManufacturersForReturnsCopy verifies callers cannot mutate the table
func TestManufacturersForReturnsCopy(t *testing.T) {
	first := ManufacturersFor(DeviceTypeEnergy)
	first[0] = "mutated"

	second := ManufacturersFor(DeviceTypeEnergy)
	if second[0] != "L&T" {
		t.Errorf("manufacturer table was mutated through returned slice: %v", second)
	}
}

func TestDeviceTypeLabel(t *testing.T) {
	if got := DeviceTypeLabel("energy"); got != "Energy Meter" {
		t.Errorf("DeviceTypeLabel(energy) = %q, want Energy Meter", got)
	}
	if got := DeviceTypeLabel("flow"); got != "Flow Meter" {
		t.Errorf("DeviceTypeLabel(flow) = %q, want Flow Meter", got)
	}
	if got := DeviceTypeLabel("custom"); got != "custom" {
		t.Errorf("DeviceTypeLabel(custom) = %q, want pass-through", got)
	}
}
