package document

import "fmt"

// Boodskap platform constants. The domain key and broker conventions are
// fixed by the platform and baked into the gateway firmware.
const (
	boodskapDomainKey = "BHEZISEWY"

	// BoodskapBrokerURL is the fixed broker for both environments.
	BoodskapBrokerURL = "zedbee.io"

	boodskapTestUser = "test"
	boodskapTestPass = "test@123"
	boodskapProdUser = "production"
	boodskapProdPass = "production@123"
)

// DeriveTopics builds the publish/subscribe/ack topic set for a device.
//
// The boodskap platform has a fixed topic scheme keyed on the domain key and
// device ID; every other platform gets simple deviceID-prefixed topics.
func DeriveTopics(platform, deviceID string) TopicSet {
	if platform == PlatformBoodskap {
		return TopicSet{
			Pub: fmt.Sprintf("/%s/device/%s/msgs/gateway/1/106", boodskapDomainKey, deviceID),
			Sub: fmt.Sprintf("/%s/device/%s/cmds", boodskapDomainKey, deviceID),
			Ack: fmt.Sprintf("/%s/device/%s/msgs/gateway/1/103", boodskapDomainKey, deviceID),
		}
	}
	return TopicSet{
		Pub: deviceID + "/publish",
		Sub: deviceID + "/subscribe",
		Ack: deviceID + "/ack",
	}
}

// AutoFillBroker returns broker credentials derived from the platform and
// environment selection, and whether they should be applied.
//
// Selecting the "other" environment always clears all three fields for
// manual entry, regardless of platform. The boodskap platform fills its
// fixed broker with environment-specific credentials: "testing" gets the
// test account, any other non-"other" environment gets production. For
// other platforms nothing is auto-filled.
func AutoFillBroker(platform, platformType string) (url, user, pass string, apply bool) {
	if platformType == PlatformTypeOther {
		return "", "", "", true
	}
	if platform != PlatformBoodskap {
		return "", "", "", false
	}
	if platformType == PlatformTypeTesting {
		return BoodskapBrokerURL, boodskapTestUser, boodskapTestPass, true
	}
	return BoodskapBrokerURL, boodskapProdUser, boodskapProdPass, true
}
