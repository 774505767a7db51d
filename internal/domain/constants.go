package domain

import "time"

const (
	PresenceOnline  = "ONLINE"
	PresenceOffline = "OFFLINE"
)

const (
	GenderFemale      = "FEMALE"
	GenderMale        = "MALE"
	GenderNonBinary   = "NON_BINARY"
	GenderUnspecified = "UNSPECIFIED"
)

// Discovery limits. The 5 km cap is a deliberate scope limit: this is a
// "who's around me right now" feature, not general geosearch.
const (
	MaxRadiusKm      = 5.0
	MaxNearbyResults = 50
)

// Freshness windows. The read-side online window is looser than the
// stale sweep so one missed heartbeat cycle (clients send every ~30-50s)
// does not flap visibility. An ONLINE flag is advisory and is always
// re-validated against OnlineWindow on read.
const (
	OnlineWindow   = 120 * time.Second
	StaleAfter     = 60 * time.Second
	LocationWindow = 300 * time.Second
)

func ValidPresenceStatus(s string) bool {
	return s == PresenceOnline || s == PresenceOffline
}

func ValidGender(s string) bool {
	switch s {
	case GenderFemale, GenderMale, GenderNonBinary, GenderUnspecified:
		return true
	}
	return false
}
