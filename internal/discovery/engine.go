// Package discovery implements the proximity query: given a requester's
// coordinates and a radius it produces a ranked, capped list of nearby
// visible online users. Presence, visibility and location are read fresh
// from their sources on every call; the service keeps no candidate state
// between requests.
package discovery

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"huddle/internal/domain"
	"huddle/internal/models"
	"huddle/pkg/geo"
)

var (
	ErrInvalidCoordinate = errors.New("latitude and longitude must be finite numbers")
	ErrInvalidRadius     = fmt.Errorf("radius must be between 0 and %g km", domain.MaxRadiusKm)
)

// PresenceSource yields users flagged online with activity inside the
// window, excluding the requester.
type PresenceSource interface {
	ListOnlineWithin(excludeUserID uint, window time.Duration) ([]models.User, error)
}

// VisibilitySource removes candidates blocked in either direction
// relative to the requester.
type VisibilitySource interface {
	FilterBlocked(requesterID uint, candidates []models.User) ([]models.User, error)
}

// LocationSource yields the freshest fix per candidate inside the
// window; candidates without one are absent from the map.
type LocationSource interface {
	LatestWithin(userIDs []uint, window time.Duration) (map[uint]models.LocationFix, error)
}

// NearbyUser is one ranked result. Exact coordinates are never returned;
// only the rounded distance is disclosed.
type NearbyUser struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	AvatarURL  string  `json:"avatar_url"`
	DistanceKm float64 `json:"distance_km"`
}

type Engine struct {
	presence   PresenceSource
	visibility VisibilitySource
	locations  LocationSource
}

func NewEngine(presence PresenceSource, visibility VisibilitySource, locations LocationSource) *Engine {
	return &Engine{presence: presence, visibility: visibility, locations: locations}
}

// FindNearby runs the discovery pipeline for an authenticated requester:
// online candidates, block filter, freshest fixes, Haversine distance,
// radius cut, then round / rank / cap / project. Each stage that empties
// the candidate set short-circuits before the next store read. Any store
// failure aborts the whole call; there are no partial results.
func (e *Engine) FindNearby(requesterID uint, lat, lng, radiusKm float64) ([]NearbyUser, error) {
	if !finite(lat) || !finite(lng) || !finite(radiusKm) {
		return nil, ErrInvalidCoordinate
	}
	if radiusKm < 0 || radiusKm > domain.MaxRadiusKm {
		return nil, ErrInvalidRadius
	}

	candidates, err := e.presence.ListOnlineWithin(requesterID, domain.OnlineWindow)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []NearbyUser{}, nil
	}

	visible, err := e.visibility.FilterBlocked(requesterID, candidates)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return []NearbyUser{}, nil
	}

	ids := make([]uint, len(visible))
	for i, u := range visible {
		ids[i] = u.ID
	}
	fixes, err := e.locations.LatestWithin(ids, domain.LocationWindow)
	if err != nil {
		return nil, err
	}

	results := make([]NearbyUser, 0, len(visible))
	for _, u := range visible {
		fix, ok := fixes[u.ID]
		if !ok {
			continue // no recent fix means not nearby, not an error
		}
		d := geo.HaversineKm(lat, lng, fix.Latitude, fix.Longitude)
		if d > radiusKm {
			continue
		}
		results = append(results, NearbyUser{
			ID:         u.ID,
			Name:       u.DisplayName(),
			AvatarURL:  u.AvatarURL,
			DistanceKm: geo.RoundKm(d),
		})
	}

	// Rank on the rounded distance; equal distances fall back to the
	// user id so the order is deterministic.
	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm == results[j].DistanceKm {
			return results[i].ID < results[j].ID
		}
		return results[i].DistanceKm < results[j].DistanceKm
	})
	if len(results) > domain.MaxNearbyResults {
		results = results[:domain.MaxNearbyResults]
	}
	return results, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
