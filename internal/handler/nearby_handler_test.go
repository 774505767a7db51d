package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/discovery"
	"huddle/internal/models"
)

type fakePresence struct {
	users []models.User
	err   error
}

func (f *fakePresence) ListOnlineWithin(excludeUserID uint, window time.Duration) ([]models.User, error) {
	return f.users, f.err
}

type fakeVisibility struct{}

func (fakeVisibility) FilterBlocked(requesterID uint, candidates []models.User) ([]models.User, error) {
	return candidates, nil
}

type fakeLocations struct {
	fixes map[uint]models.LocationFix
}

func (f *fakeLocations) LatestWithin(userIDs []uint, window time.Duration) (map[uint]models.LocationFix, error) {
	return f.fixes, nil
}

func nearbyRouter(engine *discovery.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
	})
	r.GET("/users/nearby", NewNearbyHandler(engine).FindNearby)
	return r
}

func TestFindNearbyRejectsBadParams(t *testing.T) {
	engine := discovery.NewEngine(&fakePresence{}, fakeVisibility{}, &fakeLocations{})
	r := nearbyRouter(engine)

	cases := []struct {
		name string
		url  string
	}{
		{"missing lat", "/users/nearby?lon=0&radius=1"},
		{"missing lon", "/users/nearby?lat=0&radius=1"},
		{"missing radius", "/users/nearby?lat=0&lon=0"},
		{"non-numeric radius", "/users/nearby?lat=0&lon=0&radius=abc"},
		{"non-numeric lat", "/users/nearby?lat=north&lon=0&radius=1"},
		{"radius above cap", "/users/nearby?lat=0&lon=0&radius=5.01"},
		{"negative radius", "/users/nearby?lat=0&lon=0&radius=-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestFindNearbyReturnsRankedResults(t *testing.T) {
	presence := &fakePresence{users: []models.User{
		{ID: 2, Username: "kai"},
		{ID: 3, Username: "mara"},
	}}
	locations := &fakeLocations{fixes: map[uint]models.LocationFix{
		2: {UserID: 2, Latitude: 0, Longitude: 0.002},
		3: {UserID: 3, Latitude: 0, Longitude: 0.001},
	}}
	engine := discovery.NewEngine(presence, fakeVisibility{}, locations)
	r := nearbyRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/nearby?lat=0&lon=0&radius=5", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []discovery.NearbyUser `json:"results"`
		Count   int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "mara", body.Results[0].Name, "closer user ranks first")
	assert.Equal(t, "kai", body.Results[1].Name)
	assert.Greater(t, body.Results[1].DistanceKm, body.Results[0].DistanceKm)
}

func TestFindNearbyEmptyResultIsOK(t *testing.T) {
	engine := discovery.NewEngine(&fakePresence{}, fakeVisibility{}, &fakeLocations{})
	r := nearbyRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/nearby?lat=0&lon=0&radius=5", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[],"count":0}`, w.Body.String())
}

func TestFindNearbyStoreFailureIs500(t *testing.T) {
	engine := discovery.NewEngine(&fakePresence{err: errors.New("db gone")}, fakeVisibility{}, &fakeLocations{})
	r := nearbyRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/nearby?lat=0&lon=0&radius=5", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db gone", "internal detail stays out of the response")
}
