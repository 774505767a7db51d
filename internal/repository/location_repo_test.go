package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"huddle/internal/domain"
	"huddle/internal/models"
)

func TestLatestWithinFreshnessWindow(t *testing.T) {
	db := testDB(t)
	clk := newFakeClock()
	loc := NewLocationRepository(db, clk)
	now := clk.Now()

	inserted, err := loc.AppendBatch([]models.LocationFix{
		{UserID: 1, Latitude: 1, Longitude: 1, RecordedAt: now.Add(-299 * time.Second)},
		{UserID: 2, Latitude: 2, Longitude: 2, RecordedAt: now.Add(-301 * time.Second)},
	})
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	out, err := loc.LatestWithin([]uint{1, 2}, domain.LocationWindow)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out, uint(1), "fix just inside the 300s window qualifies")
	assert.NotContains(t, out, uint(2), "301s-old fix is too stale")
}

func TestLatestWithinPicksMostRecentFix(t *testing.T) {
	db := testDB(t)
	clk := newFakeClock()
	loc := NewLocationRepository(db, clk)
	now := clk.Now()

	_, err := loc.AppendBatch([]models.LocationFix{
		{UserID: 1, Latitude: 5, Longitude: 5, RecordedAt: now.Add(-200 * time.Second)},
		{UserID: 1, Latitude: 6, Longitude: 6, RecordedAt: now.Add(-100 * time.Second)},
	})
	require.NoError(t, err)

	out, err := loc.LatestWithin([]uint{1}, domain.LocationWindow)
	require.NoError(t, err)
	require.Contains(t, out, uint(1))
	assert.InDelta(t, 6.0, out[1].Latitude, 1e-9, "newer fix wins")
}

func TestMostRecentForUserStaleOnly(t *testing.T) {
	db := testDB(t)
	clk := newFakeClock()
	loc := NewLocationRepository(db, clk)
	now := clk.Now()

	_, err := loc.AppendBatch([]models.LocationFix{
		{UserID: 1, Latitude: 1, Longitude: 1, RecordedAt: now.Add(-301 * time.Second)},
	})
	require.NoError(t, err)

	_, err = loc.MostRecentForUser(1, domain.LocationWindow)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	clk.Advance(-2 * time.Second) // fix now 299s old relative to the clock
	fix, err := loc.MostRecentForUser(1, domain.LocationWindow)
	require.NoError(t, err)
	assert.Equal(t, uint(1), fix.UserID)
}
