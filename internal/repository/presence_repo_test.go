package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/domain"
	"huddle/internal/models"
)

func seedUser(t *testing.T, repo *UserRepository, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, repo.Create(u))
	return u
}

func TestListOnlineWithinFreshnessWindow(t *testing.T) {
	db := testDB(t)
	clk := newFakeClock()
	users := NewUserRepository(db)
	presence := NewPresenceRepository(db, clk)

	alice := seedUser(t, users, "alice")
	_, err := presence.Heartbeat(alice.ID, domain.PresenceOnline)
	require.NoError(t, err)

	// 119s after the heartbeat: still inside the 120s window
	clk.Advance(119 * time.Second)
	online, err := presence.ListOnlineWithin(0, domain.OnlineWindow)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, alice.ID, online[0].ID)

	// 121s after: out, even though the status flag still says ONLINE
	clk.Advance(2 * time.Second)
	online, err = presence.ListOnlineWithin(0, domain.OnlineWindow)
	require.NoError(t, err)
	assert.Empty(t, online)
}

func TestListOnlineWithinExcludesRequesterAndOffline(t *testing.T) {
	db := testDB(t)
	clk := newFakeClock()
	users := NewUserRepository(db)
	presence := NewPresenceRepository(db, clk)

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	carol := seedUser(t, users, "carol")
	_, err := presence.Heartbeat(alice.ID, domain.PresenceOnline)
	require.NoError(t, err)
	_, err = presence.Heartbeat(bob.ID, domain.PresenceOnline)
	require.NoError(t, err)
	_, err = presence.Heartbeat(carol.ID, domain.PresenceOffline)
	require.NoError(t, err)

	online, err := presence.ListOnlineWithin(alice.ID, domain.OnlineWindow)
	require.NoError(t, err)
	require.Len(t, online, 1, "requester and offline users stay out")
	assert.Equal(t, bob.ID, online[0].ID)
}

func TestHeartbeatRefreshesActivity(t *testing.T) {
	db := testDB(t)
	clk := newFakeClock()
	users := NewUserRepository(db)
	presence := NewPresenceRepository(db, clk)

	alice := seedUser(t, users, "alice")
	_, err := presence.Heartbeat(alice.ID, domain.PresenceOnline)
	require.NoError(t, err)

	// a heartbeat just before expiry keeps the user visible
	clk.Advance(119 * time.Second)
	_, err = presence.Heartbeat(alice.ID, "")
	require.NoError(t, err)

	clk.Advance(119 * time.Second)
	online, err := presence.ListOnlineWithin(0, domain.OnlineWindow)
	require.NoError(t, err)
	assert.Len(t, online, 1)
}

func TestDemoteStaleFlipsIdleUsers(t *testing.T) {
	db := testDB(t)
	clk := newFakeClock()
	users := NewUserRepository(db)
	presence := NewPresenceRepository(db, clk)

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	_, err := presence.Heartbeat(alice.ID, domain.PresenceOnline)
	require.NoError(t, err)

	clk.Advance(61 * time.Second)
	_, err = presence.Heartbeat(bob.ID, domain.PresenceOnline)
	require.NoError(t, err)

	demoted, err := presence.DemoteStale(domain.StaleAfter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), demoted, "only the idle user is demoted")

	p, err := presence.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PresenceOffline, p.Status)
	p, err = presence.GetByUserID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PresenceOnline, p.Status)

	demoted, err = presence.DemoteStale(domain.StaleAfter)
	require.NoError(t, err)
	assert.Zero(t, demoted, "sweep is idempotent")
}
