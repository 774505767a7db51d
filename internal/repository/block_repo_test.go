package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/models"
)

func userIDs(users []models.User) []uint {
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func TestExcludeBlockedNoBlocks(t *testing.T) {
	candidates := []models.User{{ID: 2}, {ID: 3}}
	out := excludeBlocked(1, candidates, nil)
	assert.Equal(t, []uint{2, 3}, userIDs(out))
}

func TestExcludeBlockedIsSymmetric(t *testing.T) {
	candidates := []models.User{{ID: 2}, {ID: 3}, {ID: 4}}

	// requester blocked 2; 3 blocked the requester. Both directions hide.
	blocks := []models.Block{
		{BlockerID: 1, BlockedID: 2},
		{BlockerID: 3, BlockedID: 1},
	}
	out := excludeBlocked(1, candidates, blocks)
	assert.Equal(t, []uint{4}, userIDs(out))
}

func TestExcludeBlockedEitherDirectionHides(t *testing.T) {
	candidates := []models.User{{ID: 2}, {ID: 3}}

	out := excludeBlocked(1, candidates, []models.Block{{BlockerID: 1, BlockedID: 2}})
	assert.Equal(t, []uint{3}, userIDs(out), "requester blocked the candidate")

	out = excludeBlocked(1, candidates, []models.Block{{BlockerID: 2, BlockedID: 1}})
	assert.Equal(t, []uint{3}, userIDs(out), "candidate blocked the requester")
}

func TestExcludeBlockedAllHidden(t *testing.T) {
	candidates := []models.User{{ID: 2}, {ID: 3}}
	blocks := []models.Block{
		{BlockerID: 1, BlockedID: 2},
		{BlockerID: 1, BlockedID: 3},
	}
	out := excludeBlocked(1, candidates, blocks)
	assert.Empty(t, out)
}

func TestReblockAfterUnblock(t *testing.T) {
	db := testDB(t)
	repo := NewBlockRepository(db)

	b := &models.Block{BlockerID: 1, BlockedID: 2}
	require.NoError(t, repo.Create(b))

	removed, err := repo.DeleteByID(b.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	exists, err := repo.Exists(1, 2)
	require.NoError(t, err)
	require.False(t, exists)

	// the unblocked pair key must be free again
	again := &models.Block{BlockerID: 1, BlockedID: 2}
	require.NoError(t, repo.Create(again), "re-blocking after unblock must succeed")

	exists, err = repo.Exists(1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	blocked, err := repo.IsBlockedPair(2, 1)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestDeleteByIDWrongOwner(t *testing.T) {
	db := testDB(t)
	repo := NewBlockRepository(db)

	b := &models.Block{BlockerID: 1, BlockedID: 2}
	require.NoError(t, repo.Create(b))

	removed, err := repo.DeleteByID(b.ID, 99)
	require.NoError(t, err)
	assert.Zero(t, removed, "only the blocker can remove their block")

	exists, err := repo.Exists(1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
}
