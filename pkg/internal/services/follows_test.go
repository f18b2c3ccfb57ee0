package services

import (
	"testing"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAccount(t *testing.T) {
	t.Run("following twice leaves one edge", func(t *testing.T) {
		setupDatabase(t)
		alice := createAccount(t, "alice")
		bob := createAccount(t, "bob")

		require.NoError(t, FollowAccount(alice.ID, bob.ID))
		require.NoError(t, FollowAccount(alice.ID, bob.ID))

		var count int64
		require.NoError(t, database.C.Model(&models.Follow{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
		assert.True(t, IsFollowing(bob.ID, alice.ID))
		assert.False(t, IsFollowing(alice.ID, bob.ID))
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		setupDatabase(t)
		alice := createAccount(t, "alice")

		err := FollowAccount(alice.ID, alice.ID)
		assert.ErrorIs(t, err, status.ErrInvalidOperation)
	})

	t.Run("unknown accounts are rejected", func(t *testing.T) {
		setupDatabase(t)
		alice := createAccount(t, "alice")

		assert.ErrorIs(t, FollowAccount(alice.ID, "missing"), status.ErrNotFound)
		assert.ErrorIs(t, FollowAccount("missing", alice.ID), status.ErrNotFound)
	})
}

func TestUnfollowAccount(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")

	// Removing an edge that never existed is a no-op
	require.NoError(t, UnfollowAccount(alice.ID, bob.ID))

	require.NoError(t, FollowAccount(alice.ID, bob.ID))
	require.NoError(t, UnfollowAccount(alice.ID, bob.ID))
	assert.False(t, IsFollowing(bob.ID, alice.ID))
}

func TestRemoveFollower(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")

	require.NoError(t, FollowAccount(alice.ID, bob.ID))
	require.NoError(t, RemoveFollower(bob.ID, alice.ID))
	assert.False(t, IsFollowing(bob.ID, alice.ID))
}

func TestFollowCountsAndListings(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")
	carol := createAccount(t, "carol")

	require.NoError(t, FollowAccount(bob.ID, alice.ID))
	require.NoError(t, FollowAccount(carol.ID, alice.ID))
	require.NoError(t, FollowAccount(alice.ID, carol.ID))

	assert.EqualValues(t, 2, CountFollowers(alice.ID))
	assert.EqualValues(t, 1, CountFollowing(alice.ID))

	followers, err := ListFollowers(alice.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := ListFollowing(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, carol.ID, following[0].ID)
}

func TestSuggestAccounts(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")
	carol := createAccount(t, "carol")
	dave := createAccount(t, "dave")

	require.NoError(t, FollowAccount(alice.ID, bob.ID))

	suggested, err := SuggestAccounts(alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, suggested, 2)
	assert.Equal(t, carol.ID, suggested[0].ID)
	assert.Equal(t, dave.ID, suggested[1].ID)

	limited, err := SuggestAccounts(alice.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
