package services

import (
	"testing"

	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAccountWithName(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")

	account, err := GetAccountWithName("alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, account.ID)

	_, err = GetAccountWithName("nobody")
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestSearchAccounts(t *testing.T) {
	setupDatabase(t)
	createAccount(t, "alice")
	createAccount(t, "alicia")
	createAccount(t, "bob")

	found, err := SearchAccounts("ali")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// Matching is case insensitive and covers nicknames
	found, err = SearchAccounts("ALICIA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alicia", found[0].Name)

	found, err = SearchAccounts("   ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGetAccountProfile(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")
	carol := createAccount(t, "carol")

	createPost(t, alice.ID, "first")
	createPost(t, alice.ID, "second")
	require.NoError(t, FollowAccount(bob.ID, alice.ID))
	require.NoError(t, FollowAccount(carol.ID, alice.ID))
	require.NoError(t, FollowAccount(alice.ID, bob.ID))

	profile, err := GetAccountProfile(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.Account.ID)
	assert.True(t, profile.IsFollowed)
	assert.EqualValues(t, 2, profile.FollowersCount)
	assert.EqualValues(t, 1, profile.FollowingCount)
	assert.Equal(t, 2, profile.PostCount)
	require.Len(t, profile.Posts, 2)

	profile, err = GetAccountProfile(alice.ID, carol.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsFollowed)

	_, err = GetAccountProfile("missing", bob.ID)
	assert.ErrorIs(t, err, status.ErrNotFound)
}
