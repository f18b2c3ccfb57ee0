package services

import (
	"testing"

	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFeed(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")

	older := createPost(t, alice.ID, "older from alice")
	newer := createPost(t, alice.ID, "newer from alice")
	createPost(t, bob.ID, "from bob himself")

	feed, err := ListFeed(bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// Newest first, never the viewer's own posts
	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)
	assert.Equal(t, alice.ID, feed[0].Account.ID)
	assert.Equal(t, "alice", feed[0].Account.Name)
}

func TestListFeedAnnotations(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")
	carol := createAccount(t, "carol")
	post := createPost(t, alice.ID, "hello world")

	require.NoError(t, LikePost(bob.ID, post.ID))
	require.NoError(t, LikePost(carol.ID, post.ID))
	require.NoError(t, SavePost(post.ID, bob.ID))
	_, err := AddComment(CommentRequest{SenderID: carol.ID, PostID: post.ID, Content: "nice"})
	require.NoError(t, err)

	feed, err := ListFeed(bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.EqualValues(t, 2, feed[0].Metric.LikeCount)
	assert.EqualValues(t, 1, feed[0].Metric.CommentCount)
	assert.True(t, feed[0].Metric.Liked)
	assert.True(t, feed[0].Metric.Saved)

	// Carol liked but never saved
	feed, err = ListFeed(carol.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Metric.Liked)
	assert.False(t, feed[0].Metric.Saved)
}

func TestListAuthored(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")

	first := createPost(t, alice.ID, "first")
	second := createPost(t, alice.ID, "second")
	createPost(t, bob.ID, "unrelated")

	posts, err := ListAuthored(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, []string{second.ID, first.ID}, lo.Map(posts, func(p *models.Post, _ int) string {
		return p.ID
	}))
}

func TestListSaved(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")

	first := createPost(t, alice.ID, "first")
	second := createPost(t, alice.ID, "second")
	createPost(t, alice.ID, "never saved")

	// No collection yet means an empty listing
	saved, err := ListSaved(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	require.NoError(t, SavePost(first.ID, bob.ID))
	require.NoError(t, SavePost(second.ID, bob.ID))

	saved, err = ListSaved(bob.ID)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, second.ID, saved[0].ID)
	assert.Equal(t, first.ID, saved[1].ID)
	assert.True(t, saved[0].Metric.Saved)
}

// The full round trip: publish, discover, like, re-check, delete.
func TestFeedEndToEnd(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")

	post, err := NewPost(PostRequest{
		AccountID: alice.ID,
		Content:   "a sunset over the bay",
		Images:    []string{"https://cdn.example.com/sunset.jpg"},
	})
	require.NoError(t, err)

	feed, err := ListFeed(bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.False(t, feed[0].Metric.Liked)
	assert.EqualValues(t, 0, feed[0].Metric.LikeCount)

	require.NoError(t, LikePost(bob.ID, post.ID))

	feed, err = ListFeed(bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Metric.Liked)
	assert.EqualValues(t, 1, feed[0].Metric.LikeCount)

	require.NoError(t, DeletePost(post.ID))

	feed, err = ListFeed(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
