package services

import (
	"testing"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePost(t *testing.T) {
	t.Run("duplicate likes collapse to one row", func(t *testing.T) {
		setupDatabase(t)
		alice := createAccount(t, "alice")
		bob := createAccount(t, "bob")
		post := createPost(t, alice.ID, "hello world")

		require.NoError(t, LikePost(bob.ID, post.ID))
		require.NoError(t, LikePost(bob.ID, post.ID))

		assert.EqualValues(t, 1, CountPostLikes(post.ID))
		assert.True(t, IsPostLikedBy(post.ID, bob.ID))
	})

	t.Run("missing references are rejected", func(t *testing.T) {
		setupDatabase(t)
		alice := createAccount(t, "alice")
		post := createPost(t, alice.ID, "hello world")

		assert.ErrorIs(t, LikePost("missing", post.ID), status.ErrNotFound)
		assert.ErrorIs(t, LikePost(alice.ID, "missing"), status.ErrNotFound)
	})
}

func TestUnlikePost(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")
	post := createPost(t, alice.ID, "hello world")

	// Unliking without a like is a no-op
	require.NoError(t, UnlikePost(bob.ID, post.ID))

	require.NoError(t, LikePost(bob.ID, post.ID))
	require.NoError(t, UnlikePost(bob.ID, post.ID))
	assert.EqualValues(t, 0, CountPostLikes(post.ID))
	assert.False(t, IsPostLikedBy(post.ID, bob.ID))
}

func TestToggleCommentLike(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")
	post := createPost(t, alice.ID, "hello world")

	comment, err := AddComment(CommentRequest{SenderID: alice.ID, PostID: post.ID, Content: "first"})
	require.NoError(t, err)

	liked, err := ToggleCommentLike(comment.ID, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, liked.Metric.LikeCount)
	assert.True(t, liked.Metric.Liked)
	assert.True(t, IsCommentLikedBy(comment.ID, bob.ID))

	// Toggling twice restores the original state
	unliked, err := ToggleCommentLike(comment.ID, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unliked.Metric.LikeCount)
	assert.False(t, unliked.Metric.Liked)
	assert.False(t, IsCommentLikedBy(comment.ID, bob.ID))

	var rows int64
	require.NoError(t, database.C.Model(&models.CommentLike{}).Count(&rows).Error)
	assert.EqualValues(t, 0, rows)

	_, err = ToggleCommentLike("missing", bob.ID)
	assert.ErrorIs(t, err, status.ErrNotFound)
	_, err = ToggleCommentLike(comment.ID, "missing")
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestCountCommentLikes(t *testing.T) {
	setupDatabase(t)
	alice := createAccount(t, "alice")
	bob := createAccount(t, "bob")
	carol := createAccount(t, "carol")
	post := createPost(t, alice.ID, "hello world")

	comment, err := AddComment(CommentRequest{SenderID: alice.ID, PostID: post.ID, Content: "first"})
	require.NoError(t, err)

	_, err = ToggleCommentLike(comment.ID, bob.ID)
	require.NoError(t, err)
	_, err = ToggleCommentLike(comment.ID, carol.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, CountCommentLikes(comment.ID))
	assert.True(t, IsCommentLikedBy(comment.ID, carol.ID))
	assert.False(t, IsCommentLikedBy(comment.ID, alice.ID))
}
