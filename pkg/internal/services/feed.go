package services

import (
	"errors"
	"fmt"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// ListFeed returns every post not authored by the viewer, newest first,
// annotated with the viewer's like and save state plus live counts.
func ListFeed(viewerID string) ([]*models.Post, error) {
	if _, err := GetAccountWithID(viewerID); err != nil {
		return nil, err
	}

	var items []*models.Post
	if err := database.C.
		Where("account_id != ?", viewerID).
		Preload("Account").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list feed: %v", err)
	}

	if err := annotatePosts(items, viewerID); err != nil {
		return items, err
	}
	return items, nil
}

// ListAuthored returns one author's posts, newest first, annotated for the
// viewer the same way the feed is.
func ListAuthored(viewerID, authorID string) ([]*models.Post, error) {
	if _, err := GetAccountWithID(authorID); err != nil {
		return nil, err
	}

	var items []*models.Post
	if err := database.C.
		Where("account_id = ?", authorID).
		Preload("Account").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list authored posts: %v", err)
	}

	if err := annotatePosts(items, viewerID); err != nil {
		return items, err
	}
	return items, nil
}

// ListSaved returns the posts in the viewer's saved collection, newest first.
// A viewer without a collection gets an empty listing.
func ListSaved(viewerID string) ([]*models.Post, error) {
	if _, err := GetAccountWithID(viewerID); err != nil {
		return nil, err
	}

	var collection models.SavedPost
	if err := database.C.Where("account_id = ?", viewerID).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*models.Post{}, nil
		}
		return nil, fmt.Errorf("unable to get saved collection: %v", err)
	}

	var postIDs []string
	if err := database.C.Model(&models.SavedPostDetail{}).
		Where("saved_post_id = ?", collection.ID).
		Pluck("post_id", &postIDs).Error; err != nil {
		return nil, fmt.Errorf("unable to list saved memberships: %v", err)
	}
	if len(postIDs) == 0 {
		return []*models.Post{}, nil
	}

	var items []*models.Post
	if err := database.C.
		Where("id IN ?", postIDs).
		Preload("Account").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list saved posts: %v", err)
	}

	if err := annotatePosts(items, viewerID); err != nil {
		return items, err
	}
	return items, nil
}

// annotatePosts fills every post's Metric with batched queries instead of
// one round trip per row.
func annotatePosts(items []*models.Post, viewerID string) error {
	if len(items) == 0 {
		return nil
	}

	idx := lo.Map(items, func(item *models.Post, _ int) string {
		return item.ID
	})
	itemMap := lo.SliceToMap(items, func(item *models.Post) (string, *models.Post) {
		return item.ID, item
	})

	var likeCounts []struct {
		PostID string
		Count  int64
	}
	if err := database.C.Model(&models.PostLike{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN ?", idx).
		Group("post_id").
		Scan(&likeCounts).Error; err != nil {
		return fmt.Errorf("unable to count post likes: %v", err)
	}
	for _, row := range likeCounts {
		if item, ok := itemMap[row.PostID]; ok {
			item.Metric.LikeCount = row.Count
		}
	}

	var commentCounts []struct {
		PostID string
		Count  int64
	}
	if err := database.C.Model(&models.Comment{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN ?", idx).
		Group("post_id").
		Scan(&commentCounts).Error; err != nil {
		return fmt.Errorf("unable to count post comments: %v", err)
	}
	for _, row := range commentCounts {
		if item, ok := itemMap[row.PostID]; ok {
			item.Metric.CommentCount = row.Count
		}
	}

	if len(viewerID) == 0 {
		return nil
	}

	var likedIDs []string
	if err := database.C.Model(&models.PostLike{}).
		Where("account_id = ? AND post_id IN ?", viewerID, idx).
		Pluck("post_id", &likedIDs).Error; err != nil {
		return fmt.Errorf("unable to load viewer likes: %v", err)
	}
	for _, id := range likedIDs {
		if item, ok := itemMap[id]; ok {
			item.Metric.Liked = true
		}
	}

	var savedIDs []string
	if err := database.C.Model(&models.SavedPostDetail{}).
		Joins("JOIN saved_posts ON saved_posts.id = saved_post_details.saved_post_id").
		Where("saved_posts.account_id = ? AND saved_post_details.post_id IN ?", viewerID, idx).
		Pluck("saved_post_details.post_id", &savedIDs).Error; err != nil {
		return fmt.Errorf("unable to load viewer saved state: %v", err)
	}
	for _, id := range savedIDs {
		if item, ok := itemMap[id]; ok {
			item.Metric.Saved = true
		}
	}

	return nil
}
