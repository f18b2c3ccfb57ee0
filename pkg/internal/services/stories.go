package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/mediakit"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryLifespan is how long a story stays visible after publishing.
const StoryLifespan = 24 * time.Hour

type StoryRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	MediaURL  string `json:"media_url" validate:"required"`
	MediaType string `json:"media_type" validate:"required,oneof=IMAGE VIDEO"`
}

func NewStory(request StoryRequest) (models.Story, error) {
	var story models.Story
	if err := validate.Struct(request); err != nil {
		return story, fmt.Errorf("invalid story request: %w", status.ErrInvalidOperation)
	}

	author, err := GetAccountWithID(request.AccountID)
	if err != nil {
		return story, err
	}

	now := nowFn()
	story = models.Story{
		AccountID: author.ID,
		MediaURL:  request.MediaURL,
		MediaType: request.MediaType,
		ExpiresAt: now.Add(StoryLifespan),
	}
	story.CreatedAt = now

	if err := database.C.Create(&story).Error; err != nil {
		return story, fmt.Errorf("unable to create story: %v", err)
	}

	story.Account = author
	return story, nil
}

// UploadStoryMedia pushes a media file to the object storage and answers
// with its URL and detected media type. The extension gate rejects anything
// that is neither an accepted image nor video format.
func UploadStoryMedia(filename string, data []byte, contentType string) (string, string, error) {
	kind, err := mediakit.KindOf(filename)
	if err != nil {
		return "", "", err
	}
	if mediakit.U == nil {
		return "", "", fmt.Errorf("media uploader is not configured")
	}

	url, err := mediakit.U.Upload(data, filename, contentType)
	if err != nil {
		return "", "", err
	}
	return url, kind, nil
}

func GetStory(id string) (models.Story, error) {
	var story models.Story
	if err := database.C.Where("id = ?", id).Preload("Account").First(&story).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return story, fmt.Errorf("story %s: %w", id, status.ErrNotFound)
		}
		return story, fmt.Errorf("unable to get story: %v", err)
	}
	return story, nil
}

// ListStories returns the account's own active stories, newest first.
func ListStories(accountID string) ([]*models.Story, error) {
	if _, err := GetAccountWithID(accountID); err != nil {
		return nil, err
	}
	return listActiveStories(database.C.Where("account_id = ?", accountID), accountID)
}

// ListStoriesFromFollowing returns active stories authored by the accounts
// the viewer follows.
func ListStoriesFromFollowing(viewerID string) ([]*models.Story, error) {
	if _, err := GetAccountWithID(viewerID); err != nil {
		return nil, err
	}

	var authorIDs []string
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("account_id", &authorIDs).Error; err != nil {
		return nil, fmt.Errorf("unable to list followed accounts: %v", err)
	}
	if len(authorIDs) == 0 {
		return []*models.Story{}, nil
	}

	return listActiveStories(database.C.Where("account_id IN ?", authorIDs), viewerID)
}

func ListActiveStories(viewerID string) ([]*models.Story, error) {
	if _, err := GetAccountWithID(viewerID); err != nil {
		return nil, err
	}
	return listActiveStories(database.C, viewerID)
}

func listActiveStories(tx *gorm.DB, viewerID string) ([]*models.Story, error) {
	var items []*models.Story
	if err := tx.
		Where("expires_at > ?", nowFn()).
		Preload("Account").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list stories: %v", err)
	}

	if err := annotateStories(items, viewerID); err != nil {
		return items, err
	}
	return items, nil
}

func annotateStories(items []*models.Story, viewerID string) error {
	if len(items) == 0 {
		return nil
	}

	idx := lo.Map(items, func(item *models.Story, _ int) string {
		return item.ID
	})
	itemMap := lo.SliceToMap(items, func(item *models.Story) (string, *models.Story) {
		return item.ID, item
	})

	var viewCounts []struct {
		StoryID string
		Count   int64
	}
	if err := database.C.Model(&models.StoryView{}).
		Select("story_id, COUNT(id) as count").
		Where("story_id IN ?", idx).
		Group("story_id").
		Scan(&viewCounts).Error; err != nil {
		return fmt.Errorf("unable to count story views: %v", err)
	}
	for _, row := range viewCounts {
		if item, ok := itemMap[row.StoryID]; ok {
			item.Metric.ViewCount = row.Count
		}
	}

	if len(viewerID) == 0 {
		return nil
	}

	var viewedIDs []string
	if err := database.C.Model(&models.StoryView{}).
		Where("viewer_id = ? AND story_id IN ?", viewerID, idx).
		Pluck("story_id", &viewedIDs).Error; err != nil {
		return fmt.Errorf("unable to load viewer story views: %v", err)
	}
	for _, id := range viewedIDs {
		if item, ok := itemMap[id]; ok {
			item.Metric.Viewed = true
		}
	}

	return nil
}

// ViewStory records a view at most once per viewer. Repeat views and the
// author watching their own story are silent no-ops.
func ViewStory(storyID, viewerID string) error {
	story, err := GetStory(storyID)
	if err != nil {
		return err
	}
	if story.AccountID == viewerID {
		return nil
	}
	if _, err := GetAccountWithID(viewerID); err != nil {
		return err
	}

	view := models.StoryView{
		StoryID:  story.ID,
		ViewerID: viewerID,
		ViewedAt: nowFn(),
	}
	if err := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&view).Error; err != nil {
		return fmt.Errorf("unable to record story view: %v", err)
	}
	return nil
}

func ListStoryViewers(storyID string) ([]models.StoryView, error) {
	if _, err := GetStory(storyID); err != nil {
		return nil, err
	}

	var views []models.StoryView
	if err := database.C.
		Where("story_id = ?", storyID).
		Preload("Viewer").
		Order("viewed_at DESC").
		Find(&views).Error; err != nil {
		return nil, fmt.Errorf("unable to list story viewers: %v", err)
	}
	return views, nil
}

// DeleteStory removes a story and its views; only the author may do it.
func DeleteStory(storyID, requesterID string) error {
	story, err := GetStory(storyID)
	if err != nil {
		return err
	}
	if story.AccountID != requesterID {
		return fmt.Errorf("only the author can delete a story: %w", status.ErrPermissionDenied)
	}

	err = database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id = ?", story.ID).Delete(&models.StoryView{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", story.ID).Delete(&models.Story{}).Error
	})
	if err != nil {
		return fmt.Errorf("unable to delete story: %v", err)
	}

	if mediakit.U != nil {
		if err := mediakit.U.Delete(story.MediaURL); err != nil {
			log.Warn().Err(err).Str("url", story.MediaURL).Msg("An error occurred when deleting story media...")
		}
	}

	return nil
}

// SweepExpiredStories bulk-deletes every story past its expiry, views
// included. Readers already filter by expires_at, so it can run while
// requests are in flight.
func SweepExpiredStories(now time.Time) (int64, error) {
	var expiredIDs []string
	if err := database.C.Model(&models.Story{}).
		Where("expires_at < ?", now).
		Pluck("id", &expiredIDs).Error; err != nil {
		return 0, fmt.Errorf("unable to list expired stories: %v", err)
	}
	if len(expiredIDs) == 0 {
		return 0, nil
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id IN ?", expiredIDs).Delete(&models.StoryView{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", expiredIDs).Delete(&models.Story{}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("unable to sweep expired stories: %v", err)
	}
	return int64(len(expiredIDs)), nil
}

// DoAutoDatabaseCleanup is the periodic maintenance entry wired to the
// scheduler in main.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up expired stories...")

	count, err := SweepExpiredStories(nowFn())
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when cleaning up expired stories...")
		return
	}
	log.Debug().Int64("count", count).Msg("Expired stories cleaned up.")
}
