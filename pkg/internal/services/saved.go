package services

import (
	"errors"
	"fmt"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateSavedPost returns the account's bookmark collection, creating
// it on first use. The insert goes through ON CONFLICT so two concurrent
// first saves converge on the same row.
func GetOrCreateSavedPost(accountID string) (models.SavedPost, error) {
	var collection models.SavedPost
	if _, err := GetAccountWithID(accountID); err != nil {
		return collection, err
	}

	fresh := models.SavedPost{AccountID: accountID}
	if err := database.C.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return collection, fmt.Errorf("unable to create saved collection: %v", err)
	}

	if err := database.C.Where("account_id = ?", accountID).First(&collection).Error; err != nil {
		return collection, fmt.Errorf("unable to get saved collection: %v", err)
	}
	return collection, nil
}

// SavePost adds a post to the account's collection. Saving the same post
// twice is an absorbed no-op thanks to the unique membership pair.
func SavePost(postID, accountID string) error {
	if _, err := GetPost(postID); err != nil {
		return err
	}

	collection, err := GetOrCreateSavedPost(accountID)
	if err != nil {
		return err
	}

	detail := models.SavedPostDetail{
		SavedPostID: collection.ID,
		PostID:      postID,
	}
	if err := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&detail).Error; err != nil {
		return fmt.Errorf("unable to create saved membership: %v", err)
	}
	return nil
}

// RemoveSavedPost drops a membership and deletes the collection itself once
// its last membership is gone.
func RemoveSavedPost(postID, accountID string) error {
	if _, err := GetAccountWithID(accountID); err != nil {
		return err
	}
	if _, err := GetPost(postID); err != nil {
		return err
	}

	var collection models.SavedPost
	if err := database.C.Where("account_id = ?", accountID).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("saved collection of account %s: %w", accountID, status.ErrNotFound)
		}
		return fmt.Errorf("unable to get saved collection: %v", err)
	}

	var detail models.SavedPostDetail
	if err := database.C.
		Where("saved_post_id = ? AND post_id = ?", collection.ID, postID).
		First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("saved membership of post %s: %w", postID, status.ErrNotFound)
		}
		return fmt.Errorf("unable to get saved membership: %v", err)
	}

	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&detail).Error; err != nil {
			return err
		}

		var left int64
		if err := tx.Model(&models.SavedPostDetail{}).
			Where("saved_post_id = ?", collection.ID).
			Count(&left).Error; err != nil {
			return err
		}
		if left == 0 {
			return tx.Delete(&collection).Error
		}
		return nil
	})
}

func IsPostSaved(postID, accountID string) bool {
	var count int64
	if err := database.C.Model(&models.SavedPostDetail{}).
		Joins("JOIN saved_posts ON saved_posts.id = saved_post_details.saved_post_id").
		Where("saved_posts.account_id = ? AND saved_post_details.post_id = ?", accountID, postID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
