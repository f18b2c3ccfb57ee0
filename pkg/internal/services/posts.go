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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostRequest struct {
	AccountID string   `json:"account_id" validate:"required"`
	Content   string   `json:"content" validate:"required,max=4096"`
	Images    []string `json:"images" validate:"dive,required"`
}

// NewPost publishes a post with its ordered image attachments.
func NewPost(request PostRequest) (models.Post, error) {
	var item models.Post
	if err := validate.Struct(request); err != nil {
		return item, fmt.Errorf("invalid post request: %w", status.ErrInvalidOperation)
	}

	author, err := GetAccountWithID(request.AccountID)
	if err != nil {
		return item, err
	}

	start := time.Now()
	item = models.Post{
		Content:   request.Content,
		Language:  DetectLanguage(request.Content),
		Images:    datatypes.NewJSONSlice(request.Images),
		AccountID: author.ID,
	}
	item.CreatedAt = nowFn()

	if err := database.C.Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to create post: %v", err)
	}

	item.Account = author
	log.Debug().Str("id", item.ID).Dur("elapsed", time.Since(start)).Msg("The post is posted.")
	return item, nil
}

func GetPost(id string) (models.Post, error) {
	var item models.Post
	if err := database.C.Where("id = ?", id).Preload("Account").First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("post %s: %w", id, status.ErrNotFound)
		}
		return item, fmt.Errorf("unable to get post: %v", err)
	}
	return item, nil
}

func CountPostLikes(id string) int64 {
	var count int64
	if err := database.C.Model(&models.PostLike{}).
		Where("post_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}

func CountPostComments(id string) int64 {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("post_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}

// DeletePost removes a post and everything hanging off it: likes, comments
// with their likes, and saved-post memberships. Collections left empty by
// the cascade are pruned as well. The whole cascade is one transaction.
func DeletePost(id string) error {
	item, err := GetPost(id)
	if err != nil {
		return err
	}

	err = database.C.Transaction(func(tx *gorm.DB) error {
		var commentIDs []string
		if err := tx.Model(&models.Comment{}).
			Where("post_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}

		var collectionIDs []string
		if err := tx.Model(&models.SavedPostDetail{}).
			Where("post_id = ?", id).
			Distinct().
			Pluck("saved_post_id", &collectionIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPostDetail{}).Error; err != nil {
			return err
		}
		for _, collectionID := range collectionIDs {
			var left int64
			if err := tx.Model(&models.SavedPostDetail{}).
				Where("saved_post_id = ?", collectionID).
				Count(&left).Error; err != nil {
				return err
			}
			if left == 0 {
				if err := tx.Where("id = ?", collectionID).Delete(&models.SavedPost{}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
	if err != nil {
		return fmt.Errorf("unable to delete post: %v", err)
	}

	// The images are owned exclusively by the post, so drop them from the
	// object storage too. Best effort, the rows are already gone.
	if mediakit.U != nil {
		for _, url := range item.Images {
			if err := mediakit.U.Delete(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("An error occurred when deleting post media...")
			}
		}
	}

	return nil
}
