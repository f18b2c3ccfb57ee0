package services

import (
	"errors"
	"fmt"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikePost records that an account likes a post. Both like tables enforce
// strict uniqueness, so liking the same post twice is an absorbed no-op
// rather than a second row.
func LikePost(accountID, postID string) error {
	if _, err := GetAccountWithID(accountID); err != nil {
		return err
	}
	if _, err := GetPost(postID); err != nil {
		return err
	}

	like := models.PostLike{
		PostID:    postID,
		AccountID: accountID,
	}
	if err := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return fmt.Errorf("unable to create post like: %v", err)
	}
	return nil
}

// UnlikePost removes the single matching like if present, no-op otherwise.
func UnlikePost(accountID, postID string) error {
	if err := database.C.
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Delete(&models.PostLike{}).Error; err != nil {
		return fmt.Errorf("unable to remove post like: %v", err)
	}
	return nil
}

func IsPostLikedBy(postID, accountID string) bool {
	var count int64
	if err := database.C.Model(&models.PostLike{}).
		Where("post_id = ? AND account_id = ?", postID, accountID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// ToggleCommentLike flips the like state of a comment for one account and
// answers with the refreshed comment view.
func ToggleCommentLike(commentID, accountID string) (models.Comment, error) {
	comment, err := GetComment(commentID)
	if err != nil {
		return comment, err
	}
	if _, err := GetAccountWithID(accountID); err != nil {
		return comment, err
	}

	var existing models.CommentLike
	err = database.C.
		Where("comment_id = ? AND account_id = ?", commentID, accountID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return comment, fmt.Errorf("unable to check comment like: %v", err)
		}
		like := models.CommentLike{
			CommentID: commentID,
			AccountID: accountID,
		}
		if err := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return comment, fmt.Errorf("unable to create comment like: %v", err)
		}
	} else {
		if err := database.C.Delete(&existing).Error; err != nil {
			return comment, fmt.Errorf("unable to remove comment like: %v", err)
		}
	}

	return buildCommentView(comment, accountID)
}

func CountCommentLikes(commentID string) int64 {
	var count int64
	if err := database.C.Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}

func IsCommentLikedBy(commentID, accountID string) bool {
	var count int64
	if err := database.C.Model(&models.CommentLike{}).
		Where("comment_id = ? AND account_id = ?", commentID, accountID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
