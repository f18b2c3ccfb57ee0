package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type CommentRequest struct {
	SenderID        string  `json:"sender_id" validate:"required"`
	PostID          string  `json:"post_id" validate:"required"`
	Content         string  `json:"content" validate:"required,max=2048"`
	ParentCommentID *string `json:"parent_comment_id"`
}

func GetComment(id string) (models.Comment, error) {
	var comment models.Comment
	if err := database.C.Where("id = ?", id).Preload("Sender").First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return comment, fmt.Errorf("comment %s: %w", id, status.ErrNotFound)
		}
		return comment, fmt.Errorf("unable to get comment: %v", err)
	}
	return comment, nil
}

// AddComment attaches a comment to a post, optionally as a reply. The tree
// is clamped to two levels: replying to a reply re-attaches the new comment
// under the original top-level parent.
func AddComment(request CommentRequest) (models.Comment, error) {
	var comment models.Comment
	if err := validate.Struct(request); err != nil {
		return comment, fmt.Errorf("invalid comment request: %w", status.ErrInvalidOperation)
	}

	sender, err := GetAccountWithID(request.SenderID)
	if err != nil {
		return comment, err
	}
	post, err := GetPost(request.PostID)
	if err != nil {
		return comment, err
	}

	var parentID *string
	if request.ParentCommentID != nil && len(strings.TrimSpace(*request.ParentCommentID)) > 0 {
		parent, err := GetComment(strings.TrimSpace(*request.ParentCommentID))
		if err != nil {
			return comment, err
		}
		if parent.PostID != post.ID {
			return comment, fmt.Errorf("parent comment belongs to another post: %w", status.ErrInvalidOperation)
		}
		if parent.ParentCommentID != nil {
			parentID = parent.ParentCommentID
		} else {
			parentID = &parent.ID
		}
	}

	comment = models.Comment{
		PostID:          post.ID,
		SenderID:        sender.ID,
		Content:         request.Content,
		ParentCommentID: parentID,
	}
	comment.CreatedAt = nowFn()

	if err := database.C.Create(&comment).Error; err != nil {
		return comment, fmt.Errorf("unable to create comment: %v", err)
	}

	comment.Sender = sender
	return buildCommentView(comment, request.SenderID)
}

// ListComments returns a post's top-level comments in creation order, each
// with its flat reply list, like counts, and the viewer's like state when a
// viewer is given.
func ListComments(postID string, viewerID string) ([]models.Comment, error) {
	if _, err := GetPost(postID); err != nil {
		return nil, err
	}

	var parents []models.Comment
	if err := database.C.
		Where("post_id = ? AND parent_comment_id IS NULL", postID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&parents).Error; err != nil {
		return nil, fmt.Errorf("unable to list comments: %v", err)
	}
	if len(parents) == 0 {
		return parents, nil
	}

	parentIDs := lo.Map(parents, func(comment models.Comment, _ int) string {
		return comment.ID
	})

	var replies []models.Comment
	if err := database.C.
		Where("parent_comment_id IN ?", parentIDs).
		Preload("Sender").
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("unable to list replies: %v", err)
	}

	idx := parentIDs
	for _, reply := range replies {
		idx = append(idx, reply.ID)
	}
	likeCounts, likedSet, err := loadCommentMetrics(idx, viewerID)
	if err != nil {
		return nil, err
	}

	replyMap := map[string][]models.Comment{}
	for _, reply := range replies {
		reply.Metric = models.CommentMetric{
			LikeCount: likeCounts[reply.ID],
			Liked:     likedSet[reply.ID],
		}
		replyMap[*reply.ParentCommentID] = append(replyMap[*reply.ParentCommentID], reply)
	}

	for i := range parents {
		parents[i].Metric = models.CommentMetric{
			LikeCount: likeCounts[parents[i].ID],
			Liked:     likedSet[parents[i].ID],
		}
		parents[i].Replies = replyMap[parents[i].ID]
		if parents[i].Replies == nil {
			parents[i].Replies = []models.Comment{}
		}
	}

	return parents, nil
}

func ModifyComment(id string, content string) (models.Comment, error) {
	comment, err := GetComment(id)
	if err != nil {
		return comment, err
	}

	comment.Content = content
	if err := database.C.Model(&models.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error; err != nil {
		return comment, fmt.Errorf("unable to modify comment: %v", err)
	}

	return buildCommentView(comment, "")
}

// DeleteComment removes a comment; deleting a top-level comment cascades to
// its replies and all their likes.
func DeleteComment(id string) error {
	comment, err := GetComment(id)
	if err != nil {
		return err
	}

	return database.C.Transaction(func(tx *gorm.DB) error {
		var replyIDs []string
		if err := tx.Model(&models.Comment{}).
			Where("parent_comment_id = ?", comment.ID).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}

		idx := append(replyIDs, comment.ID)
		if err := tx.Where("comment_id IN ?", idx).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if len(replyIDs) > 0 {
			if err := tx.Where("id IN ?", replyIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", comment.ID).Delete(&models.Comment{}).Error
	})
}

// buildCommentView reloads a single comment's replies and metrics, the shape
// every mutating comment operation answers with.
func buildCommentView(comment models.Comment, viewerID string) (models.Comment, error) {
	comment.Replies = []models.Comment{}
	if comment.ParentCommentID == nil {
		var replies []models.Comment
		if err := database.C.
			Where("parent_comment_id = ?", comment.ID).
			Preload("Sender").
			Order("created_at ASC").
			Find(&replies).Error; err != nil {
			return comment, fmt.Errorf("unable to load replies: %v", err)
		}
		comment.Replies = replies
	}

	idx := []string{comment.ID}
	for _, reply := range comment.Replies {
		idx = append(idx, reply.ID)
	}
	likeCounts, likedSet, err := loadCommentMetrics(idx, viewerID)
	if err != nil {
		return comment, err
	}

	comment.Metric = models.CommentMetric{
		LikeCount: likeCounts[comment.ID],
		Liked:     likedSet[comment.ID],
	}
	for i := range comment.Replies {
		comment.Replies[i].Metric = models.CommentMetric{
			LikeCount: likeCounts[comment.Replies[i].ID],
			Liked:     likedSet[comment.Replies[i].ID],
		}
	}

	return comment, nil
}

func loadCommentMetrics(idx []string, viewerID string) (map[string]int64, map[string]bool, error) {
	likeCounts := map[string]int64{}
	likedSet := map[string]bool{}
	if len(idx) == 0 {
		return likeCounts, likedSet, nil
	}

	var rows []struct {
		CommentID string
		Count     int64
	}
	if err := database.C.Model(&models.CommentLike{}).
		Select("comment_id, COUNT(id) as count").
		Where("comment_id IN ?", idx).
		Group("comment_id").
		Scan(&rows).Error; err != nil {
		return likeCounts, likedSet, fmt.Errorf("unable to count comment likes: %v", err)
	}
	for _, row := range rows {
		likeCounts[row.CommentID] = row.Count
	}

	if len(viewerID) > 0 {
		var likedIDs []string
		if err := database.C.Model(&models.CommentLike{}).
			Where("account_id = ? AND comment_id IN ?", viewerID, idx).
			Pluck("comment_id", &likedIDs).Error; err != nil {
			return likeCounts, likedSet, fmt.Errorf("unable to load viewer comment likes: %v", err)
		}
		for _, id := range likedIDs {
			likedSet[id] = true
		}
	}

	return likeCounts, likedSet, nil
}
