package services

import (
	"fmt"

	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

// FollowAccount inserts the directed edge follower -> target. Following an
// account twice is a silent no-op, following yourself is an error.
func FollowAccount(followerID, targetID string) error {
	if followerID == targetID {
		return fmt.Errorf("cannot follow yourself: %w", status.ErrInvalidOperation)
	}
	if _, err := GetAccountWithID(targetID); err != nil {
		return err
	}
	if _, err := GetAccountWithID(followerID); err != nil {
		return err
	}

	follow := models.Follow{
		AccountID:  targetID,
		FollowerID: followerID,
	}
	// The unique pair index absorbs concurrent duplicate follows.
	if err := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
		return fmt.Errorf("unable to create follow edge: %v", err)
	}
	return nil
}

func UnfollowAccount(followerID, targetID string) error {
	if err := database.C.
		Where("account_id = ? AND follower_id = ?", targetID, followerID).
		Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("unable to remove follow edge: %v", err)
	}
	return nil
}

// RemoveFollower removes the same edge as UnfollowAccount, named from the
// followed party's perspective.
func RemoveFollower(ownerID, followerID string) error {
	return UnfollowAccount(followerID, ownerID)
}

func IsFollowing(targetID, followerID string) bool {
	if len(targetID) == 0 || len(followerID) == 0 {
		return false
	}
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("account_id = ? AND follower_id = ?", targetID, followerID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func CountFollowers(id string) int64 {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("account_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}

func CountFollowing(id string) int64 {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}

func ListFollowers(id string) ([]models.Account, error) {
	var edges []models.Follow
	if err := database.C.
		Where("account_id = ?", id).
		Preload("Follower").
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("unable to list followers: %v", err)
	}
	return lo.Map(edges, func(edge models.Follow, _ int) models.Account {
		return edge.Follower
	}), nil
}

func ListFollowing(id string) ([]models.Account, error) {
	var edges []models.Follow
	if err := database.C.
		Where("follower_id = ?", id).
		Preload("Account").
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("unable to list following: %v", err)
	}
	return lo.Map(edges, func(edge models.Follow, _ int) models.Account {
		return edge.Account
	}), nil
}

// SuggestAccounts returns up to limit accounts the user does not follow yet.
// It is a plain scan in creation order, not a ranking.
func SuggestAccounts(id string, limit int) ([]models.Account, error) {
	if _, err := GetAccountWithID(id); err != nil {
		return nil, err
	}

	var followingIDs []string
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ?", id).
		Pluck("account_id", &followingIDs).Error; err != nil {
		return nil, fmt.Errorf("unable to list followed accounts: %v", err)
	}

	tx := database.C.Where("id != ?", id)
	if len(followingIDs) > 0 {
		tx = tx.Where("id NOT IN ?", followingIDs)
	}

	var accounts []models.Account
	if err := tx.Order("created_at ASC").Limit(limit).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("unable to suggest accounts: %v", err)
	}
	return accounts, nil
}
