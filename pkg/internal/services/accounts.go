package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	localCache "github.com/glimpse-social/glimpse/pkg/internal/cache"
	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"gorm.io/gorm"
)

const accountCacheLifespan = 5 * time.Minute

func accountCacheKey(id string) string {
	return fmt.Sprintf("account#%s", id)
}

// GetAccountWithID resolves an account through the local cache first; every
// listing in the system goes through here for its author summaries.
func GetAccountWithID(id string) (models.Account, error) {
	ctx := context.Background()

	var account models.Account
	if localCache.GetJSON(ctx, accountCacheKey(id), &account) {
		return account, nil
	}

	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("account %s: %w", id, status.ErrNotFound)
		}
		return account, fmt.Errorf("unable to get account: %v", err)
	}

	localCache.SetJSON(ctx, accountCacheKey(id), account, accountCacheLifespan)
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("account named %s: %w", name, status.ErrNotFound)
		}
		return account, fmt.Errorf("unable to get account: %v", err)
	}
	return account, nil
}

// SearchAccounts does a plain substring match over handle and nickname.
// No ranking, callers get insertion order.
func SearchAccounts(probe string) ([]models.Account, error) {
	probe = strings.TrimSpace(probe)
	if len(probe) == 0 {
		return []models.Account{}, nil
	}

	pattern := "%" + strings.ToLower(probe) + "%"
	var accounts []models.Account
	if err := database.C.
		Where("LOWER(name) LIKE ? OR LOWER(nick) LIKE ?", pattern, pattern).
		Find(&accounts).Error; err != nil {
		return accounts, fmt.Errorf("unable to search accounts: %v", err)
	}
	return accounts, nil
}

type AccountProfile struct {
	Account        models.Account `json:"account"`
	IsFollowed     bool           `json:"is_followed"`
	FollowersCount int64          `json:"followers_count"`
	FollowingCount int64          `json:"following_count"`
	PostCount      int            `json:"post_count"`
	Posts          []*models.Post `json:"posts"`
}

// GetAccountProfile assembles the public profile of an account as seen by
// the given viewer.
func GetAccountProfile(id string, viewerID string) (AccountProfile, error) {
	var profile AccountProfile

	account, err := GetAccountWithID(id)
	if err != nil {
		return profile, err
	}

	posts, err := ListAuthored(viewerID, id)
	if err != nil {
		return profile, err
	}

	profile = AccountProfile{
		Account:        account,
		IsFollowed:     IsFollowing(id, viewerID),
		FollowersCount: CountFollowers(id),
		FollowingCount: CountFollowing(id),
		PostCount:      len(posts),
		Posts:          posts,
	}
	return profile, nil
}
