package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDatabaseSeq int

// setupDatabase points database.C at a fresh in-memory SQLite store and
// installs a deterministic clock that advances one second per reading.
func setupDatabase(t *testing.T) {
	t.Helper()

	testDatabaseSeq++
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDatabaseSeq)
	source, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(source))
	database.C = source

	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	nowFn = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	t.Cleanup(func() {
		nowFn = time.Now
	})
}

func setClock(at time.Time) {
	nowFn = func() time.Time {
		return at
	}
}

func createAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account := models.Account{
		Name: name,
		Nick: "The " + name,
	}
	account.CreatedAt = nowFn()
	require.NoError(t, database.C.Create(&account).Error)
	return account
}

func createPost(t *testing.T, authorID, content string) models.Post {
	t.Helper()

	post, err := NewPost(PostRequest{
		AccountID: authorID,
		Content:   content,
	})
	require.NoError(t, err)
	return post
}
