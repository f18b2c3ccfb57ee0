package database

import (
	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Follow{},
	&models.Post{},
	&models.Comment{},
	&models.SavedPost{},
	&models.SavedPostDetail{},
	&models.Story{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.PostLike{},
			&models.CommentLike{},
			&models.StoryView{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
