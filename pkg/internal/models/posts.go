package models

import "gorm.io/datatypes"

type Post struct {
	BaseModel

	Content  string                      `json:"content"`
	Language string                      `json:"language"`
	Images   datatypes.JSONSlice[string] `json:"images"`

	AccountID string  `json:"account_id" gorm:"type:uuid;not null;index"`
	Account   Account `json:"account"`

	Metric PostMetric `json:"metric" gorm:"-"`
}

// PostMetric carries the per-viewer annotations of a post listing.
// Counts are live, computed at query time.
type PostMetric struct {
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	Liked        bool  `json:"liked"`
	Saved        bool  `json:"saved"`
}
