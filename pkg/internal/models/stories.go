package models

import "time"

const (
	MediaTypeImage = "IMAGE"
	MediaTypeVideo = "VIDEO"
)

// Story is a time-boxed media post. Expired stories are filtered out by
// every read and physically removed by the periodic sweep.
type Story struct {
	BaseModel

	AccountID string  `json:"account_id" gorm:"type:uuid;not null;index"`
	Account   Account `json:"account"`
	MediaURL  string  `json:"media_url" gorm:"not null"`
	MediaType string  `json:"media_type" gorm:"not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"index"`

	Metric StoryMetric `json:"metric" gorm:"-"`
}

type StoryMetric struct {
	ViewCount int64 `json:"view_count"`
	Viewed    bool  `json:"viewed"`
}

// StoryView records that an account watched a story, at most once per pair.
// The author's own views are never recorded.
type StoryView struct {
	BaseModel

	StoryID  string    `json:"story_id" gorm:"type:uuid;not null;uniqueIndex:idx_story_view_pair"`
	ViewerID string    `json:"viewer_id" gorm:"type:uuid;not null;uniqueIndex:idx_story_view_pair"`
	Viewer   Account   `json:"viewer" gorm:"foreignKey:ViewerID"`
	ViewedAt time.Time `json:"viewed_at"`
}
