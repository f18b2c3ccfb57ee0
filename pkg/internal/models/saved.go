package models

// SavedPost is one bookmark collection per account, created lazily on the
// first save. The unique index on AccountID keeps the lazy creation race
// from producing two collections.
type SavedPost struct {
	BaseModel

	AccountID string `json:"account_id" gorm:"type:uuid;not null;uniqueIndex"`
}

type SavedPostDetail struct {
	BaseModel

	SavedPostID string `json:"saved_post_id" gorm:"type:uuid;not null;uniqueIndex:idx_saved_detail_pair"`
	PostID      string `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_saved_detail_pair"`
	Post        Post   `json:"post"`
}
