package models

// Both like tables carry a composite unique index, so a duplicate like from
// the same account surfaces as a key conflict instead of a second row.

type PostLike struct {
	BaseModel

	PostID    string `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_post_like_pair"`
	AccountID string `json:"account_id" gorm:"type:uuid;not null;uniqueIndex:idx_post_like_pair"`
}

type CommentLike struct {
	BaseModel

	CommentID string `json:"comment_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_pair"`
	AccountID string `json:"account_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_pair"`
}
