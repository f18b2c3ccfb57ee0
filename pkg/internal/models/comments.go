package models

// Comment trees are stored flat with a nullable parent reference and are
// exactly two levels deep: top-level comments plus one flat list of replies.
type Comment struct {
	BaseModel

	PostID          string  `json:"post_id" gorm:"type:uuid;not null;index"`
	SenderID        string  `json:"sender_id" gorm:"type:uuid;not null"`
	Sender          Account `json:"sender" gorm:"foreignKey:SenderID"`
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id" gorm:"type:uuid;index"`

	Replies []Comment     `json:"replies" gorm:"-"`
	Metric  CommentMetric `json:"metric" gorm:"-"`
}

type CommentMetric struct {
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}
