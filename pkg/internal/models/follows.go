package models

// Follow is a directed edge: Follower follows Account.
// At most one edge per ordered pair, enforced by the composite unique index.
type Follow struct {
	BaseModel

	AccountID  string  `json:"account_id" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	FollowerID string  `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	Account    Account `json:"account" gorm:"foreignKey:AccountID"`
	Follower   Account `json:"follower" gorm:"foreignKey:FollowerID"`
}
