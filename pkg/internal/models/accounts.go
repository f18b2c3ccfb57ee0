package models

// Account is the read-only identity record other aggregates reference.
// Ownership of the data lives outside this service; nothing in here ever
// mutates an account besides the external directory sync.
type Account struct {
	BaseModel

	Name        string `json:"name" gorm:"uniqueIndex"`
	Nick        string `json:"nick"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}
