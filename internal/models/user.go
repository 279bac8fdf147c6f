package models

import "time"

// AdminUser is an administrator account. Accounts are only created by the
// bootstrap seed or the migration tool.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username" csv:"username"`
	PasswordHash string    `gorm:"not null" json:"-" csv:"-"`
	CreatedAt    time.Time `json:"created_at" csv:"created_at"`
}

// TableName keeps the accounts table named "users".
func (AdminUser) TableName() string {
	return "users"
}
