package models

import "time"

// User is a staff identity in the credential store. The administrative
// identity is seeded once at bootstrap; the unique index on username is what
// keeps concurrent seeds from creating duplicates.
type User struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Email        string    `gorm:"column:email"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
