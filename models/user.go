package models

import "time"

// User is provisioned by the identity provider; the id is the provider's
// opaque user id, not an autoincrement.
type User struct {
	ID          string `gorm:"primaryKey"`
	PhoneNumber string `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
