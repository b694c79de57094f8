package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the users table row. Roles and FavoriteItems are JSON-encoded lists;
// the repository owns the encoding.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	Address       *string   `gorm:"type:varchar(255)"`
	Phone         string    `gorm:"type:varchar(50);not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Roles         string    `gorm:"type:text;not null"`
	FavoriteItems string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
