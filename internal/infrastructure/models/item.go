package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is the items table row. Images and Embedding are JSON-encoded; the
// repository owns the encoding.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_items_seller_created,priority:1"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Price       float64   `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	Images      string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(100);not null;index:idx_items_category,priority:1"`
	SubCategory string    `gorm:"type:varchar(100);not null;index:idx_items_category,priority:2"`
	Location    *string   `gorm:"type:varchar(255)"`
	Condition   *string   `gorm:"type:varchar(50)"`
	IsApproved  bool      `gorm:"not null;default:false;index:idx_items_moderation,priority:2"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_items_moderation,priority:1"`
	Views       int64     `gorm:"not null;default:0"`
	Embedding   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index:idx_items_seller_created,priority:2,sort:desc"`
	UpdatedAt   time.Time
}
