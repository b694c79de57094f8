package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ItemStatus is the listing's moderation/sale state machine:
// PENDING -> {APPROVED, REJECTED}, APPROVED -> SOLD.
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "PENDING"
	ItemStatusApproved ItemStatus = "APPROVED"
	ItemStatusRejected ItemStatus = "REJECTED"
	ItemStatusSold     ItemStatus = "SOLD"
)

// Conditions accepted on a listing.
var ItemConditions = []string{"New", "Like New", "Used - Good", "Used - Fair", "For Parts"}

// IsValidCondition reports whether the condition label is one of the accepted values.
func IsValidCondition(c string) bool {
	for _, v := range ItemConditions {
		if v == c {
			return true
		}
	}
	return false
}

const (
	// MinItemImages and MaxItemImages bound the image list on every listing.
	MinItemImages = 1
	MaxItemImages = 10

	// EmbeddingDimensions is the fixed vector length produced by the
	// embedding collaborator.
	EmbeddingDimensions = 768
)

// Item represents a single marketplace listing.
// IsApproved is paired with Status: the two are only ever written together
// through the repository's status transition, so they cannot drift.
type Item struct {
	ID          uuid.UUID   `json:"id"`
	SellerID    uuid.UUID   `json:"sellerId"`
	Name        string      `json:"itemName"`
	Price       float64     `json:"itemPrice"`
	Description string      `json:"itemDescription"`
	Images      []string    `json:"itemImages"`
	Category    string      `json:"itemCategory"`
	SubCategory string      `json:"itemSubCategory"`
	Location    null.String `json:"location,omitempty"`
	Condition   null.String `json:"condition,omitempty"`
	IsApproved  bool        `json:"isApproved"`
	Status      ItemStatus  `json:"status"`
	Views       int64       `json:"views"`
	Embedding   []float32   `json:"-"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CreateItemInput carries the multipart form fields of a new listing. Images
// travel separately as uploaded files.
type CreateItemInput struct {
	Name        string  `form:"itemName" binding:"required"`
	Price       float64 `form:"itemPrice" binding:"min=0"`
	Description string  `form:"itemDescription" binding:"required"`
	Category    string  `form:"itemCategory" binding:"required"`
	SubCategory string  `form:"itemSubCategory" binding:"required"`
	Location    string  `form:"location"`
	Condition   string  `form:"condition"`
}

// EditItemInput carries the mutable fields of a listing edit. ExistingImages
// lists the already-stored image URLs the seller wants to keep.
type EditItemInput struct {
	Name           string   `form:"itemName" binding:"required"`
	Price          float64  `form:"itemPrice" binding:"min=0"`
	Description    string   `form:"itemDescription" binding:"required"`
	Category       string   `form:"itemCategory" binding:"required"`
	SubCategory    string   `form:"itemSubCategory" binding:"required"`
	Location       string   `form:"location"`
	Condition      string   `form:"condition"`
	ExistingImages []string `form:"existingImages"`
}

// ItemFilter is the catalog query filter set. Zero values mean "no filter".
// ApprovedOnly is forced by the usecase on public queries and cannot be
// overridden by caller-supplied filters.
type ItemFilter struct {
	Category     string
	SubCategory  string
	Status       ItemStatus
	MinPrice     *float64
	MaxPrice     *float64
	Condition    string
	Query        string
	SellerID     uuid.UUID
	ApprovedOnly bool
}

// Free-text search modes. The mode is selected by configuration, never by
// runtime error recovery.
const (
	SearchModeFullText  = "fulltext"
	SearchModeSubstring = "substring"
)

// RankedItem is an AI search hit with its similarity score.
type RankedItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"itemName"`
	Price       float64   `json:"itemPrice"`
	Category    string    `json:"itemCategory"`
	SubCategory string    `json:"itemSubCategory"`
	Score       float64   `json:"score"`
}
