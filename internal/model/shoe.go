package model

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryEntry is an immutable snapshot taken when a shoe's sales counter
// changes: the new counter value plus the price and discount in effect at
// that moment. Entries are appended in chronological order and never
// mutated or removed.
type HistoryEntry struct {
	Sales     int       `json:"sales"`
	Price     float64   `json:"price"`
	Discount  float64   `json:"discount"`
	Timestamp time.Time `json:"timestamp"`
}

type Shoe struct {
	BaseModel
	Name     string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Brand    string  `gorm:"type:varchar(255);not null" json:"brand" validate:"required"`
	Category string  `gorm:"type:varchar(100)" json:"category"`
	Price    float64 `gorm:"default:0" json:"price" validate:"gte=0"`
	Discount float64 `gorm:"default:0" json:"discount" validate:"gte=0,lte=100"` // percentage 0-100
	Stock    int     `gorm:"default:0" json:"stock" validate:"gte=0"`
	Sales    int     `gorm:"default:0" json:"sales" validate:"gte=0"` // latest known total

	// Append-only sales ledger, stored on the row itself so scalar updates
	// and history appends commit in a single write.
	SalesHistory datatypes.JSONSlice[HistoryEntry] `gorm:"type:jsonb" json:"sales_history"`

	Images datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"images"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
}

// FinalPrice is the price after the discount percentage is applied.
// Always derived, never persisted.
func (s *Shoe) FinalPrice() float64 {
	return s.Price - (s.Price*s.Discount)/100
}
