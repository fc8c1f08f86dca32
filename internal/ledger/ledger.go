// Package ledger decides, on each shoe update, whether the change to the
// sales counter warrants a permanent history snapshot, and constructs it.
package ledger

import (
	"time"

	"go-kickcraft/internal/model"
)

// Update carries the proposed new field values for a shoe. An update
// replaces all mutable fields wholesale; the caller must resend the full
// current value of fields it does not intend to change. Discount defaults
// to 0 when the caller omits it, which is a documented convention rather
// than an error.
type Update struct {
	Name     string   `json:"name" validate:"required"`
	Brand    string   `json:"brand" validate:"required"`
	Category string   `json:"category"`
	Price    float64  `json:"price" validate:"gte=0"`
	Discount float64  `json:"discount" validate:"gte=0,lte=100"`
	Stock    int      `json:"stock" validate:"gte=0"`
	Sales    int      `json:"sales" validate:"gte=0"`
	Images   []string `json:"images"`
}

// Apply overwrites the shoe's mutable fields with the incoming values and,
// iff the sales counter actually changed (strict inequality, either
// direction), appends a snapshot of {sales, price, discount, now} to the
// shoe's history and returns it. Resubmitting an unchanged sales figure
// leaves the ledger untouched even when price, discount or stock move.
//
// The caller is responsible for persisting the shoe so that the scalar
// fields and the appended entry commit together.
func Apply(shoe *model.Shoe, in Update, now time.Time) *model.HistoryEntry {
	salesChanged := in.Sales != shoe.Sales

	shoe.Name = in.Name
	shoe.Brand = in.Brand
	shoe.Category = in.Category
	shoe.Price = in.Price
	shoe.Discount = in.Discount
	shoe.Stock = in.Stock
	shoe.Sales = in.Sales
	if in.Images != nil {
		shoe.Images = in.Images
	}

	if !salesChanged {
		return nil
	}

	entry := model.HistoryEntry{
		Sales:     in.Sales,
		Price:     in.Price,
		Discount:  in.Discount,
		Timestamp: now,
	}
	shoe.SalesHistory = append(shoe.SalesHistory, entry)
	return &entry
}
