// Package analytics derives the dashboard's reporting figures from the shoe
// collection. Every function is pure: aggregates are recomputed from scratch
// on each call and nothing is cached, so they are safe to run concurrently
// across requests.
package analytics

import (
	"sort"
	"strings"

	"go-kickcraft/internal/model"
)

// TotalSales reports a shoe's total sales: the sum of its history entries
// when the ledger is non-empty, otherwise the bare sales counter. The two
// are never combined.
func TotalSales(s *model.Shoe) int {
	if len(s.SalesHistory) == 0 {
		return s.Sales
	}
	total := 0
	for _, entry := range s.SalesHistory {
		total += entry.Sales
	}
	return total
}

// Totals holds the fleet-wide headline figures.
type Totals struct {
	TotalSales   int     `json:"total_sales"`
	TotalStock   int     `json:"total_stock"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Fleet sums sales, stock and revenue over the whole collection. Revenue
// values each shoe's total sales at its current final (discounted) price.
func Fleet(shoes []model.Shoe) Totals {
	var t Totals
	for i := range shoes {
		sales := TotalSales(&shoes[i])
		t.TotalSales += sales
		t.TotalStock += shoes[i].Stock
		t.TotalRevenue += shoes[i].FinalPrice() * float64(sales)
	}
	return t
}

// SalesByGroup sums total sales per key. Used identically for category,
// brand and banded breakdowns.
func SalesByGroup(shoes []model.Shoe, key func(*model.Shoe) string) map[string]int {
	groups := make(map[string]int)
	for i := range shoes {
		groups[key(&shoes[i])] += TotalSales(&shoes[i])
	}
	return groups
}

// CategoryKey buckets missing categories rather than dropping them.
func CategoryKey(s *model.Shoe) string {
	if s.Category == "" {
		return "Uncategorized"
	}
	return s.Category
}

// BrandKey buckets missing brands rather than dropping them.
func BrandKey(s *model.Shoe) string {
	if s.Brand == "" {
		return "Unknown"
	}
	return s.Brand
}

// Series is a chart-ready label/value pairing with a stable label order.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// SalesByCategory returns per-category sales with labels ordered by first
// appearance in the collection.
func SalesByCategory(shoes []model.Shoe) Series {
	return groupedSeries(shoes, CategoryKey)
}

func groupedSeries(shoes []model.Shoe, key func(*model.Shoe) string) Series {
	sums := SalesByGroup(shoes, key)
	var s Series
	seen := make(map[string]bool, len(sums))
	for i := range shoes {
		k := key(&shoes[i])
		if seen[k] {
			continue
		}
		seen[k] = true
		s.Labels = append(s.Labels, k)
		s.Values = append(s.Values, sums[k])
	}
	return s
}

// SalesByPriceBand buckets each shoe's sales by its final (discounted)
// price. Bands are inclusive on the lower bound, exclusive on the upper,
// with an open-ended top band.
func SalesByPriceBand(shoes []model.Shoe) Series {
	labels := []string{"0-2000", "2000-4000", "4000-6000", "6000-8000", "8000+"}
	values := make([]int, len(labels))
	for i := range shoes {
		price := shoes[i].FinalPrice()
		sales := TotalSales(&shoes[i])
		switch {
		case price < 2000:
			values[0] += sales
		case price < 4000:
			values[1] += sales
		case price < 6000:
			values[2] += sales
		case price < 8000:
			values[3] += sales
		default:
			values[4] += sales
		}
	}
	return Series{Labels: labels, Values: values}
}

// SalesByDiscountBand buckets each shoe's sales by its discount percentage.
func SalesByDiscountBand(shoes []model.Shoe) Series {
	labels := []string{"0%", "1-10%", "11-20%", "21-30%", "31%+"}
	values := make([]int, len(labels))
	for i := range shoes {
		discount := shoes[i].Discount
		sales := TotalSales(&shoes[i])
		switch {
		case discount == 0:
			values[0] += sales
		case discount <= 10:
			values[1] += sales
		case discount <= 20:
			values[2] += sales
		case discount <= 30:
			values[3] += sales
		default:
			values[4] += sales
		}
	}
	return Series{Labels: labels, Values: values}
}

// TopWithOthers ranks groups by summed sales descending, keeps the top n
// and folds every remaining group into a trailing "Others" bucket so the
// series always sums to the ungrouped total. Ties rank stably by first
// appearance in the collection.
func TopWithOthers(shoes []model.Shoe, n int, key func(*model.Shoe) string) Series {
	sums := SalesByGroup(shoes, key)

	// Keys in first-encountered order, so the stable sort has a
	// reproducible tie-break.
	keys := make([]string, 0, len(sums))
	seen := make(map[string]bool, len(sums))
	for i := range shoes {
		k := key(&shoes[i])
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return sums[keys[i]] > sums[keys[j]]
	})

	if n > len(keys) {
		n = len(keys)
	}

	var s Series
	topTotal := 0
	for _, k := range keys[:n] {
		s.Labels = append(s.Labels, k)
		s.Values = append(s.Values, sums[k])
		topTotal += sums[k]
	}

	grandTotal := 0
	for _, v := range sums {
		grandTotal += v
	}
	s.Labels = append(s.Labels, "Others")
	s.Values = append(s.Values, grandTotal-topTotal)
	return s
}

// LowStock filters shoes with stock strictly below threshold, lowest first.
// The sort is stable so equal stocks keep their input order.
func LowStock(shoes []model.Shoe, threshold int) []model.Shoe {
	var low []model.Shoe
	for i := range shoes {
		if shoes[i].Stock < threshold {
			low = append(low, shoes[i])
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	return low
}

// RankBySales orders the collection by total sales descending, used for the
// dashboard's top-sellers grid. The input slice is not modified.
func RankBySales(shoes []model.Shoe) []model.Shoe {
	ranked := make([]model.Shoe, len(shoes))
	copy(ranked, shoes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return TotalSales(&ranked[i]) > TotalSales(&ranked[j])
	})
	return ranked
}

// Search filters by case-insensitive substring match against name, brand or
// category. A blank query returns the collection unchanged.
func Search(shoes []model.Shoe, query string) []model.Shoe {
	if strings.TrimSpace(query) == "" {
		return shoes
	}
	q := strings.ToLower(query)
	var matched []model.Shoe
	for _, s := range shoes {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Brand), q) ||
			strings.Contains(strings.ToLower(s.Category), q) {
			matched = append(matched, s)
		}
	}
	return matched
}
