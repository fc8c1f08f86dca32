package service

import (
	"go-kickcraft/internal/analytics"
	"go-kickcraft/internal/model"
	"go-kickcraft/internal/repository"
)

// DashboardStats is the headline card row: fleet totals plus product count.
type DashboardStats struct {
	analytics.Totals
	TotalProducts int `json:"total_products"`
}

// DashboardCharts carries the data behind the four dashboard charts. How
// they are rendered (pie, bar, line) is the client's business.
type DashboardCharts struct {
	SalesByCategory     analytics.Series `json:"sales_by_category"`
	SalesByPriceBand    analytics.Series `json:"sales_by_price_band"`
	SalesByDiscountBand analytics.Series `json:"sales_by_discount_band"`
	SalesByBrand        analytics.Series `json:"sales_by_brand"`
}

// topBrands is how many brands get their own slice before the rest fold
// into "Others".
const topBrands = 4

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetCharts() (*DashboardCharts, error)
	GetLowStock(threshold int) ([]model.Shoe, error)
	GetTopShoes(limit int) ([]model.Shoe, error)
}

type dashboardService struct {
	shoeRepo repository.ShoeRepository
}

func NewDashboardService(repo repository.ShoeRepository) DashboardService {
	return &dashboardService{shoeRepo: repo}
}

// Every read recomputes from the full collection; nothing is cached.

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	shoes, err := s.shoeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Totals:        analytics.Fleet(shoes),
		TotalProducts: len(shoes),
	}, nil
}

func (s *dashboardService) GetCharts() (*DashboardCharts, error) {
	shoes, err := s.shoeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return &DashboardCharts{
		SalesByCategory:     analytics.SalesByCategory(shoes),
		SalesByPriceBand:    analytics.SalesByPriceBand(shoes),
		SalesByDiscountBand: analytics.SalesByDiscountBand(shoes),
		SalesByBrand:        analytics.TopWithOthers(shoes, topBrands, analytics.BrandKey),
	}, nil
}

func (s *dashboardService) GetLowStock(threshold int) ([]model.Shoe, error) {
	shoes, err := s.shoeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return analytics.LowStock(shoes, threshold), nil
}

func (s *dashboardService) GetTopShoes(limit int) ([]model.Shoe, error) {
	shoes, err := s.shoeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	ranked := analytics.RankBySales(shoes)
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
