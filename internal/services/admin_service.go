package services

import (
	"math"

	"motortrade/internal/domain"
	"motortrade/internal/repos"
)

type AdminService struct {
	Inv      *repos.InventoryRepo
	Accounts *repos.AccountRepo
	Carts    *repos.CartRepo
}

func NewAdminService(inv *repos.InventoryRepo, accounts *repos.AccountRepo, carts *repos.CartRepo) *AdminService {
	return &AdminService{Inv: inv, Accounts: accounts, Carts: carts}
}

type DashboardStats struct {
	TotalVehicles        int              `json:"totalVehicles"`
	TotalClassifications int              `json:"totalClassifications"`
	TotalAccounts        int              `json:"totalAccounts"`
	TotalAdmins          int              `json:"totalAdmins"`
	TotalCartItems       int              `json:"totalCartItems"`
	InventoryValue       int              `json:"inventoryValue"`
	MinPrice             int              `json:"minPrice"`
	MaxPrice             int              `json:"maxPrice"`
	AvgPrice             int              `json:"avgPrice"`
	RecentVehicles       []domain.Vehicle `json:"recentVehicles"`
}

// Dashboard aggregates the storefront overview numbers.
func (s *AdminService) Dashboard() (DashboardStats, error) {
	var st DashboardStats
	var err error

	if st.TotalVehicles, err = s.Inv.Count(); err != nil {
		return st, err
	}
	if st.TotalClassifications, err = s.Inv.CountClassifications(); err != nil {
		return st, err
	}
	if st.TotalAccounts, err = s.Accounts.Count(); err != nil {
		return st, err
	}
	if st.TotalAdmins, err = s.Accounts.CountAdmins(); err != nil {
		return st, err
	}
	if st.TotalCartItems, err = s.Carts.CountRows(); err != nil {
		return st, err
	}

	value, err := s.Inv.Value()
	if err != nil {
		return st, err
	}
	st.InventoryValue = int(math.Round(value))

	prices, err := s.Inv.Prices()
	if err != nil {
		return st, err
	}
	st.MinPrice = int(math.Round(prices.Min))
	st.MaxPrice = int(math.Round(prices.Max))
	st.AvgPrice = int(math.Round(prices.Avg))

	if st.RecentVehicles, err = s.Inv.Recent(5); err != nil {
		return st, err
	}
	return st, nil
}
