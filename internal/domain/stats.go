package domain

import "github.com/shopspring/decimal"

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	OrderCount    int64           `json:"orderCount"`
	ProductCount  int64           `json:"productCount"`
	CustomerCount int64           `json:"customerCount"`
	RecentOrders  []Order         `json:"recentOrders"`
}
