package application

import "github.com/AI-guru11/Mo7/internal/analytics/domain"

// Fallback is the static snapshot served while the data store is
// unreachable. It is a documented degraded mode, not an error path.
func Fallback() domain.DashboardStats {
	return domain.DashboardStats{
		TotalRevenue:   2847500,
		CashRevenue:    1698500,
		CreditRevenue:  1149000,
		TotalOrders:    127,
		TotalCustomers: 7,
		RiskCustomers:  2,
		VIPCustomers:   2,
		TopDebtors: []domain.Debtor{
			{Name: "Sunita Devi", ShopName: "Sunita Wholesale", Debt: 125000, TrustScore: 30},
			{Name: "Priya Singh", ShopName: "Singh Trading Co.", Debt: 78000, TrustScore: 45},
			{Name: "Ravi Verma", ShopName: "Verma Enterprises", Debt: 45000, TrustScore: 50},
			{Name: "Neha Gupta", ShopName: "Gupta Store", Debt: 30000, TrustScore: 60},
			{Name: "Amit Sharma", ShopName: "Sharma Fresh Mart", Debt: 15000, TrustScore: 70},
		},
		WeeklySales: []domain.WeeklySale{
			{Date: "2024-02-01", Cash: 125000, Credit: 85000, Total: 210000},
			{Date: "2024-02-02", Cash: 198000, Credit: 112000, Total: 310000},
			{Date: "2024-02-03", Cash: 156000, Credit: 94000, Total: 250000},
			{Date: "2024-02-04", Cash: 245000, Credit: 165000, Total: 410000},
			{Date: "2024-02-05", Cash: 187000, Credit: 123000, Total: 310000},
			{Date: "2024-02-06", Cash: 223000, Credit: 147000, Total: 370000},
			{Date: "2024-02-07", Cash: 264000, Credit: 189000, Total: 453000},
		},
		ProductPerformance: []domain.ProductStanding{
			{Name: "Potato (Frying)", Revenue: 1125000, Quantity: 450},
			{Name: "Onion (Red)", Revenue: 684000, Quantity: 380},
			{Name: "Potato (Regular)", Revenue: 560000, Quantity: 280},
			{Name: "Onion (White)", Revenue: 478500, Quantity: 299},
		},
	}
}
