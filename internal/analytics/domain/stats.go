package domain

// DailySalesRow is one day of aggregated sales, as produced by the data
// source. Rows arrive newest-first.
type DailySalesRow struct {
	OrderDate   string  `json:"order_date"`
	TotalOrders int     `json:"total_orders"`
	TotalSales  float64 `json:"total_sales"`
	CashSales   float64 `json:"cash_sales"`
	CreditSales float64 `json:"credit_sales"`
}

// ProductPerformanceRow is the per-product sales rollup from the data
// source, ordered by revenue descending.
type ProductPerformanceRow struct {
	Name          string  `json:"name"`
	TimesOrdered  int     `json:"times_ordered"`
	TotalBagsSold float64 `json:"total_bags_sold"`
	TotalKgSold   float64 `json:"total_kg_sold"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type Debtor struct {
	Name       string  `json:"name"`
	ShopName   string  `json:"shop_name"`
	Debt       float64 `json:"debt"`
	TrustScore int     `json:"trust_score"`
}

type WeeklySale struct {
	Date   string  `json:"date"`
	Cash   float64 `json:"cash"`
	Credit float64 `json:"credit"`
	Total  float64 `json:"total"`
}

type ProductStanding struct {
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Quantity float64 `json:"quantity"`
}

// DashboardStats is the derived snapshot behind the dashboard. It is
// recomputed from the source collections on every request and never
// persisted.
type DashboardStats struct {
	TotalRevenue       float64           `json:"totalRevenue"`
	CashRevenue        float64           `json:"cashRevenue"`
	CreditRevenue      float64           `json:"creditRevenue"`
	TotalOrders        int               `json:"totalOrders"`
	TotalCustomers     int               `json:"totalCustomers"`
	RiskCustomers      int               `json:"riskCustomers"`
	VIPCustomers       int               `json:"vipCustomers"`
	TopDebtors         []Debtor          `json:"topDebtors"`
	WeeklySales        []WeeklySale      `json:"weeklySales"`
	ProductPerformance []ProductStanding `json:"productPerformance"`
}
