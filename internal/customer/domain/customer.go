package domain

import "time"

type Status string

const (
	StatusActive Status = "active"
	StatusRisk   Status = "risk"
	StatusVIP    Status = "vip"
)

// RiskDebtThreshold is the outstanding-debt amount above which a customer
// is classified as risk regardless of their stored status. The comparison
// is strictly greater-than.
const RiskDebtThreshold = 50000.0

// Customer is a B2B buyer. TotalDebt accrues from unpaid credit orders;
// TrustScore is a 0-100 reliability indicator independent of debt.
type Customer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ShopName    string    `json:"shop_name"`
	Phone       string    `json:"phone"`
	LocationGeo string    `json:"location_geo,omitempty"`
	TrustScore  int       `json:"trust_score"`
	TotalDebt   float64   `json:"total_debt"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Classify maps a stored status and current debt to an effective status.
// Precedence is RISK > VIP > ACTIVE: the debt check runs first and can
// promote an otherwise-vip customer to risk.
func Classify(status Status, totalDebt float64) Status {
	if status == StatusRisk || totalDebt > RiskDebtThreshold {
		return StatusRisk
	}
	if status == StatusVIP {
		return StatusVIP
	}
	return StatusActive
}
