package domain

import (
	"time"

	"github.com/google/uuid"

	catalog "github.com/AI-guru11/Mo7/internal/catalog/domain"
)

type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentCredit PaymentType = "credit"
)

// Order is a committed sale. TotalAmount is fixed at creation from the
// line-item subtotals and never recomputed afterwards.
type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customer_id"`
	TotalAmount float64     `json:"total_amount"`
	PaymentType PaymentType `json:"payment_type"`
	IsPaid      bool        `json:"is_paid"`
	OrderDate   time.Time   `json:"order_date"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem carries the price and weight snapshot taken when the order was
// placed. Later product edits never touch these values.
type OrderItem struct {
	OrderID      string  `json:"order_id"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name,omitempty"`
	QuantityBags int     `json:"quantity_bags"`
	QuantityKg   float64 `json:"quantity_kg"`
	PricePerBag  float64 `json:"price_per_bag"`
	Subtotal     float64 `json:"subtotal"`
}

// Line is a single requested position before pricing.
type Line struct {
	ProductID    string `json:"product_id"`
	QuantityBags int    `json:"quantity_bags"`
}

// StockAdjustment is one pending stock write. NewStockKg is computed from
// the stock value observed when the products were resolved, so with two
// lines for the same product the later write wins. ObservedStockKg is kept
// for the store's optimistic check.
type StockAdjustment struct {
	ProductID       string
	ObservedStockKg float64
	NewStockKg      float64
}

// NewOrder prices the requested lines against the resolved product
// snapshots and assembles the order. Cash orders are paid at creation,
// credit orders are not. Callers must have validated the lines and
// resolved every referenced product beforehand.
func NewOrder(customerID string, payment PaymentType, lines []Line, products map[string]catalog.Product) Order {
	now := time.Now().UTC()
	o := Order{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		PaymentType: payment,
		IsPaid:      payment == PaymentCash,
		OrderDate:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, l := range lines {
		p := products[l.ProductID]
		item := OrderItem{
			OrderID:      o.ID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			QuantityBags: l.QuantityBags,
			QuantityKg:   float64(l.QuantityBags) * p.BagWeightKg,
			PricePerBag:  p.PricePerBag,
			Subtotal:     float64(l.QuantityBags) * p.PricePerBag,
		}
		o.TotalAmount += item.Subtotal
		o.Items = append(o.Items, item)
	}
	return o
}

// StockAdjustments derives the stock writes for a priced order, one per
// distinct product. A product appearing on several lines gets a single
// cumulative decrement; every adjustment starts from the stock observed
// at resolve time, not a re-read value.
func (o Order) StockAdjustments(products map[string]catalog.Product) []StockAdjustment {
	index := make(map[string]int, len(o.Items))
	adjustments := make([]StockAdjustment, 0, len(o.Items))
	for _, item := range o.Items {
		if i, ok := index[item.ProductID]; ok {
			adjustments[i].NewStockKg -= item.QuantityKg
			continue
		}
		p := products[item.ProductID]
		index[item.ProductID] = len(adjustments)
		adjustments = append(adjustments, StockAdjustment{
			ProductID:       p.ID,
			ObservedStockKg: p.StockKg,
			NewStockKg:      p.StockKg - item.QuantityKg,
		})
	}
	return adjustments
}
