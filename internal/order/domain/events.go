package domain

// Outbox event types emitted by the order write path.
const (
	EventOrderCreated  = "OrderCreated"
	EventStockDepleted = "StockDepleted"
	EventStockDrift    = "StockDrift"
)

type OrderCreated struct {
	OrderID     string      `json:"order_id"`
	CustomerID  string      `json:"customer_id"`
	TotalAmount float64     `json:"total_amount"`
	PaymentType PaymentType `json:"payment_type"`
	Items       []OrderItem `json:"items"`
}

// StockDepleted signals that a decrement took a product's stock to zero or
// below. Negative stock is representable and feeds a replenishment
// workflow; it is not an error.
type StockDepleted struct {
	ProductID string  `json:"product_id"`
	StockKg   float64 `json:"stock_kg"`
}

// StockDrift is the operational alert raised when an order committed but
// one of its stock writes did not.
type StockDrift struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}
