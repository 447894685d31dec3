package order

import "time"

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type OrderPlaced struct {
	Order Order `json:"order"`
}

type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	Email     string    `json:"email"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}
