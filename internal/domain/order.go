package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Order is the historical record of one reservation. It is never updated to
// follow later inventory changes.
type Order struct {
	ID         int64
	UserID     int64
	TicketID   int64
	EventID    int64
	Quantity   int
	TotalPrice decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
}

// OrderConfirmation is the read model used to compose the confirmation email.
type OrderConfirmation struct {
	OrderID        int64
	PurchaserName  string
	PurchaserEmail string
	EventName      string
	Quantity       int
	TotalPrice     decimal.Decimal
}
