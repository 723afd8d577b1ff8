package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
)

type OrderEvent struct {
	ID             string
	Type           EventType
	OrderID        int64
	OrderNumber    string
	StoreID        int64
	UserID         int64
	Status         Status
	PreviousStatus Status
	TotalAmount    decimal.Decimal
	OccurredAt     time.Time
}
