package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64
	OrderNumber string
	UserID      int64
	StoreID     int64
	Status      Status
	TotalAmount decimal.Decimal
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// аудит, на переходы не влияют
	StatusChangedToPending   *time.Time
	StatusChangedToCompleted *time.Time
}

// OrderItem неизменяем после создания, цена зафиксирована на момент заказа.
type OrderItem struct {
	ID         int64
	OrderID    int64
	ProductID  int64
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

type ItemWithProduct struct {
	OrderItem

	ProductName     string
	ProductSKU      string
	ProductImageURL *string
	CategoryName    string
	BinLocation     string
	UnitType        int
}

type OrderDetails struct {
	Order
	Items []ItemWithProduct
}

// MaxLineQuantity верхняя граница количества в одной строке заказа.
const MaxLineQuantity = 100_000

// MaxAmount наибольшая сумма строки и заказа, numeric(10,2).
var MaxAmount = decimal.RequireFromString("99999999.99")

type LineRequest struct {
	ProductID int64
	Quantity  int
}

type CreateOrderParams struct {
	StoreID int64
	Lines   []LineRequest
	Notes   *string
}

// ProductStock текущая цена и остаток товара из каталога.
type ProductStock struct {
	ID            int64
	Price         decimal.Decimal
	StockQuantity int
}

// StatusPatch набор изменяемых при смене статуса полей.
// nil означает "не трогать".
type StatusPatch struct {
	Status                   Status
	Notes                    *string
	StatusChangedToPending   *time.Time
	StatusChangedToCompleted *time.Time
	UpdatedAt                time.Time
}

type OrderFilter struct {
	StoreID *int64
	Status  *Status
}
