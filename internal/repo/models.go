package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID                       int64           `db:"id"`
	OrderNumber              string          `db:"order_number"`
	UserID                   int64           `db:"user_id"`
	StoreID                  int64           `db:"store_id"`
	Status                   string          `db:"status"`
	TotalAmount              decimal.Decimal `db:"total_amount"`
	Notes                    sql.NullString  `db:"notes"`
	CreatedAt                time.Time       `db:"created_at"`
	UpdatedAt                time.Time       `db:"updated_at"`
	StatusChangedToPending   sql.NullTime    `db:"status_changed_to_pending"`
	StatusChangedToCompleted sql.NullTime    `db:"status_changed_to_completed"`
}

type OrderItem struct {
	ID         int64           `db:"id"`
	OrderID    int64           `db:"order_id"`
	ProductID  int64           `db:"product_id"`
	Quantity   int             `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  time.Time       `db:"created_at"`
}

type ItemWithProduct struct {
	OrderItem

	ProductName     string         `db:"product_name"`
	ProductSKU      string         `db:"product_sku"`
	ProductImageURL sql.NullString `db:"product_image_url"`
	CategoryName    string         `db:"category_name"`
	BinLocation     string         `db:"bin_location"`
	UnitType        int            `db:"unit_type"`
}

type ProductStock struct {
	ID            int64           `db:"id"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
}

func OrderToEntity(o Order) entities.Order {
	return entities.Order{
		ID:                       o.ID,
		OrderNumber:              o.OrderNumber,
		UserID:                   o.UserID,
		StoreID:                  o.StoreID,
		Status:                   entities.Status(o.Status),
		TotalAmount:              o.TotalAmount,
		Notes:                    nullStringToPtr(o.Notes),
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
		StatusChangedToPending:   nullTimeToPtr(o.StatusChangedToPending),
		StatusChangedToCompleted: nullTimeToPtr(o.StatusChangedToCompleted),
	}
}

func OrderItemToEntity(i OrderItem) entities.OrderItem {
	return entities.OrderItem{
		ID:         i.ID,
		OrderID:    i.OrderID,
		ProductID:  i.ProductID,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TotalPrice: i.TotalPrice,
		CreatedAt:  i.CreatedAt,
	}
}

func ItemWithProductToEntity(i ItemWithProduct) entities.ItemWithProduct {
	return entities.ItemWithProduct{
		OrderItem:       OrderItemToEntity(i.OrderItem),
		ProductName:     i.ProductName,
		ProductSKU:      i.ProductSKU,
		ProductImageURL: nullStringToPtr(i.ProductImageURL),
		CategoryName:    i.CategoryName,
		BinLocation:     i.BinLocation,
		UnitType:        i.UnitType,
	}
}

func ProductStockToEntity(p ProductStock) entities.ProductStock {
	return entities.ProductStock{
		ID:            p.ID,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
