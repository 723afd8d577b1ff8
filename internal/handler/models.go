package handler

import (
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
)

// CreateOrderRequest тело запроса на создание заказа
type CreateOrderRequest struct {
	StoreID string             `json:"store_id" validate:"required"`
	Items   []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	Notes   *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// OrderLineRequest строка заказа: цена берется из каталога, не от клиента
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0,lte=100000"`
}

// UpdateStatusRequest тело запроса на смену статуса
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Order заказ
type Order struct {
	ID                       string     `json:"id"`
	OrderNumber              string     `json:"order_number"`
	UserID                   string     `json:"user_id"`
	StoreID                  string     `json:"store_id"`
	Status                   string     `json:"status"`
	TotalAmount              float64    `json:"total_amount"`
	Notes                    *string    `json:"notes"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
	StatusChangedToPending   *time.Time `json:"status_changed_to_pending"`
	StatusChangedToCompleted *time.Time `json:"status_changed_to_completed"`
}

// OrderItem товар в заказе вместе с данными для отображения
type OrderItem struct {
	ID                 string    `json:"id"`
	OrderID            string    `json:"order_id"`
	ProductID          string    `json:"product_id"`
	Quantity           int       `json:"quantity"`
	UnitPrice          float64   `json:"unit_price"`
	TotalPrice         float64   `json:"total_price"`
	CreatedAt          time.Time `json:"created_at"`
	ProductName        string    `json:"product_name"`
	ProductSKU         string    `json:"product_sku"`
	ProductImageURL    *string   `json:"product_image_url"`
	CategoryName       string    `json:"category_name"`
	ProductBinLocation string    `json:"product_bin_location"`
	ProductUnitType    int       `json:"product_unit_type"`
}

// OrderWithItems заказ с товарами
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// IDCodec кодирует внутренние id для внешнего API.
type IDCodec interface {
	Encode(id int64) string
	Decode(s string) (int64, error)
}

// Деньги переводятся во float только здесь, на границе API.
func OrderEntityToJSON(ids IDCodec, o entities.Order) Order {
	return Order{
		ID:                       ids.Encode(o.ID),
		OrderNumber:              o.OrderNumber,
		UserID:                   ids.Encode(o.UserID),
		StoreID:                  ids.Encode(o.StoreID),
		Status:                   o.Status.Label(),
		TotalAmount:              o.TotalAmount.InexactFloat64(),
		Notes:                    o.Notes,
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
		StatusChangedToPending:   o.StatusChangedToPending,
		StatusChangedToCompleted: o.StatusChangedToCompleted,
	}
}

func OrdersEntityToJSON(ids IDCodec, orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(ids, o))
	}
	return result
}

func OrderItemEntityToJSON(ids IDCodec, it entities.ItemWithProduct) OrderItem {
	return OrderItem{
		ID:                 ids.Encode(it.ID),
		OrderID:            ids.Encode(it.OrderID),
		ProductID:          ids.Encode(it.ProductID),
		Quantity:           it.Quantity,
		UnitPrice:          it.UnitPrice.InexactFloat64(),
		TotalPrice:         it.TotalPrice.InexactFloat64(),
		CreatedAt:          it.CreatedAt,
		ProductName:        it.ProductName,
		ProductSKU:         it.ProductSKU,
		ProductImageURL:    it.ProductImageURL,
		CategoryName:       it.CategoryName,
		ProductBinLocation: it.BinLocation,
		ProductUnitType:    it.UnitType,
	}
}

func OrderDetailsEntityToJSON(ids IDCodec, d entities.OrderDetails) OrderWithItems {
	items := make([]OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, OrderItemEntityToJSON(ids, it))
	}
	return OrderWithItems{
		Order: OrderEntityToJSON(ids, d.Order),
		Items: items,
	}
}

func CreateOrderJSONToParams(ids IDCodec, req CreateOrderRequest) (entities.CreateOrderParams, error) {
	storeID, err := ids.Decode(req.StoreID)
	if err != nil {
		return entities.CreateOrderParams{}, errInvalidField("store_id", err)
	}

	lines := make([]entities.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := ids.Decode(it.ProductID)
		if err != nil {
			return entities.CreateOrderParams{}, errInvalidField("product_id", err)
		}
		lines = append(lines, entities.LineRequest{ProductID: productID, Quantity: it.Quantity})
	}

	return entities.CreateOrderParams{
		StoreID: storeID,
		Lines:   lines,
		Notes:   req.Notes,
	}, nil
}
