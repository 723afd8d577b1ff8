package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderNumberAttempts = 3

func (s *orderService) CreateOrder(ctx context.Context, caller entities.Identity, params entities.CreateOrderParams) (entities.OrderDetails, error) {
	if err := authorizeStore(caller, params.StoreID); err != nil {
		return entities.OrderDetails{}, err
	}
	if err := validateLines(params.Lines); err != nil {
		return entities.OrderDetails{}, err
	}

	start := time.Now()

	var (
		details entities.OrderDetails
		err     error
	)
	// Номер заказа случайный, при коллизии транзакция откатывается и повторяется целиком
	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		details, err = s.createOrderTx(ctx, caller, params)
		if !errors.Is(err, entities.ErrOrderNumberTaken) {
			break
		}
		s.logger.Warn("order number collision", slog.Int("attempt", attempt))
	}
	if err != nil {
		return entities.OrderDetails{}, err
	}

	ordersCreated.Inc()
	orderCreateDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("order created",
		slog.Int64("order_id", details.ID),
		slog.String("order_number", details.OrderNumber),
		slog.Int64("store_id", details.StoreID),
	)

	s.publish(ctx, entities.OrderEvent{
		ID:          uuid.NewString(),
		Type:        entities.EventOrderCreated,
		OrderID:     details.ID,
		OrderNumber: details.OrderNumber,
		StoreID:     details.StoreID,
		UserID:      details.UserID,
		Status:      details.Status,
		TotalAmount: details.TotalAmount,
		OccurredAt:  details.CreatedAt,
	})

	return details, nil
}

func (s *orderService) createOrderTx(ctx context.Context, caller entities.Identity, params entities.CreateOrderParams) (entities.OrderDetails, error) {
	var details entities.OrderDetails

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		products, err := s.repo.LockProducts(ctx, productIDs(params.Lines))
		if err != nil {
			return fmt.Errorf("failed to lock products: %w", err)
		}

		lines, total, err := priceLines(params.Lines, products)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		order, err := s.repo.InsertOrder(ctx, entities.Order{
			OrderNumber:            newOrderNumber(now),
			UserID:                 caller.UserID,
			StoreID:                params.StoreID,
			Status:                 entities.StatusPending,
			TotalAmount:            total,
			Notes:                  params.Notes,
			CreatedAt:              now,
			UpdatedAt:              now,
			StatusChangedToPending: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			lines[i].CreatedAt = now
		}
		items, err := s.repo.InsertItems(ctx, lines)
		if err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}

		for _, line := range params.Lines {
			if err := s.repo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("failed to decrement stock of product %d: %w", line.ProductID, err)
			}
		}

		// строки перечитываются с полями товара, как в GET /orders/{id}
		withProducts, err := s.repo.ListItemsWithProducts(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("failed to read order items: %w", err)
		}
		if len(withProducts) != len(items) {
			return fmt.Errorf("order items mismatch: inserted %d, read %d", len(items), len(withProducts))
		}

		details = entities.OrderDetails{Order: order, Items: withProducts}
		return nil
	})
	if err != nil {
		return entities.OrderDetails{}, err
	}
	return details, nil
}

func validateLines(lines []entities.LineRequest) error {
	if len(lines) == 0 {
		return entities.ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity <= 0 || line.Quantity > entities.MaxLineQuantity {
			return fmt.Errorf("%w: product %d quantity %d", entities.ErrInvalidQuantity, line.ProductID, line.Quantity)
		}
	}
	return nil
}

// productIDs возвращает уникальные id по возрастанию, в этом порядке берутся блокировки.
func productIDs(lines []entities.LineRequest) []int64 {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// priceLines считает строки заказа по текущим ценам каталога.
func priceLines(lines []entities.LineRequest, products map[int64]entities.ProductStock) ([]entities.OrderItem, decimal.Decimal, error) {
	items := make([]entities.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		if line.Quantity <= 0 || line.Quantity > entities.MaxLineQuantity {
			return nil, decimal.Zero, fmt.Errorf("%w: product %d quantity %d", entities.ErrInvalidQuantity, line.ProductID, line.Quantity)
		}
		product, ok := products[line.ProductID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: %d", entities.ErrProductNotFound, line.ProductID)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, entities.OrderItem{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
		if total.GreaterThan(entities.MaxAmount) {
			return nil, decimal.Zero, fmt.Errorf("%w: order total exceeds %s", entities.ErrInvalidQuantity, entities.MaxAmount)
		}
	}

	return items, total, nil
}

// newOrderNumber формирует номер вида ORD-YYYYMMDD-NNNNNN.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), rand.IntN(1_000_000))
}
