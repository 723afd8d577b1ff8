package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/google/uuid"
)

var adminTargets = map[entities.Status]bool{
	entities.StatusShipped:   true,
	entities.StatusDelivered: true,
}

// checkTransition проверяет переход по роли вызывающего.
// noop=true означает повторную отметку доставки магазином: заказ возвращается без изменений.
func checkTransition(caller entities.Identity, order entities.Order, target entities.Status) (noop bool, err error) {
	switch caller.Role {
	case entities.RoleAdmin:
		if order.Status != entities.StatusPending {
			return false, fmt.Errorf("%w: only Pending orders can be updated by admin", entities.ErrInvalidTransition)
		}
		if !adminTargets[target] {
			return false, fmt.Errorf("%w: admin can move Pending order to Shipped or Delivered, got %s",
				entities.ErrInvalidTransition, target.Label())
		}
		return false, nil

	case entities.RoleStore:
		if !caller.OwnsStore(order.StoreID) {
			return false, entities.ErrAccessDenied
		}
		if target != entities.StatusDelivered {
			return false, fmt.Errorf("%w: store can only mark orders as Delivered", entities.ErrInvalidTransition)
		}
		if order.Status == entities.StatusDelivered {
			return true, nil
		}
		// Cancelled и Refunded конечные: магазин не может отметить их доставленными (DESIGN.md, Store on terminal orders)
		if order.Status.Terminal() {
			return false, fmt.Errorf("%w: order is %s", entities.ErrInvalidTransition, order.Status.Label())
		}
		return false, nil

	default:
		return false, entities.ErrAccessDenied
	}
}

func (s *orderService) statusPatch(target entities.Status, notes *string) entities.StatusPatch {
	now := s.now().UTC()
	patch := entities.StatusPatch{
		Status:    target,
		Notes:     notes,
		UpdatedAt: now,
	}
	switch target {
	case entities.StatusPending:
		patch.StatusChangedToPending = &now
	case entities.StatusDelivered:
		patch.StatusChangedToCompleted = &now
	}
	return patch
}

func (s *orderService) UpdateStatus(ctx context.Context, caller entities.Identity, orderID int64, target entities.Status, notes *string) (entities.Order, error) {
	var (
		updated  entities.Order
		previous entities.Status
		changed  bool
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		noop, err := checkTransition(caller, order, target)
		if err != nil {
			return err
		}
		if noop {
			updated = order
			return nil
		}

		updated, err = s.repo.UpdateOrderStatus(ctx, orderID, s.statusPatch(target, notes))
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		previous = order.Status
		changed = true
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	if !changed {
		return updated, nil
	}

	s.invalidateOrder(orderID)
	statusTransitions.WithLabelValues(string(previous), string(updated.Status)).Inc()
	s.logger.Debug("order status updated",
		slog.Int64("order_id", orderID),
		slog.String("from", string(previous)),
		slog.String("to", string(updated.Status)),
	)

	s.publish(ctx, entities.OrderEvent{
		ID:             uuid.NewString(),
		Type:           entities.EventOrderStatusChanged,
		OrderID:        updated.ID,
		OrderNumber:    updated.OrderNumber,
		StoreID:        updated.StoreID,
		UserID:         updated.UserID,
		Status:         updated.Status,
		PreviousStatus: previous,
		TotalAmount:    updated.TotalAmount,
		OccurredAt:     updated.UpdatedAt,
	})

	return updated, nil
}
