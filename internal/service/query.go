package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const fetchTimeout = 5 * time.Second

var readRetry = utils.RetryConfig{
	InitialDelay: 50 * time.Millisecond,
	MaxAttempts:  3,
	Multiplier:   2,
}

func orderCacheKey(id int64) string {
	return "order:" + strconv.FormatInt(id, 10)
}

// ListOrders возвращает заказы, видимые вызывающему, от новых к старым.
func (s *orderService) ListOrders(ctx context.Context, caller entities.Identity, status *entities.Status) ([]entities.Order, error) {
	storeID, err := listScope(caller)
	if err != nil {
		return nil, err
	}
	return s.listOrders(ctx, entities.OrderFilter{StoreID: storeID, Status: status})
}

func (s *orderService) ListStoreOrders(ctx context.Context, caller entities.Identity, storeID int64, status *entities.Status) ([]entities.Order, error) {
	if err := authorizeStore(caller, storeID); err != nil {
		return nil, err
	}
	return s.listOrders(ctx, entities.OrderFilter{StoreID: &storeID, Status: status})
}

func (s *orderService) listOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	orders, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, caller entities.Identity, id int64) (entities.OrderDetails, error) {
	details, err := s.loadOrder(ctx, id)
	if err != nil {
		return entities.OrderDetails{}, err
	}

	if s.scopeSingleFetch && !caller.IsAdmin() && !caller.OwnsStore(details.StoreID) {
		return entities.OrderDetails{}, entities.ErrAccessDenied
	}
	return details, nil
}

// WarmUp загружает в кэш последние count заказов.
func (s *orderService) WarmUp(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}

	ids, err := s.repo.LatestOrderIDs(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to get latest orders: %w", err)
	}

	for _, id := range ids {
		if _, err := s.loadOrder(ctx, id); err != nil {
			s.logger.Warn("failed to warm up order", slog.Int64("order_id", id), slog.Any("error", err))
		}
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(ids)))
	return nil
}

func (s *orderService) loadOrder(ctx context.Context, id int64) (entities.OrderDetails, error) {
	key := orderCacheKey(id)

	if data, ok := s.cache.Get(key); ok {
		var details entities.OrderDetails
		err := details.Unmarshal(data)
		if err == nil {
			cacheHits.Inc()
			return details, nil
		}
		s.logger.Error("failed to unmarshal cached order", slog.Int64("order_id", id), slog.Any("error", err))
		s.cache.Delete(key)
	}
	cacheMisses.Inc()

	// Параллельные промахи по одному заказу ходят в БД один раз.
	// Общая загрузка не зависит от отмены запроса того, кто ее начал.
	ch := s.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return s.fetchOrder(fctx, id)
	})

	select {
	case <-ctx.Done():
		return entities.OrderDetails{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return entities.OrderDetails{}, res.Err
		}
		return res.Val.(entities.OrderDetails), nil
	}
}

func (s *orderService) fetchOrder(ctx context.Context, id int64) (entities.OrderDetails, error) {
	gen := s.cacheGeneration()

	var (
		order entities.Order
		items []entities.ItemWithProduct
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return utils.Retry(gctx, readRetry, func(ctx context.Context) error {
			var err error
			order, err = s.repo.GetOrderByID(ctx, id)
			return err
		}, entities.ErrOrderNotFound)
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.ListItemsWithProducts(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to get order items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return entities.OrderDetails{}, err
	}

	if items == nil {
		items = []entities.ItemWithProduct{}
	}
	details := entities.OrderDetails{Order: order, Items: items}

	data, err := details.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.Int64("order_id", id), slog.Any("error", err))
		return details, nil
	}
	if !s.storeIfCurrent(orderCacheKey(id), gen, data) {
		s.logger.Debug("order changed during fetch, not cached", slog.Int64("order_id", id))
	}
	return details, nil
}

func (s *orderService) cacheGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.cacheGen
}

// storeIfCurrent пишет в кэш, только если с начала чтения не было инвалидаций.
func (s *orderService) storeIfCurrent(key string, gen uint64, data []byte) bool {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheGen != gen {
		return false
	}
	s.cache.Set(key, data)
	return true
}

// invalidateOrder вызывается после коммита изменения заказа.
// Новые чтения не присоединяются к загрузке, начатой до коммита.
func (s *orderService) invalidateOrder(id int64) {
	key := orderCacheKey(id)

	s.cacheMu.Lock()
	s.cacheGen++
	s.cache.Delete(key)
	s.cacheMu.Unlock()

	s.group.Forget(key)
}
