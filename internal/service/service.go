package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/pkg/trm"
	"golang.org/x/sync/singleflight"
)

type OrderRepo interface {
	// LockProducts возвращает найденные товары, заблокированные до конца транзакции.
	LockProducts(ctx context.Context, ids []int64) (map[int64]entities.ProductStock, error)
	InsertOrder(ctx context.Context, o entities.Order) (entities.Order, error)
	InsertItems(ctx context.Context, items []entities.OrderItem) ([]entities.OrderItem, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error

	GetOrderByID(ctx context.Context, id int64) (entities.Order, error)
	GetOrderForUpdate(ctx context.Context, id int64) (entities.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, patch entities.StatusPatch) (entities.Order, error)

	ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	ListItemsWithProducts(ctx context.Context, orderID int64) ([]entities.ItemWithProduct, error)
	LatestOrderIDs(ctx context.Context, count int) ([]int64, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type EventPublisher interface {
	Publish(ctx context.Context, evt entities.OrderEvent) error
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	events    EventPublisher
	group     singleflight.Group

	// cacheGen растет при каждой инвалидации, чтение с устаревшим поколением в кэш не пишет
	cacheMu  sync.Mutex
	cacheGen uint64

	scopeSingleFetch bool
	now              func() time.Time
}

type Option func(*orderService)

// WithSingleFetchScope включает проверку владельца при получении одного заказа.
func WithSingleFetchScope(enabled bool) Option {
	return func(s *orderService) {
		s.scopeSingleFetch = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *orderService) {
		s.now = now
	}
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	cache Cache,
	events EventPublisher,
	opts ...Option,
) *orderService {
	s := &orderService{
		logger:           logger.With(slog.String("service", "order")),
		txManager:        txManager,
		repo:             repo,
		cache:            cache,
		events:           events,
		scopeSingleFetch: true,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish отправляет событие после коммита. Ошибка публикации не влияет на результат операции.
func (s *orderService) publish(ctx context.Context, evt entities.OrderEvent) {
	if err := s.events.Publish(context.WithoutCancel(ctx), evt); err != nil {
		eventPublishFailures.WithLabelValues(string(evt.Type)).Inc()
		s.logger.Warn("failed to publish order event",
			slog.String("type", string(evt.Type)),
			slog.Int64("order_id", evt.OrderID),
			slog.Any("error", err),
		)
	}
}
