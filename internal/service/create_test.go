package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/internal/service"
	mocks "github.com/SergeyBogomolovv/store-orders/internal/service/mocks"
	txMocks "github.com/SergeyBogomolovv/store-orders/pkg/trm/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

type testDeps struct {
	repo   *mocks.MockOrderRepo
	cache  *mocks.MockCache
	events *mocks.MockEventPublisher
	tx     *txMocks.MockManager
}

func newTestDeps(t *testing.T) testDeps {
	d := testDeps{
		repo:   mocks.NewMockOrderRepo(t),
		cache:  mocks.NewMockCache(t),
		events: mocks.NewMockEventPublisher(t),
		tx:     txMocks.NewMockManager(t),
	}
	d.tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(
			func(ctx context.Context, cb func(ctx context.Context) error) error {
				return cb(ctx)
			}).
		Maybe()
	return d
}

type orderService interface {
	CreateOrder(ctx context.Context, caller entities.Identity, params entities.CreateOrderParams) (entities.OrderDetails, error)
	UpdateStatus(ctx context.Context, caller entities.Identity, orderID int64, target entities.Status, notes *string) (entities.Order, error)
	ListOrders(ctx context.Context, caller entities.Identity, status *entities.Status) ([]entities.Order, error)
	ListStoreOrders(ctx context.Context, caller entities.Identity, storeID int64, status *entities.Status) ([]entities.Order, error)
	GetOrder(ctx context.Context, caller entities.Identity, id int64) (entities.OrderDetails, error)
	WarmUp(ctx context.Context, count int) error
}

func (d testDeps) service(opts ...service.Option) orderService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]service.Option{service.WithClock(func() time.Time { return fixedNow })}, opts...)
	return service.NewOrderService(logger, d.tx, d.repo, d.cache, d.events, opts...)
}

func storeCaller(storeID int64) entities.Identity {
	return entities.Identity{UserID: 3, Role: entities.RoleStore, StoreID: &storeID}
}

func adminCaller() entities.Identity {
	return entities.Identity{UserID: 1, Role: entities.RoleAdmin}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func catalog() map[int64]entities.ProductStock {
	return map[int64]entities.ProductStock{
		1: {ID: 1, Price: dec("9.99"), StockQuantity: 10},
		2: {ID: 2, Price: dec("5.00"), StockQuantity: 1},
	}
}

func insertOrderOK(d testDeps) {
	d.repo.EXPECT().
		InsertOrder(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			o.ID = 42
			return o, nil
		})
}

func insertItemsOK(d testDeps) {
	var inserted []entities.OrderItem
	d.repo.EXPECT().
		InsertItems(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, items []entities.OrderItem) ([]entities.OrderItem, error) {
			for i := range items {
				items[i].ID = int64(i + 1)
			}
			inserted = items
			return items, nil
		})
	readItemsBack(d, &inserted)
}

// readItemsBack отдает вставленные строки с полями товара.
func readItemsBack(d testDeps, inserted *[]entities.OrderItem) {
	d.repo.EXPECT().
		ListItemsWithProducts(mock.Anything, int64(42)).
		RunAndReturn(func(_ context.Context, _ int64) ([]entities.ItemWithProduct, error) {
			out := make([]entities.ItemWithProduct, 0, len(*inserted))
			for _, it := range *inserted {
				out = append(out, entities.ItemWithProduct{
					OrderItem:    it,
					ProductName:  fmt.Sprintf("product %d", it.ProductID),
					ProductSKU:   fmt.Sprintf("SKU-%d", it.ProductID),
					CategoryName: "grocery",
					BinLocation:  "A-1",
				})
			}
			return out, nil
		}).
		Maybe()
}

func TestOrderService_CreateOrder(t *testing.T) {
	type MockBehavior func(d testDeps)

	dbError := errors.New("db error")
	twoLines := []entities.LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}

	testCases := []struct {
		name         string
		caller       entities.Identity
		params       entities.CreateOrderParams
		mockBehavior MockBehavior
		wantErr      error
		wantTotal    string
	}{
		{
			name:   "admin creates order priced from catalog",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {
				var inserted []entities.OrderItem
				d.repo.EXPECT().LockProducts(mock.Anything, []int64{1, 2}).Return(catalog(), nil).Once()
				d.repo.EXPECT().
					InsertOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
						return o.TotalAmount.Equal(dec("24.98")) &&
							o.Status == entities.StatusPending &&
							o.StoreID == 7 &&
							o.UserID == 1 &&
							strings.HasPrefix(o.OrderNumber, "ORD-20240115-") &&
							o.StatusChangedToPending != nil && o.StatusChangedToPending.Equal(fixedNow) &&
							o.StatusChangedToCompleted == nil
					})).
					RunAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
						o.ID = 42
						return o, nil
					}).Once()
				d.repo.EXPECT().
					InsertItems(mock.Anything, mock.MatchedBy(func(items []entities.OrderItem) bool {
						return len(items) == 2 &&
							items[0].OrderID == 42 && items[0].TotalPrice.Equal(dec("19.98")) &&
							items[1].OrderID == 42 && items[1].TotalPrice.Equal(dec("5.00"))
					})).
					RunAndReturn(func(_ context.Context, items []entities.OrderItem) ([]entities.OrderItem, error) {
						inserted = items
						return items, nil
					}).Once()
				readItemsBack(d, &inserted)
				d.repo.EXPECT().DecrementStock(mock.Anything, int64(1), 2).Return(nil).Once()
				d.repo.EXPECT().DecrementStock(mock.Anything, int64(2), 1).Return(nil).Once()
				d.events.EXPECT().
					Publish(mock.Anything, mock.MatchedBy(func(evt entities.OrderEvent) bool {
						return evt.Type == entities.EventOrderCreated && evt.OrderID == 42 && evt.ID != ""
					})).
					Return(nil).Once()
			},
			wantTotal: "24.98",
		},
		{
			name:   "store creates order for own store",
			caller: storeCaller(7),
			params: entities.CreateOrderParams{StoreID: 7, Lines: []entities.LineRequest{{ProductID: 2, Quantity: 3}}},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, []int64{2}).Return(catalog(), nil).Once()
				insertOrderOK(d)
				insertItemsOK(d)
				// остаток может уйти в минус
				d.repo.EXPECT().DecrementStock(mock.Anything, int64(2), 3).Return(nil).Once()
				d.events.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantTotal: "15.00",
		},
		{
			name:   "duplicate product lines lock once",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: []entities.LineRequest{
				{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 2},
			}},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, []int64{1, 2}).Return(catalog(), nil).Once()
				insertOrderOK(d)
				insertItemsOK(d)
				d.repo.EXPECT().DecrementStock(mock.Anything, int64(2), 1).Return(nil).Once()
				d.repo.EXPECT().DecrementStock(mock.Anything, int64(1), 1).Return(nil).Once()
				d.repo.EXPECT().DecrementStock(mock.Anything, int64(2), 2).Return(nil).Once()
				d.events.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantTotal: "24.99",
		},
		{
			name:         "store creates order for another store",
			caller:       storeCaller(5),
			params:       entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {},
			wantErr:      entities.ErrAccessDenied,
		},
		{
			name:         "store caller without store",
			caller:       entities.Identity{UserID: 3, Role: entities.RoleStore},
			params:       entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {},
			wantErr:      entities.ErrAccessDenied,
		},
		{
			name:         "empty order",
			caller:       adminCaller(),
			params:       entities.CreateOrderParams{StoreID: 7},
			mockBehavior: func(d testDeps) {},
			wantErr:      entities.ErrEmptyOrder,
		},
		{
			name:   "zero quantity",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: []entities.LineRequest{
				{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 0},
			}},
			mockBehavior: func(d testDeps) {},
			wantErr:      entities.ErrInvalidQuantity,
		},
		{
			name:   "negative quantity",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: []entities.LineRequest{
				{ProductID: 1, Quantity: -2},
			}},
			mockBehavior: func(d testDeps) {},
			wantErr:      entities.ErrInvalidQuantity,
		},
		{
			name:   "quantity above line limit",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: []entities.LineRequest{
				{ProductID: 1, Quantity: entities.MaxLineQuantity + 1},
			}},
			mockBehavior: func(d testDeps) {},
			wantErr:      entities.ErrInvalidQuantity,
		},
		{
			name:   "order total above numeric limit",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: []entities.LineRequest{
				{ProductID: 5, Quantity: entities.MaxLineQuantity},
			}},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, []int64{5}).
					Return(map[int64]entities.ProductStock{5: {ID: 5, Price: dec("5000.00")}}, nil).Once()
			},
			wantErr: entities.ErrInvalidQuantity,
		},
		{
			name:   "product not found aborts before any write",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: []entities.LineRequest{
				{ProductID: 1, Quantity: 1}, {ProductID: 99, Quantity: 1},
			}},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, []int64{1, 99}).Return(catalog(), nil).Once()
			},
			wantErr: entities.ErrProductNotFound,
		},
		{
			name:   "order number collision is retried",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, []int64{1, 2}).Return(catalog(), nil).Times(2)
				d.repo.EXPECT().InsertOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ErrOrderNumberTaken).Once()
				insertOrderOK(d)
				insertItemsOK(d)
				d.repo.EXPECT().DecrementStock(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
				d.events.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantTotal: "24.98",
		},
		{
			name:   "order number collision exhausts attempts",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, mock.Anything).Return(catalog(), nil).Times(3)
				d.repo.EXPECT().InsertOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ErrOrderNumberTaken).Times(3)
			},
			wantErr: entities.ErrOrderNumberTaken,
		},
		{
			name:   "stock decrement fails",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, mock.Anything).Return(catalog(), nil).Once()
				insertOrderOK(d)
				insertItemsOK(d)
				d.repo.EXPECT().DecrementStock(mock.Anything, int64(1), 2).Return(dbError).Once()
			},
			wantErr: dbError,
		},
		{
			name:   "items read back fails",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, mock.Anything).Return(catalog(), nil).Once()
				insertOrderOK(d)
				d.repo.EXPECT().InsertItems(mock.Anything, mock.Anything).
					RunAndReturn(func(_ context.Context, items []entities.OrderItem) ([]entities.OrderItem, error) {
						return items, nil
					}).Once()
				d.repo.EXPECT().DecrementStock(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
				d.repo.EXPECT().ListItemsWithProducts(mock.Anything, int64(42)).Return(nil, dbError).Once()
			},
			wantErr: dbError,
		},
		{
			name:   "event publish failure does not fail creation",
			caller: adminCaller(),
			params: entities.CreateOrderParams{StoreID: 7, Lines: twoLines},
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().LockProducts(mock.Anything, mock.Anything).Return(catalog(), nil).Once()
				insertOrderOK(d)
				insertItemsOK(d)
				d.repo.EXPECT().DecrementStock(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
				d.events.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			wantTotal: "24.98",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps(t)
			tc.mockBehavior(d)

			svc := d.service()
			got, err := svc.CreateOrder(context.Background(), tc.caller, tc.params)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(42), got.ID)
			assert.Equal(t, entities.StatusPending, got.Status)
			assert.True(t, got.TotalAmount.Equal(dec(tc.wantTotal)), "total %s", got.TotalAmount)

			require.NotEmpty(t, got.Items)
			sum := decimal.Zero
			for _, it := range got.Items {
				assert.Equal(t, fmt.Sprintf("product %d", it.ProductID), it.ProductName)
				assert.NotEmpty(t, it.ProductSKU)
				assert.NotEmpty(t, it.BinLocation)
				assert.True(t, it.TotalPrice.Equal(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))))
				sum = sum.Add(it.TotalPrice)
			}
			assert.True(t, sum.Equal(got.TotalAmount))
		})
	}
}
