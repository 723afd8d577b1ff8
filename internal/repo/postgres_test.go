package repo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/pkg/trm"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*postgresRepo, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { sqlxDB.Close() })
	return NewPostgresRepo(sqlxDB), sqlxDB, mock
}

func orderRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(orderColumns).
		AddRow(int64(42), "ORD-20240115-000123", int64(3), int64(7), "PENDING", "24.98", nil,
			now, now, now, nil)
}

func TestPostgresRepo_LockProducts(t *testing.T) {
	r, _, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, price, stock_quantity FROM products WHERE id IN \(\$1,\$2\) ORDER BY id FOR UPDATE`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price", "stock_quantity"}).
			AddRow(int64(1), "9.99", 10).
			AddRow(int64(2), "5.00", 0))

	products, err := r.LockProducts(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 0, products[2].StockQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_LockProducts_Empty(t *testing.T) {
	r, _, mock := newMockRepo(t)

	products, err := r.LockProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_InsertOrder(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	order := entities.Order{
		OrderNumber:            "ORD-20240115-000123",
		UserID:                 3,
		StoreID:                7,
		Status:                 entities.StatusPending,
		TotalAmount:            decimal.RequireFromString("24.98"),
		CreatedAt:              now,
		UpdatedAt:              now,
		StatusChangedToPending: &now,
	}

	t.Run("success", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`INSERT INTO orders (.+) RETURNING id`).
			WillReturnRows(orderRows(now))

		got, err := r.InsertOrder(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)
		assert.Equal(t, entities.StatusPending, got.Status)
		assert.Nil(t, got.Notes)
		assert.Nil(t, got.StatusChangedToCompleted)
		require.NotNil(t, got.StatusChangedToPending)
		assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("24.98")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order number collision", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_order_number_key"})

		_, err := r.InsertOrder(context.Background(), order)
		assert.ErrorIs(t, err, entities.ErrOrderNumberTaken)
	})

	t.Run("other unique violation", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_pkey"})

		_, err := r.InsertOrder(context.Background(), order)
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrOrderNumberTaken)
	})
}

func TestPostgresRepo_InsertItems(t *testing.T) {
	r, _, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO order_items \(order_id,product_id,quantity,unit_price,total_price,created_at\) VALUES (.+),(.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(int64(1), int64(42), int64(1), 2, "9.99", "19.98", now).
			AddRow(int64(2), int64(42), int64(2), 1, "5.00", "5.00", now))

	items, err := r.InsertItems(context.Background(), []entities.OrderItem{
		{OrderID: 42, ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("9.99"), TotalPrice: decimal.RequireFromString("19.98"), CreatedAt: now},
		{OrderID: 42, ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00"), TotalPrice: decimal.RequireFromString("5.00"), CreatedAt: now},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.True(t, items[0].TotalPrice.Equal(decimal.RequireFromString("19.98")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_DecrementStock(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		err     error
		wantErr error
	}{
		{name: "decremented", result: sqlmock.NewResult(0, 1)},
		{name: "product missing", result: sqlmock.NewResult(0, 0), wantErr: entities.ErrProductNotFound},
		{name: "db error", err: errors.New("conn reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, mock := newMockRepo(t)
			exp := mock.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity - \$1, in_stock = \(stock_quantity - \$2\) > 0, updated_at = NOW\(\) WHERE id = \$3`).
				WithArgs(2, 2, int64(1))
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := r.DecrementStock(context.Background(), 1, 2)
			switch {
			case tt.err != nil:
				assert.ErrorIs(t, err, tt.err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepo_GetOrderByID(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(orderRows(now))

		order, err := r.GetOrderByID(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, "ORD-20240115-000123", order.OrderNumber)
		assert.Equal(t, int64(7), order.StoreID)
	})

	t.Run("not found", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		_, err := r.GetOrderByID(context.Background(), 42)
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestPostgresRepo_GetOrderForUpdate_UsesTransaction(t *testing.T) {
	r, db, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnRows(orderRows(now))
	mock.ExpectCommit()

	err := trm.NewManager(db).Do(context.Background(), func(ctx context.Context) error {
		_, err := r.GetOrderForUpdate(ctx, 42)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusUpdate_FixedColumns(t *testing.T) {
	qb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	notes := "left at the back door"

	tests := []struct {
		name       string
		patch      entities.StatusPatch
		wantPrefix string
		wantArgs   int
	}{
		{
			name:       "status only",
			patch:      entities.StatusPatch{Status: entities.StatusShipped, UpdatedAt: now},
			wantPrefix: "UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ",
			wantArgs:   3,
		},
		{
			name: "all fields",
			patch: entities.StatusPatch{
				Status:                   entities.StatusDelivered,
				Notes:                    &notes,
				StatusChangedToPending:   &now,
				StatusChangedToCompleted: &now,
				UpdatedAt:                now,
			},
			wantPrefix: "UPDATE orders SET status = $1, updated_at = $2, notes = $3, status_changed_to_pending = $4, status_changed_to_completed = $5 WHERE id = $6 RETURNING ",
			wantArgs:   6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := statusUpdate(qb, 42, tt.patch).ToSql()
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(query, tt.wantPrefix), query)
			assert.Len(t, args, tt.wantArgs)
			assert.Equal(t, string(tt.patch.Status), args[0])
			assert.Equal(t, int64(42), args[len(args)-1])
		})
	}
}

func TestPostgresRepo_UpdateOrderStatus(t *testing.T) {
	r, _, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE orders SET status = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
		WithArgs("SHIPPED", sqlmock.AnyArg(), int64(42)).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(int64(42), "ORD-20240115-000123", int64(3), int64(7), "SHIPPED", "24.98", "ring twice",
				now, now, now, nil))

	order, err := r.UpdateOrderStatus(context.Background(), 42, entities.StatusPatch{
		Status:    entities.StatusShipped,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusShipped, order.Status)
	require.NotNil(t, order.Notes)
	assert.Equal(t, "ring twice", *order.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_ListOrders(t *testing.T) {
	now := time.Now()
	storeID := int64(7)
	status := entities.StatusPending

	tests := []struct {
		name   string
		filter entities.OrderFilter
		query  string
		args   []any
	}{
		{
			name:  "all",
			query: `SELECT (.+) FROM orders ORDER BY created_at DESC, id DESC`,
		},
		{
			name:   "by store",
			filter: entities.OrderFilter{StoreID: &storeID},
			query:  `SELECT (.+) FROM orders WHERE store_id = \$1 ORDER BY created_at DESC, id DESC`,
			args:   []any{int64(7)},
		},
		{
			name:   "by store and status",
			filter: entities.OrderFilter{StoreID: &storeID, Status: &status},
			query:  `SELECT (.+) FROM orders WHERE store_id = \$1 AND status = \$2 ORDER BY created_at DESC, id DESC`,
			args:   []any{int64(7), "PENDING"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, mock := newMockRepo(t)
			exp := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				args := make([]driver.Value, 0, len(tt.args))
				for _, a := range tt.args {
					args = append(args, a)
				}
				exp.WithArgs(args...)
			}
			exp.WillReturnRows(orderRows(now))

			orders, err := r.ListOrders(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, orders, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepo_ListItemsWithProducts(t *testing.T) {
	r, _, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM order_items oi JOIN products p ON p.id = oi.product_id LEFT JOIN categories c ON c.id = p.category_id WHERE oi.order_id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "quantity", "unit_price", "total_price", "created_at",
			"product_name", "product_sku", "product_image_url", "category_name", "bin_location", "unit_type",
		}).
			AddRow(int64(1), int64(42), int64(1), 2, "9.99", "19.98", now,
				"Milk", "MLK-1", "https://cdn.example.com/milk.png", "Dairy", "A-01", 1).
			AddRow(int64(2), int64(42), int64(2), 1, "5.00", "5.00", now,
				"Bread", "BRD-1", nil, "", "B-07", 0))

	items, err := r.ListItemsWithProducts(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0].ProductName)
	require.NotNil(t, items[0].ProductImageURL)
	assert.Equal(t, "Dairy", items[0].CategoryName)
	assert.Nil(t, items[1].ProductImageURL)
	assert.Equal(t, "B-07", items[1].BinLocation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_LatestOrderIDs(t *testing.T) {
	r, _, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id FROM orders ORDER BY created_at DESC, id DESC LIMIT 2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)).AddRow(int64(8)))

	ids, err := r.LatestOrderIDs(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 8}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
