package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolationCode   = "23505"
	orderNumberConstraint = "orders_order_number_key"
)

var (
	orderColumns = []string{
		"id", "order_number", "user_id", "store_id", "status", "total_amount", "notes",
		"created_at", "updated_at", "status_changed_to_pending", "status_changed_to_completed",
	}
	itemColumns = []string{
		"id", "order_id", "product_id", "quantity", "unit_price", "total_price", "created_at",
	}
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// LockProducts блокирует строки товаров до конца транзакции.
// Блокировки берутся в порядке возрастания id, чтобы параллельные заказы не вставали в дедлок.
func (r *postgresRepo) LockProducts(ctx context.Context, ids []int64) (map[int64]entities.ProductStock, error) {
	if len(ids) == 0 {
		return map[int64]entities.ProductStock{}, nil
	}

	query, args := r.qb.Select("id", "price", "stock_quantity").
		From("products").
		Where(sq.Eq{"id": ids}).
		OrderBy("id").
		Suffix("FOR UPDATE").
		MustSql()

	var products []ProductStock
	if err := r.selectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}

	result := make(map[int64]entities.ProductStock, len(products))
	for _, p := range products {
		result[p.ID] = ProductStockToEntity(p)
	}
	return result, nil
}

func (r *postgresRepo) InsertOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	query, args := r.qb.Insert("orders").
		Columns(
			"order_number", "user_id", "store_id", "status", "total_amount", "notes",
			"created_at", "updated_at", "status_changed_to_pending", "status_changed_to_completed",
		).
		Values(
			o.OrderNumber, o.UserID, o.StoreID, string(o.Status), o.TotalAmount, nullString(o.Notes),
			o.CreatedAt, o.UpdatedAt, nullTime(o.StatusChangedToPending), nullTime(o.StatusChangedToCompleted),
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if isUniqueViolation(err, orderNumberConstraint) {
		return entities.Order{}, entities.ErrOrderNumberTaken
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	return OrderToEntity(order), nil
}

func (r *postgresRepo) InsertItems(ctx context.Context, items []entities.OrderItem) ([]entities.OrderItem, error) {
	if len(items) == 0 {
		return []entities.OrderItem{}, nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "unit_price", "total_price", "created_at").
		Suffix("RETURNING " + strings.Join(itemColumns, ", "))

	for _, it := range items {
		q = q.Values(it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice, it.CreatedAt)
	}

	query, args := q.MustSql()
	var rows []OrderItem
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}

	result := make([]entities.OrderItem, 0, len(rows))
	for _, row := range rows {
		result = append(result, OrderItemToEntity(row))
	}
	return result, nil
}

// DecrementStock списывает остаток без проверки на нехватку: остаток может уйти в минус.
func (r *postgresRepo) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	query, args := r.qb.Update("products").
		Set("stock_quantity", sq.Expr("stock_quantity - ?", quantity)).
		Set("in_stock", sq.Expr("(stock_quantity - ?) > 0", quantity)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": productID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if affected == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id int64) (entities.Order, error) {
	return r.getOrder(ctx, r.selectOrders().Where(sq.Eq{"id": id}))
}

func (r *postgresRepo) GetOrderForUpdate(ctx context.Context, id int64) (entities.Order, error) {
	return r.getOrder(ctx, r.selectOrders().Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *postgresRepo) UpdateOrderStatus(ctx context.Context, id int64, patch entities.StatusPatch) (entities.Order, error) {
	query, args := statusUpdate(r.qb, id, patch).MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}
	return OrderToEntity(order), nil
}

// statusUpdate собирает UPDATE из фиксированного набора колонок, все значения передаются параметрами.
func statusUpdate(qb sq.StatementBuilderType, id int64, p entities.StatusPatch) sq.UpdateBuilder {
	q := qb.Update("orders").
		Set("status", string(p.Status)).
		Set("updated_at", p.UpdatedAt)

	if p.Notes != nil {
		q = q.Set("notes", *p.Notes)
	}
	if p.StatusChangedToPending != nil {
		q = q.Set("status_changed_to_pending", *p.StatusChangedToPending)
	}
	if p.StatusChangedToCompleted != nil {
		q = q.Set("status_changed_to_completed", *p.StatusChangedToCompleted)
	}

	return q.Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))
}

func (r *postgresRepo) ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	q := r.selectOrders()
	if filter.StoreID != nil {
		q = q.Where(sq.Eq{"store_id": *filter.StoreID})
	}
	if filter.Status != nil {
		q = q.Where(sq.Eq{"status": string(*filter.Status)})
	}
	query, args := q.OrderBy("created_at DESC", "id DESC").MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result, nil
}

func (r *postgresRepo) ListItemsWithProducts(ctx context.Context, orderID int64) ([]entities.ItemWithProduct, error) {
	query, args := r.qb.Select(
		"oi.id", "oi.order_id", "oi.product_id", "oi.quantity",
		"oi.unit_price", "oi.total_price", "oi.created_at",
		"p.name AS product_name", "p.sku AS product_sku", "p.image_url AS product_image_url",
		"COALESCE(c.name, '') AS category_name", "p.bin_location", "p.unit_type",
	).
		From("order_items oi").
		Join("products p ON p.id = oi.product_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"oi.order_id": orderID}).
		OrderBy("oi.created_at", "oi.id").
		MustSql()

	var items []ItemWithProduct
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}

	result := make([]entities.ItemWithProduct, 0, len(items))
	for _, it := range items {
		result = append(result, ItemWithProductToEntity(it))
	}
	return result, nil
}

func (r *postgresRepo) LatestOrderIDs(ctx context.Context, count int) ([]int64, error) {
	query, args := r.qb.Select("id").
		From("orders").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(count)).
		MustSql()

	var ids []int64
	if err := r.selectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select latest orders: %w", err)
	}
	return ids, nil
}

func (r *postgresRepo) selectOrders() sq.SelectBuilder {
	return r.qb.Select(orderColumns...).From("orders")
}

func (r *postgresRepo) getOrder(ctx context.Context, q sq.SelectBuilder) (entities.Order, error) {
	query, args := q.MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return OrderToEntity(order), nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolationCode && pqErr.Constraint == constraint
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
