package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/palletworks/portal/internal/domain/errors"
	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/domain/repository"
)

// pgxPool abstracts the pgx pool so tests can substitute a mock.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// queryer is the read surface shared by the pool and an open transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type submissionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Submissions() repository.SubmissionRepository {
	return &submissionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            customer_id UUID NOT NULL,
            customer_email TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'PENDING',
            delivery_price NUMERIC(12,2),
            delivery_date DATE,
            total NUMERIC(14,2) NOT NULL DEFAULT 0,
            version BIGINT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id UUID NOT NULL,
            product_name TEXT NOT NULL,
            quantity BIGINT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL DEFAULT 0,
            is_custom BOOLEAN NOT NULL DEFAULT FALSE,
            custom_specs JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS submissions (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            kind TEXT NOT NULL,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            payload JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_recent ON submissions(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, customer_id, customer_email, status, delivery_price, delivery_date, total, version, created_at, updated_at`

const itemColumns = `id, order_id, product_id, product_name, quantity, unit_price, is_custom, custom_specs, created_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	var deliveryPrice decimal.NullDecimal
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerEmail, &o.Status,
		&deliveryPrice, &o.DeliveryDate, &o.Total, &o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}
	if deliveryPrice.Valid {
		o.DeliveryPrice = &deliveryPrice.Decimal
	}
	return nil
}

func loadItems(ctx context.Context, q queryer, orderID uuid.UUID) ([]model.OrderItem, error) {
	rows, err := q.Query(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id=$1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.IsCustom, &item.CustomSpecs, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func getOrder(ctx context.Context, q queryer, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := scanOrder(q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := loadItems(ctx, q, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// --- OrderRepository implementation ---

// Create inserts an order with all items inside one transaction, so a failed
// item insert leaves no orphan order row behind.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	stored := *order
	stored.Items = append([]model.OrderItem(nil), order.Items...)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (customer_id, customer_email, status, delivery_price, total)
                             VALUES ($1, $2, $3, $4, $5)
                             RETURNING id, version, created_at, updated_at`
		var deliveryPrice decimal.NullDecimal
		if order.DeliveryPrice != nil {
			deliveryPrice = decimal.NewNullDecimal(*order.DeliveryPrice)
		}
		err := tx.QueryRow(ctx, insertOrder, order.CustomerID, order.CustomerEmail, order.Status, deliveryPrice, order.Total).
			Scan(&stored.ID, &stored.Version, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, is_custom, custom_specs)
                            VALUES ($1, $2, $3, $4, $5, $6, $7)
                            RETURNING id, created_at`
		for i := range stored.Items {
			item := &stored.Items[i]
			item.OrderID = stored.ID
			err := tx.QueryRow(ctx, insertItem, stored.ID, item.ProductID, item.ProductName,
				item.Quantity, item.UnitPrice, item.IsCustom, item.CustomSpecs).
				Scan(&item.ID, &item.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return getOrder(ctx, r.storage.pool, id)
}

func (r *orderRepository) GetByItemID(ctx context.Context, itemID uuid.UUID) (*model.Order, error) {
	var orderID uuid.UUID
	err := r.storage.pool.QueryRow(ctx, `SELECT order_id FROM order_items WHERE id=$1`, itemID).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return getOrder(ctx, r.storage.pool, orderID)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status=$1 ORDER BY created_at DESC LIMIT $2`,
		status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		var deliveryPrice decimal.NullDecimal
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerEmail, &o.Status,
			&deliveryPrice, &o.DeliveryDate, &o.Total, &o.Version, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if deliveryPrice.Valid {
			o.DeliveryPrice = &deliveryPrice.Decimal
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := loadItems(ctx, r.storage.pool, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, deliveryDate *time.Time, total decimal.Decimal, version int64) (*model.Order, error) {
	const query = `UPDATE orders
                   SET status=$1, delivery_date=$2, total=$3, version=version+1, updated_at=NOW()
                   WHERE id=$4 AND version=$5`
	if err := r.versionedExec(ctx, id, query, status, deliveryDate, total, id, version); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepository) UpdateDeliveryPrice(ctx context.Context, id uuid.UUID, price, total decimal.Decimal, version int64) (*model.Order, error) {
	const query = `UPDATE orders
                   SET delivery_price=$1, total=$2, version=version+1, updated_at=NOW()
                   WHERE id=$3 AND version=$4`
	if err := r.versionedExec(ctx, id, query, price, total, id, version); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateItemPrice writes the item price and the recomputed order total in one
// transaction. The version check lives on the orders row, so concurrent item
// quotes against the same order conflict instead of interleaving.
func (r *orderRepository) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price, total decimal.Decimal, version int64) (*model.Order, error) {
	var orderID uuid.UUID
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateItem = `UPDATE order_items SET unit_price=$1 WHERE id=$2 RETURNING order_id`
		if err := tx.QueryRow(ctx, updateItem, price, itemID).Scan(&orderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const updateOrder = `UPDATE orders SET total=$1, version=version+1, updated_at=NOW()
                             WHERE id=$2 AND version=$3`
		tag, err := tx.Exec(ctx, updateOrder, total, orderID, version)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// versionedExec runs an optimistic update and maps a zero-row outcome to
// either not-found or a version conflict.
func (r *orderRepository) versionedExec(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrVersionConflict
}

// --- SubmissionRepository implementation ---

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) (*model.Submission, error) {
	const query = `INSERT INTO submissions (kind, name, email, phone, payload)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at`
	stored := *submission
	err := r.storage.pool.QueryRow(ctx, query, submission.Kind, submission.Name,
		submission.Email, submission.Phone, submission.Payload).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *submissionRepository) ListRecent(ctx context.Context, limit int) ([]model.Submission, error) {
	const query = `SELECT id, kind, name, email, phone, payload, created_at
                   FROM submissions ORDER BY created_at DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.Kind, &s.Name, &s.Email, &s.Phone, &s.Payload, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
