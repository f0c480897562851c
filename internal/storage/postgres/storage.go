package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/domain/repository"
)

// DBPool is the subset of pgxpool.Pool the storage uses. Narrowed to an
// interface so tests can substitute a mock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DBPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type trackingRepository struct {
	storage *Storage
}

type sessionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
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

var _ repository.Factory = (*Storage)(nil)

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Trackings() repository.TrackingRepository {
	return &trackingRepository{storage: s}
}

func (s *Storage) Sessions() repository.SessionRepository {
	return &sessionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'active',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            stock INTEGER NOT NULL DEFAULT 0,
            payment_status TEXT NOT NULL DEFAULT 'unpaid',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            product_title TEXT NOT NULL,
            buyer_email TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            total_price DOUBLE PRECISION NOT NULL,
            payment_method TEXT NOT NULL,
            payment_status TEXT NOT NULL DEFAULT 'unpaid',
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            approved_at TIMESTAMPTZ,
            canceled_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS trackings (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            status TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS checkout_sessions (
            session_id TEXT PRIMARY KEY,
            reconciled BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_active_buyer_product
            ON orders(buyer_email, product_id) WHERE status <> 'canceled'`,
		`CREATE INDEX IF NOT EXISTS idx_trackings_order ON trackings(order_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_pending ON checkout_sessions(created_at) WHERE reconciled = FALSE`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string, role model.UserRole) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, status, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, role).Scan(&u.ID, &u.Status, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, role, status, created_at FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, role, status, created_at FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status model.UserStatus) error {
	const query = `UPDATE users SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, title string, price float64, stock int) (*model.Product, error) {
	const query = `INSERT INTO products (title, price, stock) VALUES ($1, $2, $3) RETURNING id, payment_status, created_at`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, title, price, stock).Scan(&p.ID, &p.PaymentStatus, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Title = title
	p.Price = price
	p.Stock = stock
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, title, price, stock, payment_status, created_at FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Price, &p.Stock, &p.PaymentStatus, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, title, price, stock, payment_status, created_at FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Stock, &p.PaymentStatus, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	const query = `UPDATE products SET payment_status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, product_id, product_title, buyer_email, quantity, unit_price, total_price,
       payment_method, payment_status, status, created_at, approved_at, canceled_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.ProductID, &o.ProductTitle, &o.BuyerEmail, &o.Quantity, &o.UnitPrice,
		&o.TotalPrice, &o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.CreatedAt, &o.ApprovedAt, &o.CanceledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts the order guarded by the partial unique index on
// (buyer_email, product_id) over non-canceled rows. The conflict path is the
// duplicate-order guard: no second active order for the same buyer+product.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders
            (product_id, product_title, buyer_email, quantity, unit_price, total_price, payment_method, payment_status, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (buyer_email, product_id) WHERE status <> 'canceled' DO NOTHING
        RETURNING id, created_at`

	created := *order
	err := r.storage.pool.QueryRow(ctx, query,
		order.ProductID, order.ProductTitle, order.BuyerEmail, order.Quantity,
		order.UnitPrice, order.TotalPrice, order.PaymentMethod, order.PaymentStatus, order.Status,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByBuyer(ctx context.Context, email string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_email=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.ProductTitle, &o.BuyerEmail, &o.Quantity, &o.UnitPrice,
			&o.TotalPrice, &o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.CreatedAt, &o.ApprovedAt, &o.CanceledAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus is a conditional write: only pending orders have outgoing
// transitions, so the WHERE clause doubles as the compare-and-swap.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$1,
            approved_at = CASE WHEN $1 = 'approved' THEN NOW() ELSE approved_at END
        WHERE id=$2 AND status='pending'
        RETURNING ` + orderColumns

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, r.explainMissedWrite(ctx, id)
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Cancel(ctx context.Context, id int64) (*model.Order, error) {
	query := `UPDATE orders SET status='canceled', canceled_at=NOW()
        WHERE id=$1 AND status='pending'
        RETURNING ` + orderColumns

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, r.explainMissedWrite(ctx, id)
		}
		return nil, err
	}
	return order, nil
}

// explainMissedWrite distinguishes a missing order from a lost CAS race.
func (r *orderRepository) explainMissedWrite(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domainErrors.ErrInvalidTransition
}

// --- TrackingRepository implementation ---

func (r *trackingRepository) Create(ctx context.Context, orderID int64, status, note string) (*model.TrackingEvent, error) {
	const query = `INSERT INTO trackings (order_id, status, note) VALUES ($1, $2, $3) RETURNING id, created_at`
	event := model.TrackingEvent{OrderID: orderID, Status: status, Note: note}
	err := r.storage.pool.QueryRow(ctx, query, orderID, status, note).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *trackingRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.TrackingEvent, error) {
	const query = `SELECT id, order_id, status, note, created_at FROM trackings WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TrackingEvent
	for rows.Next() {
		var e model.TrackingEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- SessionRepository implementation ---

func (r *sessionRepository) Record(ctx context.Context, sessionID string) error {
	const query = `INSERT INTO checkout_sessions (session_id) VALUES ($1) ON CONFLICT (session_id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, sessionID)
	return err
}

func (r *sessionRepository) MarkReconciled(ctx context.Context, sessionID string) error {
	const query = `UPDATE checkout_sessions SET reconciled=TRUE WHERE session_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, sessionID)
	return err
}

func (r *sessionRepository) ListUnreconciled(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	const query = `SELECT session_id FROM checkout_sessions
        WHERE reconciled = FALSE AND created_at <= NOW() - $1::interval
        ORDER BY created_at
        LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
