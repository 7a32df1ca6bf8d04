package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/micromart/orders/internal/dal/postgres"
	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/service/models/orderitem"
)

// ErrNotFound is returned when no order matches the requested identifier.
var ErrNotFound = errors.New("order not found")

var orderColumns = []string{
	"id",
	"status",
	"total_items",
	"total_amount_cents",
	"paid",
	"paid_at",
	"stripe_charge_id",
	"created_at",
	"updated_at",
}

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id               string             `db:"id"`
	Status           string             `db:"status"`
	TotalItems       int                `db:"total_items"`
	TotalAmountCents int64              `db:"total_amount_cents"`
	Paid             bool               `db:"paid"`
	PaidAt           pgtype.Timestamptz `db:"paid_at"`
	StripeChargeId   pgtype.Text        `db:"stripe_charge_id"`
	CreatedAt        pgtype.Timestamptz `db:"created_at"`
	UpdatedAt        pgtype.Timestamptz `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	model := &order.Order{
		ID:               o.Id,
		Status:           status,
		TotalItems:       o.TotalItems,
		TotalAmountCents: o.TotalAmountCents,
		Paid:             o.Paid,
		CreatedAt:        o.CreatedAt.Time,
		UpdatedAt:        o.UpdatedAt.Time,
		OrderItems:       []orderitem.OrderItem{},
	}

	if o.PaidAt.Valid {
		paidAt := o.PaidAt.Time
		model.PaidAt = &paidAt
	}
	if o.StripeChargeId.Valid {
		chargeID := o.StripeChargeId.String
		model.StripeChargeID = &chargeID
	}

	return model, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresOrderRepository) scanOne(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.Status,
		&dal.TotalItems,
		&dal.TotalAmountCents,
		&dal.Paid,
		&dal.PaidAt,
		&dal.StripeChargeId,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	return dal.ToModel()
}

// Insert persists a new order and returns it with generated fields.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	sql, args, err := r.sb.
		Insert("orders").
		Columns("id", "status", "total_items", "total_amount_cents", "paid", "created_at", "updated_at").
		Values(o.ID, o.Status, o.TotalItems, o.TotalAmountCents, o.Paid, o.CreatedAt, o.UpdatedAt).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves a single order without its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.scanOne(r.conn.QueryRow(ctx, sql, args...))
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Status != nil {
		query = query.Where(sq.Eq{"status": *filter.Status})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.Status,
			&dal.TotalItems,
			&dal.TotalAmountCents,
			&dal.Paid,
			&dal.PaidAt,
			&dal.StripeChargeId,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if result == nil {
		result = []order.Order{}
	}

	return result, nil
}

// Count returns the number of orders matching the filter.
func (r *PostgresOrderRepository) Count(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) (int64, error) {
	query := r.sb.
		Select("count(*)").
		From("orders")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Status != nil {
		query = query.Where(sq.Eq{"status": *filter.Status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return total, nil
}

// UpdateStatus overwrites the order status and returns the updated row.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status order.Status,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.scanOne(r.conn.QueryRow(ctx, sql, args...))
}

// MarkPaid sets the paid fields and PAID status, returning the updated row.
func (r *PostgresOrderRepository) MarkPaid(
	ctx context.Context,
	id string,
	chargeID string,
	paidAt time.Time,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", order.StatusPaid).
		Set("paid", true).
		Set("paid_at", paidAt).
		Set("stripe_charge_id", chargeID).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.scanOne(r.conn.QueryRow(ctx, sql, args...))
}

func columnList() string {
	return strings.Join(orderColumns, ", ")
}
