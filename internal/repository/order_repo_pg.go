package repository

import (
	"context"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepository only reads. Orders are written by the inventory ledger and
// never updated here.
type OrderRepository interface {
	GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	GetConfirmation(ctx context.Context, id int64) (*domain.OrderConfirmation, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

const orderColumns = `id, user_id, ticket_id, event_id, quantity, total_price, status, created_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.TicketID, &o.EventID, &o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetForUser filters by purchaser in the query itself, so an order that
// belongs to someone else is reported exactly like a missing one.
func (r *PGOrderRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 AND user_id=$2`, id, userID))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *PGOrderRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *PGOrderRepository) GetConfirmation(ctx context.Context, id int64) (*domain.OrderConfirmation, error) {
	row := r.db.QueryRow(ctx, `SELECT o.id, u.username, u.email, e.name, o.quantity, o.total_price
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN events e ON e.id = o.event_id
		WHERE o.id=$1`, id)

	var c domain.OrderConfirmation
	if err := row.Scan(&c.OrderID, &c.PurchaserName, &c.PurchaserEmail, &c.EventName, &c.Quantity, &c.TotalPrice); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
