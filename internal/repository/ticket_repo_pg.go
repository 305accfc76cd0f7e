package repository

import (
	"context"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.TicketType) error
	GetByID(ctx context.Context, id int64) (*domain.TicketType, error)
	List(ctx context.Context, eventID int64) ([]domain.TicketType, error)
	Update(ctx context.Context, ticket *domain.TicketType) error
	Delete(ctx context.Context, id int64) error
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const ticketColumns = `id, event_id, type, price, quantity, available_quantity`

func scanTicket(row rowScanner) (*domain.TicketType, error) {
	var t domain.TicketType
	if err := row.Scan(&t.ID, &t.EventID, &t.Category, &t.Price, &t.Quantity, &t.Available); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create stores a new ticket type with its whole quantity available.
func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.TicketType) error {
	ticket.Available = ticket.Quantity
	err := r.db.QueryRow(ctx, `INSERT INTO tickets (event_id, type, price, quantity, available_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, ticket.EventID, ticket.Category, ticket.Price, ticket.Quantity, ticket.Available).
		Scan(&ticket.ID)
	return mapError(err)
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.TicketType, error) {
	ticket, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return ticket, nil
}

// List returns the tickets of one event, or all tickets when eventID is zero.
func (r *PGTicketRepository) List(ctx context.Context, eventID int64) ([]domain.TicketType, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ($1 = 0 OR event_id = $1) ORDER BY id`, eventID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	tickets := make([]domain.TicketType, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// Update changes category, price and total quantity. A change of total
// quantity moves the available count by the same delta; the table's check
// constraint rejects a delta that would make it negative. This is the only
// writer of available_quantity besides the reservation ledger.
func (r *PGTicketRepository) Update(ctx context.Context, ticket *domain.TicketType) error {
	row := r.db.QueryRow(ctx, `UPDATE tickets
		SET type=$1, price=$2, available_quantity = available_quantity + ($3 - quantity), quantity=$3
		WHERE id=$4
		RETURNING `+ticketColumns, ticket.Category, ticket.Price, ticket.Quantity, ticket.ID)
	updated, err := scanTicket(row)
	if err != nil {
		return mapError(err)
	}
	*ticket = *updated
	return nil
}

func (r *PGTicketRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ TicketRepository = (*PGTicketRepository)(nil)
