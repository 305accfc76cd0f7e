package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryLedger runs reservations as one atomic unit. Either every write made
// through the LedgerTx is committed or none is.
type InventoryLedger interface {
	WithinReservation(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// LedgerTx is the view of the ledger inside a reservation.
type LedgerTx interface {
	// LockTicket reads the ticket row and holds an exclusive lock on it until
	// the reservation ends.
	LockTicket(ctx context.Context, ticketID int64) (*domain.TicketType, error)
	Decrement(ctx context.Context, ticketID int64, quantity int) error
	InsertOrder(ctx context.Context, order *domain.Order) error
}

// lockTimeout bounds how long a reservation waits for a contended ticket row
// before the transaction aborts.
const lockTimeout = "5s"

type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type PGInventoryLedger struct {
	db txBeginner
}

func NewInventoryLedger(db *pgxpool.Pool) InventoryLedger {
	return &PGInventoryLedger{db: db}
}

func (l *PGInventoryLedger) WithinReservation(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrTransactionAborted, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '`+lockTimeout+`'`); err != nil {
		return abortError("set lock timeout", err)
	}

	if err := fn(ctx, &pgLedgerTx{tx: tx}); err != nil {
		return abortError("reservation", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrTransactionAborted, err)
	}
	return nil
}

// abortError keeps domain errors raised inside a reservation and reports any
// other failure as an aborted transaction.
func abortError(stage string, err error) error {
	err = mapError(err)
	if domain.IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrTransactionAborted, stage, err)
}

type pgLedgerTx struct {
	tx pgx.Tx
}

func (t *pgLedgerTx) LockTicket(ctx context.Context, ticketID int64) (*domain.TicketType, error) {
	row := t.tx.QueryRow(ctx, `SELECT id, event_id, type, price, quantity, available_quantity FROM tickets WHERE id=$1 FOR UPDATE`, ticketID)
	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Invalid("ticket", fmt.Sprintf("ticket %d does not exist", ticketID))
		}
		return nil, err
	}
	return ticket, nil
}

func (t *pgLedgerTx) Decrement(ctx context.Context, ticketID int64, quantity int) error {
	res, err := t.tx.Exec(ctx, `UPDATE tickets SET available_quantity = available_quantity - $1 WHERE id=$2 AND available_quantity >= $1`, quantity, ticketID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrInsufficientInventory
	}
	return nil
}

func (t *pgLedgerTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	return t.tx.QueryRow(ctx, `INSERT INTO orders (user_id, ticket_id, event_id, quantity, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`, order.UserID, order.TicketID, order.EventID, order.Quantity, order.TotalPrice, order.Status).
		Scan(&order.ID, &order.CreatedAt)
}

var _ InventoryLedger = (*PGInventoryLedger)(nil)
