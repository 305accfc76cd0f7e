package repository

import (
	"context"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id int64) error
}

type PGEventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) EventRepository {
	return &PGEventRepository{db: db}
}

const eventColumns = `id, name, description, date, venue_id, organizer_id`

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.VenueID, &e.OrganizerID); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PGEventRepository) Create(ctx context.Context, event *domain.Event) error {
	err := r.db.QueryRow(ctx, `INSERT INTO events (name, description, date, venue_id, organizer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, event.Name, event.Description, event.Date, event.VenueID, event.OrganizerID).
		Scan(&event.ID)
	return mapError(err)
}

func (r *PGEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id=$1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return event, nil
}

func (r *PGEventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// Update never touches the organizer.
func (r *PGEventRepository) Update(ctx context.Context, event *domain.Event) error {
	updated, err := scanEvent(r.db.QueryRow(ctx, `UPDATE events SET name=$1, description=$2, date=$3, venue_id=$4
		WHERE id=$5
		RETURNING `+eventColumns, event.Name, event.Description, event.Date, event.VenueID, event.ID))
	if err != nil {
		return mapError(err)
	}
	*event = *updated
	return nil
}

func (r *PGEventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ EventRepository = (*PGEventRepository)(nil)

type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	Update(ctx context.Context, venue *domain.Venue) error
	Delete(ctx context.Context, id int64) error
}

type PGVenueRepository struct {
	db *pgxpool.Pool
}

func NewVenueRepository(db *pgxpool.Pool) VenueRepository {
	return &PGVenueRepository{db: db}
}

func (r *PGVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	err := r.db.QueryRow(ctx, `INSERT INTO venues (name, address, capacity) VALUES ($1, $2, $3) RETURNING id`,
		venue.Name, venue.Address, venue.Capacity).Scan(&venue.ID)
	return mapError(err)
}

func (r *PGVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var v domain.Venue
	err := r.db.QueryRow(ctx, `SELECT id, name, address, capacity FROM venues WHERE id=$1`, id).
		Scan(&v.ID, &v.Name, &v.Address, &v.Capacity)
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}

func (r *PGVenueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, address, capacity FROM venues ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	venues := make([]domain.Venue, 0)
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *PGVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	res, err := r.db.Exec(ctx, `UPDATE venues SET name=$1, address=$2, capacity=$3 WHERE id=$4`,
		venue.Name, venue.Address, venue.Capacity, venue.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGVenueRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM venues WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ VenueRepository = (*PGVenueRepository)(nil)
