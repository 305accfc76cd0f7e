package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TicketUseCase interface {
	ListTickets(ctx context.Context, eventID int64) ([]domain.TicketType, error)
	GetTicket(ctx context.Context, id int64) (*domain.TicketType, error)
	CreateTicket(ctx context.Context, principal domain.Principal, input TicketInput) (*domain.TicketType, error)
	UpdateTicket(ctx context.Context, principal domain.Principal, id int64, input TicketInput) (*domain.TicketType, error)
	DeleteTicket(ctx context.Context, principal domain.Principal, id int64) error
}

type TicketInput struct {
	EventID  int64                 `json:"event"`
	Category domain.TicketCategory `json:"type"`
	Price    decimal.Decimal       `json:"price"`
	Quantity int                   `json:"quantity"`
}

func (in TicketInput) Validate() error {
	if in.EventID <= 0 {
		return domain.Invalid("event", "event is required")
	}
	if !in.Category.Valid() {
		return domain.Invalid("type", fmt.Sprintf("%q is not a valid choice", in.Category))
	}
	if in.Price.IsNegative() {
		return domain.Invalid("price", "price must not be negative")
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return domain.Invalid("price", "price must have at most 2 decimal places")
	}
	if in.Quantity < 0 {
		return domain.Invalid("quantity", "quantity must not be negative")
	}
	return nil
}

func (s *CatalogService) ListTickets(ctx context.Context, eventID int64) ([]domain.TicketType, error) {
	return s.tickets.List(ctx, eventID)
}

func (s *CatalogService) GetTicket(ctx context.Context, id int64) (*domain.TicketType, error) {
	return s.tickets.GetByID(ctx, id)
}

// CreateTicket opens a ticket type with its whole quantity available.
func (s *CatalogService) CreateTicket(ctx context.Context, principal domain.Principal, input TicketInput) (*domain.TicketType, error) {
	if !principal.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("event", "event does not exist")
		}
		return nil, err
	}
	if err := access.Authorize(principal, access.ActionCreate, access.Ticket(event.OrganizerID)); err != nil {
		return nil, err
	}

	ticket := &domain.TicketType{
		EventID:   input.EventID,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		Available: input.Quantity,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.log.Info("ticket type created",
		zap.Int64("ticket_id", ticket.ID),
		zap.Int64("event_id", ticket.EventID),
		zap.Int("quantity", ticket.Quantity),
	)
	return ticket, nil
}

// UpdateTicket changes category, price and total quantity. The ticket stays
// attached to its event; a quantity change that would push available below
// zero fails with domain.ErrConflict.
func (s *CatalogService) UpdateTicket(ctx context.Context, principal domain.Principal, id int64, input TicketInput) (*domain.TicketType, error) {
	existing, event, err := s.ticketWithEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(principal, access.ActionUpdate, access.Ticket(event.OrganizerID)); err != nil {
		return nil, err
	}
	if input.EventID == 0 {
		input.EventID = existing.EventID
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.EventID != existing.EventID {
		return nil, domain.Invalid("event", "a ticket type cannot be moved to another event")
	}
	if existing.Available+(input.Quantity-existing.Quantity) < 0 {
		return nil, fmt.Errorf("%w: %d tickets already sold", domain.ErrConflict, existing.Quantity-existing.Available)
	}

	ticket := &domain.TicketType{
		ID:       id,
		EventID:  existing.EventID,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *CatalogService) DeleteTicket(ctx context.Context, principal domain.Principal, id int64) error {
	_, event, err := s.ticketWithEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(principal, access.ActionDelete, access.Ticket(event.OrganizerID)); err != nil {
		return err
	}
	return s.tickets.Delete(ctx, id)
}

func (s *CatalogService) ticketWithEvent(ctx context.Context, id int64) (*domain.TicketType, *domain.Event, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.events.GetByID(ctx, ticket.EventID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, event, nil
}
