package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/domain"
	"go.uber.org/zap"
)

type EventUseCase interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	CreateEvent(ctx context.Context, principal domain.Principal, input EventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, principal domain.Principal, id int64, input EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, principal domain.Principal, id int64) error
}

type EventInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	VenueID     int64     `json:"venue"`
}

func (in EventInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name", "name is required")
	}
	if in.Date.IsZero() {
		return domain.Invalid("date", "date is required")
	}
	if in.VenueID <= 0 {
		return domain.Invalid("venue", "venue is required")
	}
	return nil
}

// ListEvents serves from cache when possible. Cache errors fall through to
// the database.
func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetEvents(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetEvents(ctx, events); err != nil {
			s.log.Warn("failed to cache events", zap.Error(err))
		}
	}
	return events, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// CreateEvent makes the principal the organizer of the new event.
func (s *CatalogService) CreateEvent(ctx context.Context, principal domain.Principal, input EventInput) (*domain.Event, error) {
	if err := access.Authorize(principal, access.ActionCreate, access.Event(0)); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireVenue(ctx, input.VenueID); err != nil {
		return nil, err
	}

	event := &domain.Event{
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		VenueID:     input.VenueID,
		OrganizerID: principal.UserID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	s.invalidateEvents(ctx)

	s.log.Info("event created", zap.Int64("event_id", event.ID), zap.Int64("organizer_id", event.OrganizerID))
	return event, nil
}

func (s *CatalogService) UpdateEvent(ctx context.Context, principal domain.Principal, id int64, input EventInput) (*domain.Event, error) {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(principal, access.ActionUpdate, access.Event(existing.OrganizerID)); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.VenueID != existing.VenueID {
		if err := s.requireVenue(ctx, input.VenueID); err != nil {
			return nil, err
		}
	}

	event := &domain.Event{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		VenueID:     input.VenueID,
		OrganizerID: existing.OrganizerID,
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	s.invalidateEvents(ctx)
	return event, nil
}

func (s *CatalogService) DeleteEvent(ctx context.Context, principal domain.Principal, id int64) error {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(principal, access.ActionDelete, access.Event(existing.OrganizerID)); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateEvents(ctx)
	return nil
}

func (s *CatalogService) requireVenue(ctx context.Context, id int64) error {
	if _, err := s.venues.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("venue", "venue does not exist")
		}
		return err
	}
	return nil
}
