package catalog

import (
	"context"
	"strings"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/domain"
	"go.uber.org/zap"
)

type VenueUseCase interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id int64) (*domain.Venue, error)
	CreateVenue(ctx context.Context, principal domain.Principal, input VenueInput) (*domain.Venue, error)
	UpdateVenue(ctx context.Context, principal domain.Principal, id int64, input VenueInput) (*domain.Venue, error)
	DeleteVenue(ctx context.Context, principal domain.Principal, id int64) error
}

type VenueInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

func (in VenueInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name", "name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return domain.Invalid("address", "address is required")
	}
	if in.Capacity <= 0 {
		return domain.Invalid("capacity", "capacity must be greater than zero")
	}
	return nil
}

func (s *CatalogService) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.venues.List(ctx)
}

func (s *CatalogService) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

func (s *CatalogService) CreateVenue(ctx context.Context, principal domain.Principal, input VenueInput) (*domain.Venue, error) {
	if err := access.Authorize(principal, access.ActionCreate, access.Venue()); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	venue := &domain.Venue{Name: input.Name, Address: input.Address, Capacity: input.Capacity}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, err
	}
	s.log.Info("venue created", zap.Int64("venue_id", venue.ID), zap.Int64("user_id", principal.UserID))
	return venue, nil
}

func (s *CatalogService) UpdateVenue(ctx context.Context, principal domain.Principal, id int64, input VenueInput) (*domain.Venue, error) {
	if err := access.Authorize(principal, access.ActionUpdate, access.Venue()); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	venue := &domain.Venue{ID: id, Name: input.Name, Address: input.Address, Capacity: input.Capacity}
	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *CatalogService) DeleteVenue(ctx context.Context, principal domain.Principal, id int64) error {
	if err := access.Authorize(principal, access.ActionDelete, access.Venue()); err != nil {
		return err
	}
	return s.venues.Delete(ctx, id)
}
