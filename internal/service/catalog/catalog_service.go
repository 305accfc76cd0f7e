package catalog

import (
	"context"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/logger"
	"github.com/Domenick1991/ticketing/internal/repository"
	"go.uber.org/zap"
)

// EventCache holds the public event listing. GetEvents returns nil, nil on a miss.
type EventCache interface {
	GetEvents(ctx context.Context) ([]domain.Event, error)
	SetEvents(ctx context.Context, events []domain.Event) error
	InvalidateEvents(ctx context.Context) error
}

// CatalogService manages venues, events and ticket types.
type CatalogService struct {
	venues  repository.VenueRepository
	events  repository.EventRepository
	tickets repository.TicketRepository
	cache   EventCache
	log     *zap.Logger
}

func NewCatalogService(
	venues repository.VenueRepository,
	events repository.EventRepository,
	tickets repository.TicketRepository,
	cache EventCache,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		venues:  venues,
		events:  events,
		tickets: tickets,
		cache:   cache,
		log:     logger.OrNop(log),
	}
}

func (s *CatalogService) invalidateEvents(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateEvents(ctx); err != nil {
		s.log.Warn("failed to invalidate event cache", zap.Error(err))
	}
}

var (
	_ VenueUseCase  = (*CatalogService)(nil)
	_ EventUseCase  = (*CatalogService)(nil)
	_ TicketUseCase = (*CatalogService)(nil)
)
