package api

import (
	"context"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/auth"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/service/catalog"
	"github.com/Domenick1991/ticketing/internal/service/orders"
	"github.com/Domenick1991/ticketing/internal/service/users"
	"github.com/stretchr/testify/mock"
)

// MockOrderUseCase is a mock implementation of orders.OrderUseCase
type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) PlaceOrder(ctx context.Context, principal domain.Principal, input orders.PlaceOrderInput) (*domain.Order, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) GetOrder(ctx context.Context, principal domain.Principal, id int64) (*domain.Order, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) ListOrders(ctx context.Context, principal domain.Principal) ([]domain.Order, error) {
	args := m.Called(ctx, principal)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) ModifyOrder(ctx context.Context, principal domain.Principal, id int64, action access.Action) error {
	return m.Called(ctx, principal, id, action).Error(0)
}

// MockTicketUseCase is a mock implementation of catalog.TicketUseCase
type MockTicketUseCase struct {
	mock.Mock
}

func (m *MockTicketUseCase) ListTickets(ctx context.Context, eventID int64) ([]domain.TicketType, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.TicketType), args.Error(1)
}

func (m *MockTicketUseCase) GetTicket(ctx context.Context, id int64) (*domain.TicketType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketType), args.Error(1)
}

func (m *MockTicketUseCase) CreateTicket(ctx context.Context, principal domain.Principal, input catalog.TicketInput) (*domain.TicketType, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketType), args.Error(1)
}

func (m *MockTicketUseCase) UpdateTicket(ctx context.Context, principal domain.Principal, id int64, input catalog.TicketInput) (*domain.TicketType, error) {
	args := m.Called(ctx, principal, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketType), args.Error(1)
}

func (m *MockTicketUseCase) DeleteTicket(ctx context.Context, principal domain.Principal, id int64) error {
	return m.Called(ctx, principal, id).Error(0)
}

// MockEventUseCase is a mock implementation of catalog.EventUseCase
type MockEventUseCase struct {
	mock.Mock
}

func (m *MockEventUseCase) ListEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventUseCase) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) CreateEvent(ctx context.Context, principal domain.Principal, input catalog.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) UpdateEvent(ctx context.Context, principal domain.Principal, id int64, input catalog.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, principal, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) DeleteEvent(ctx context.Context, principal domain.Principal, id int64) error {
	return m.Called(ctx, principal, id).Error(0)
}

// MockVenueUseCase is a mock implementation of catalog.VenueUseCase
type MockVenueUseCase struct {
	mock.Mock
}

func (m *MockVenueUseCase) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func (m *MockVenueUseCase) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueUseCase) CreateVenue(ctx context.Context, principal domain.Principal, input catalog.VenueInput) (*domain.Venue, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueUseCase) UpdateVenue(ctx context.Context, principal domain.Principal, id int64, input catalog.VenueInput) (*domain.Venue, error) {
	args := m.Called(ctx, principal, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueUseCase) DeleteVenue(ctx context.Context, principal domain.Principal, id int64) error {
	return m.Called(ctx, principal, id).Error(0)
}

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, input users.LoginInput) (auth.Token, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(auth.Token), args.Error(1)
}

func (m *MockUserUseCase) List(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	args := m.Called(ctx, principal)
	return args.Get(0).([]domain.User), args.Error(1)
}
