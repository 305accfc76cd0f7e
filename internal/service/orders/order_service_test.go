package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/kafka"
	"github.com/Domenick1991/ticketing/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memLedger serializes reservations with one mutex, standing in for the
// ticket row lock, and applies a reservation's writes only when fn succeeds.
type memLedger struct {
	mu        sync.Mutex
	tickets   map[int64]domain.TicketType
	orders    []domain.Order
	commitErr error
	calls     int
}

func newMemLedger(tickets ...domain.TicketType) *memLedger {
	l := &memLedger{tickets: make(map[int64]domain.TicketType)}
	for _, t := range tickets {
		l.tickets[t.ID] = t
	}
	return l
}

func (l *memLedger) WithinReservation(ctx context.Context, fn func(ctx context.Context, tx repository.LedgerTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++

	tx := &memTx{ledger: l, staged: make(map[int64]domain.TicketType)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if l.commitErr != nil {
		return l.commitErr
	}
	for id, t := range tx.staged {
		l.tickets[id] = t
	}
	l.orders = append(l.orders, tx.orders...)
	return nil
}

func (l *memLedger) available(id int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tickets[id].Available
}

func (l *memLedger) orderCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

type memTx struct {
	ledger *memLedger
	staged map[int64]domain.TicketType
	orders []domain.Order
}

func (tx *memTx) LockTicket(_ context.Context, id int64) (*domain.TicketType, error) {
	if t, ok := tx.staged[id]; ok {
		return &t, nil
	}
	t, ok := tx.ledger.tickets[id]
	if !ok {
		return nil, domain.Invalid("ticket", fmt.Sprintf("ticket %d does not exist", id))
	}
	tx.staged[id] = t
	return &t, nil
}

func (tx *memTx) Decrement(_ context.Context, id int64, quantity int) error {
	t := tx.staged[id]
	if t.Available < quantity {
		return domain.ErrInsufficientInventory
	}
	t.Available -= quantity
	tx.staged[id] = t
	return nil
}

func (tx *memTx) InsertOrder(_ context.Context, order *domain.Order) error {
	order.ID = int64(len(tx.ledger.orders) + len(tx.orders) + 1)
	order.CreatedAt = time.Now()
	tx.orders = append(tx.orders, *order)
	return nil
}

type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) Submit(ctx context.Context, name string, orderID int64) error {
	return m.Called(ctx, name, orderID).Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetConfirmation(ctx context.Context, id int64) (*domain.OrderConfirmation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderConfirmation), args.Error(1)
}

var buyer = domain.Principal{UserID: 7, Username: "alice", Email: "alice@example.com"}

func ticket(available int, price string) domain.TicketType {
	return domain.TicketType{
		ID:        1,
		EventID:   3,
		Category:  domain.TicketCategoryStandard,
		Price:     decimal.RequireFromString(price),
		Quantity:  available,
		Available: available,
	}
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	ledger := newMemLedger(ticket(100, "50.00"))
	jobs := &MockJobQueue{}
	service := NewOrderService(ledger, &MockOrderRepository{}, jobs, nil)
	ctx := context.Background()

	jobs.On("Submit", ctx, kafka.JobSendOrderConfirmation, int64(1)).Return(nil).Once()

	order, err := service.PlaceOrder(ctx, buyer, PlaceOrderInput{TicketID: 1, Quantity: 5})

	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, "250.00", order.TotalPrice.StringFixed(2))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, buyer.UserID, order.UserID)
	assert.Equal(t, int64(3), order.EventID)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, 95, ledger.available(1))
	assert.Equal(t, 1, ledger.orderCount())
	jobs.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_InsufficientInventory(t *testing.T) {
	ledger := newMemLedger(ticket(3, "10.00"))
	jobs := &MockJobQueue{}
	service := NewOrderService(ledger, &MockOrderRepository{}, jobs, nil)

	order, err := service.PlaceOrder(context.Background(), buyer, PlaceOrderInput{TicketID: 1, Quantity: 4})

	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
	assert.Nil(t, order)
	assert.Equal(t, 3, ledger.available(1))
	assert.Equal(t, 0, ledger.orderCount())
	jobs.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input PlaceOrderInput
		field string
	}{
		{name: "zero quantity", input: PlaceOrderInput{TicketID: 1, Quantity: 0}, field: "quantity"},
		{name: "negative quantity", input: PlaceOrderInput{TicketID: 1, Quantity: -2}, field: "quantity"},
		{name: "missing ticket", input: PlaceOrderInput{Quantity: 1}, field: "ticket"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := newMemLedger(ticket(10, "10.00"))
			service := NewOrderService(ledger, &MockOrderRepository{}, &MockJobQueue{}, nil)

			order, err := service.PlaceOrder(context.Background(), buyer, tc.input)

			assert.Nil(t, order)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Equal(t, 0, ledger.calls)
		})
	}
}

func TestOrderService_PlaceOrder_Unauthenticated(t *testing.T) {
	ledger := newMemLedger(ticket(10, "10.00"))
	service := NewOrderService(ledger, &MockOrderRepository{}, &MockJobQueue{}, nil)

	order, err := service.PlaceOrder(context.Background(), domain.Anonymous(), PlaceOrderInput{TicketID: 1, Quantity: 1})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, order)
	assert.Equal(t, 0, ledger.calls)
}

func TestOrderService_PlaceOrder_UnknownTicket(t *testing.T) {
	ledger := newMemLedger(ticket(10, "10.00"))
	service := NewOrderService(ledger, &MockOrderRepository{}, &MockJobQueue{}, nil)

	_, err := service.PlaceOrder(context.Background(), buyer, PlaceOrderInput{TicketID: 99, Quantity: 1})

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, 0, ledger.orderCount())
}

func TestOrderService_PlaceOrder_TransactionAborted(t *testing.T) {
	ledger := newMemLedger(ticket(10, "10.00"))
	ledger.commitErr = fmt.Errorf("%w: could not serialize access", domain.ErrTransactionAborted)
	jobs := &MockJobQueue{}
	service := NewOrderService(ledger, &MockOrderRepository{}, jobs, nil)

	order, err := service.PlaceOrder(context.Background(), buyer, PlaceOrderInput{TicketID: 1, Quantity: 2})

	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.Nil(t, order)
	assert.Equal(t, 10, ledger.available(1))
	assert.Equal(t, 0, ledger.orderCount())
	jobs.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_JobSubmitFailureKeepsOrder(t *testing.T) {
	ledger := newMemLedger(ticket(10, "10.00"))
	jobs := &MockJobQueue{}
	service := NewOrderService(ledger, &MockOrderRepository{}, jobs, nil)
	ctx := context.Background()

	jobs.On("Submit", ctx, kafka.JobSendOrderConfirmation, int64(1)).Return(errors.New("broker unavailable")).Once()

	order, err := service.PlaceOrder(ctx, buyer, PlaceOrderInput{TicketID: 1, Quantity: 2})

	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, 8, ledger.available(1))
	jobs.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_TwoBuyersForLastUnits(t *testing.T) {
	ledger := newMemLedger(ticket(100, "20.00"))
	jobs := &MockJobQueue{}
	jobs.On("Submit", mock.Anything, kafka.JobSendOrderConfirmation, mock.Anything).Return(nil)
	service := NewOrderService(ledger, &MockOrderRepository{}, jobs, nil)

	var (
		wg     sync.WaitGroup
		start  = make(chan struct{})
		errs   = make([]error, 2)
		buyers = []domain.Principal{{UserID: 1}, {UserID: 2}}
	)
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = service.PlaceOrder(context.Background(), buyers[i], PlaceOrderInput{TicketID: 1, Quantity: 60})
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientInventory):
			insufficient++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 40, ledger.available(1))
	assert.Equal(t, 1, ledger.orderCount())
	jobs.AssertNumberOfCalls(t, "Submit", 1)
}

func TestOrderService_PlaceOrder_NoOversellingUnderLoad(t *testing.T) {
	const initial = 100
	ledger := newMemLedger(ticket(initial, "12.50"))
	jobs := &MockJobQueue{}
	jobs.On("Submit", mock.Anything, kafka.JobSendOrderConfirmation, mock.Anything).Return(nil)
	service := NewOrderService(ledger, &MockOrderRepository{}, jobs, nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		reserved int
		placed   int
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			quantity := i%7 + 1
			order, err := service.PlaceOrder(context.Background(), domain.Principal{UserID: int64(i + 1)}, PlaceOrderInput{TicketID: 1, Quantity: quantity})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
				return
			}
			assert.True(t, decimal.RequireFromString("12.50").Mul(decimal.NewFromInt(int64(quantity))).Equal(order.TotalPrice))
			mu.Lock()
			reserved += quantity
			placed++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, reserved, initial)
	assert.Equal(t, initial-reserved, ledger.available(1))
	assert.Equal(t, placed, ledger.orderCount())
	jobs.AssertNumberOfCalls(t, "Submit", placed)
}

func TestOrderService_GetOrder(t *testing.T) {
	repo := &MockOrderRepository{}
	service := NewOrderService(newMemLedger(), repo, &MockJobQueue{}, nil)
	ctx := context.Background()

	own := &domain.Order{ID: 5, UserID: buyer.UserID, Quantity: 1, Status: domain.OrderStatusPending}
	repo.On("GetForUser", ctx, int64(5), buyer.UserID).Return(own, nil).Once()
	repo.On("GetForUser", ctx, int64(5), int64(8)).Return(nil, domain.ErrNotFound).Once()

	order, err := service.GetOrder(ctx, buyer, 5)
	require.NoError(t, err)
	assert.Equal(t, own, order)

	_, err = service.GetOrder(ctx, domain.Principal{UserID: 8}, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.GetOrder(ctx, domain.Anonymous(), 5)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.AssertExpectations(t)
}

func TestOrderService_ListOrders(t *testing.T) {
	repo := &MockOrderRepository{}
	service := NewOrderService(newMemLedger(), repo, &MockJobQueue{}, nil)
	ctx := context.Background()

	repo.On("ListForUser", ctx, buyer.UserID).Return([]domain.Order{{ID: 1}, {ID: 2}}, nil).Once()

	orders, err := service.ListOrders(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = service.ListOrders(ctx, domain.Anonymous())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrderService_ModifyOrder(t *testing.T) {
	service := NewOrderService(newMemLedger(), &MockOrderRepository{}, &MockJobQueue{}, nil)

	for _, p := range []domain.Principal{buyer, {UserID: 99, IsAdmin: true}, domain.Anonymous()} {
		assert.ErrorIs(t, service.ModifyOrder(context.Background(), p, 1, access.ActionUpdate), domain.ErrMethodNotAllowed)
		assert.ErrorIs(t, service.ModifyOrder(context.Background(), p, 1, access.ActionDelete), domain.ErrMethodNotAllowed)
	}
}
