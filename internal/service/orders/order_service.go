package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/kafka"
	"github.com/Domenick1991/ticketing/internal/logger"
	"github.com/Domenick1991/ticketing/internal/metrics"
	"github.com/Domenick1991/ticketing/internal/repository"
	"go.uber.org/zap"
)

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, principal domain.Principal, input PlaceOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, principal domain.Principal, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, principal domain.Principal) ([]domain.Order, error)
	ModifyOrder(ctx context.Context, principal domain.Principal, id int64, action access.Action) error
}

// JobQueue accepts background work with at-least-once delivery.
type JobQueue interface {
	Submit(ctx context.Context, name string, orderID int64) error
}

type PlaceOrderInput struct {
	TicketID int64 `json:"ticket"`
	Quantity int   `json:"quantity"`
}

func (in PlaceOrderInput) Validate() error {
	if in.TicketID <= 0 {
		return domain.Invalid("ticket", "ticket is required")
	}
	if in.Quantity <= 0 {
		return domain.Invalid("quantity", "quantity must be a positive integer")
	}
	return nil
}

type OrderService struct {
	ledger repository.InventoryLedger
	orders repository.OrderRepository
	jobs   JobQueue
	log    *zap.Logger
}

func NewOrderService(ledger repository.InventoryLedger, orders repository.OrderRepository, jobs JobQueue, log *zap.Logger) *OrderService {
	return &OrderService{
		ledger: ledger,
		orders: orders,
		jobs:   jobs,
		log:    logger.OrNop(log),
	}
}

// PlaceOrder reserves input.Quantity units of a ticket type for the principal.
// The availability check, the decrement and the order insert happen under
// the ticket row lock in one transaction; the confirmation job is submitted
// only once that transaction has committed.
func (s *OrderService) PlaceOrder(ctx context.Context, principal domain.Principal, input PlaceOrderInput) (*domain.Order, error) {
	if err := access.Authorize(principal, access.ActionCreate, access.Order(0)); err != nil {
		metrics.TrackOrder(metrics.ResultRejected, input.Quantity)
		return nil, err
	}
	if err := input.Validate(); err != nil {
		metrics.TrackOrder(metrics.ResultRejected, input.Quantity)
		return nil, err
	}

	var order *domain.Order
	err := s.ledger.WithinReservation(ctx, func(ctx context.Context, tx repository.LedgerTx) error {
		ticket, err := tx.LockTicket(ctx, input.TicketID)
		if err != nil {
			return err
		}
		if input.Quantity > ticket.Available {
			return fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientInventory, input.Quantity, ticket.Available)
		}

		if err := tx.Decrement(ctx, ticket.ID, input.Quantity); err != nil {
			return err
		}

		o := &domain.Order{
			UserID:     principal.UserID,
			TicketID:   ticket.ID,
			EventID:    ticket.EventID,
			Quantity:   input.Quantity,
			TotalPrice: ticket.TotalFor(input.Quantity),
			Status:     domain.OrderStatusPending,
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		metrics.TrackOrder(orderResult(err), input.Quantity)
		return nil, err
	}

	metrics.TrackOrder(metrics.ResultSuccess, input.Quantity)
	s.log.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("ticket_id", order.TicketID),
		zap.Int64("user_id", order.UserID),
		zap.Int("quantity", order.Quantity),
		zap.String("total_price", order.TotalPrice.StringFixed(2)),
	)

	s.submitConfirmation(ctx, order.ID)
	return order, nil
}

// A failed submit never fails the committed order.
func (s *OrderService) submitConfirmation(ctx context.Context, orderID int64) {
	if s.jobs == nil {
		return
	}
	err := s.jobs.Submit(ctx, kafka.JobSendOrderConfirmation, orderID)
	metrics.TrackJobSubmitted(kafka.JobSendOrderConfirmation, err)
	if err != nil {
		s.log.Warn("failed to submit order confirmation job", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func (s *OrderService) GetOrder(ctx context.Context, principal domain.Principal, id int64) (*domain.Order, error) {
	if err := access.Authorize(principal, access.ActionRead, access.Order(0)); err != nil {
		return nil, err
	}
	return s.orders.GetForUser(ctx, id, principal.UserID)
}

func (s *OrderService) ListOrders(ctx context.Context, principal domain.Principal) ([]domain.Order, error) {
	if err := access.Authorize(principal, access.ActionRead, access.Order(0)); err != nil {
		return nil, err
	}
	return s.orders.ListForUser(ctx, principal.UserID)
}

// ModifyOrder exists so the update and delete routes share the policy
// decision; it never succeeds.
func (s *OrderService) ModifyOrder(ctx context.Context, principal domain.Principal, id int64, action access.Action) error {
	if err := access.Authorize(principal, action, access.Order(0)); err != nil {
		return err
	}
	return domain.ErrMethodNotAllowed
}

func orderResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientInventory):
		return metrics.ResultInsufficient
	case errors.Is(err, domain.ErrTransactionAborted):
		return metrics.ResultAborted
	case errors.Is(err, domain.ErrInvalidRequest):
		return metrics.ResultRejected
	}
	return metrics.ResultError
}

var _ OrderUseCase = (*OrderService)(nil)
