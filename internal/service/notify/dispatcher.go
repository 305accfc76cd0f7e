package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/logger"
	"github.com/Domenick1991/ticketing/internal/mail"
	"github.com/Domenick1991/ticketing/internal/metrics"
	"go.uber.org/zap"
)

// Outcome is the terminal state of one confirmation job.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeGivenUp   Outcome = "given_up"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

type OrderReader interface {
	GetConfirmation(ctx context.Context, id int64) (*domain.OrderConfirmation, error)
}

type Transport interface {
	VerifyIdentity(ctx context.Context, sender string) error
	Send(ctx context.Context, sender string, msg mail.Message) error
}

// FailureRecorder keeps a trace of confirmations that were never delivered.
type FailureRecorder interface {
	RecordDeliveryFailure(ctx context.Context, orderID int64, attempts int, reason string, cause error) error
}

// DeliveryGuard remembers delivered orders so a redelivered job does not mail
// the purchaser twice.
type DeliveryGuard interface {
	Delivered(ctx context.Context, orderID int64) (bool, error)
	MarkDelivered(ctx context.Context, orderID int64) error
}

type Dispatcher struct {
	orders        OrderReader
	transport     Transport
	sender        string
	maxTries      int
	retryInterval time.Duration
	failures      FailureRecorder
	guard         DeliveryGuard
	log           *zap.Logger
	sleep         func(ctx context.Context, d time.Duration) error
}

type Option func(*Dispatcher)

func WithFailureRecorder(r FailureRecorder) Option {
	return func(d *Dispatcher) {
		d.failures = r
	}
}

func WithDeliveryGuard(g DeliveryGuard) Option {
	return func(d *Dispatcher) {
		d.guard = g
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.log = logger.OrNop(l)
	}
}

func NewDispatcher(orders OrderReader, transport Transport, sender string, maxTries int, retryInterval time.Duration, opts ...Option) *Dispatcher {
	if maxTries < 1 {
		maxTries = 1
	}
	d := &Dispatcher{
		orders:        orders,
		transport:     transport,
		sender:        sender,
		maxTries:      maxTries,
		retryInterval: retryInterval,
		log:           zap.NewNop(),
		sleep:         sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeliverOrderConfirmation mails the purchaser of orderID. Transient transport
// errors are retried up to maxTries attempts; once they are exhausted the job
// ends as OutcomeGivenUp with a nil error. Any other error is returned so the
// job fails.
func (d *Dispatcher) DeliverOrderConfirmation(ctx context.Context, orderID int64) (Outcome, error) {
	log := d.log.With(zap.Int64("order_id", orderID))

	confirmation, err := d.orders.GetConfirmation(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Info("order not found, skipping confirmation")
			metrics.TrackNotificationOutcome(string(OutcomeSkipped))
			return OutcomeSkipped, nil
		}
		return OutcomeFailed, fmt.Errorf("load order %d: %w", orderID, err)
	}

	if d.guard != nil {
		delivered, err := d.guard.Delivered(ctx, orderID)
		if err != nil {
			log.Warn("delivery guard unavailable", zap.Error(err))
		} else if delivered {
			log.Info("confirmation already delivered")
			metrics.TrackNotificationOutcome(string(OutcomeSkipped))
			return OutcomeSkipped, nil
		}
	}

	msg := ComposeConfirmation(confirmation)

	var lastErr error
	for attempt := 1; attempt <= d.maxTries; attempt++ {
		lastErr = d.attempt(ctx, msg)
		if lastErr == nil {
			metrics.TrackNotificationAttempt("success")
			metrics.TrackNotificationOutcome(string(OutcomeDelivered))
			log.Info("confirmation delivered", zap.Int("attempt", attempt))
			d.markDelivered(ctx, log, orderID)
			return OutcomeDelivered, nil
		}

		if !mail.IsRetryable(lastErr) {
			metrics.TrackNotificationAttempt("fatal_error")
			metrics.TrackNotificationOutcome(string(OutcomeFailed))
			return OutcomeFailed, fmt.Errorf("deliver confirmation for order %d: %w", orderID, lastErr)
		}

		metrics.TrackNotificationAttempt("retryable_error")
		log.Warn("confirmation attempt failed", zap.Int("attempt", attempt), zap.Int("max_tries", d.maxTries), zap.Error(lastErr))

		if attempt < d.maxTries {
			if err := d.sleep(ctx, d.retryInterval); err != nil {
				return OutcomeFailed, err
			}
		}
	}

	log.Error("giving up on order confirmation", zap.Int("attempts", d.maxTries), zap.Error(lastErr))
	metrics.TrackNotificationOutcome(string(OutcomeGivenUp))
	if d.failures != nil {
		if err := d.failures.RecordDeliveryFailure(ctx, orderID, d.maxTries, string(OutcomeGivenUp), lastErr); err != nil {
			log.Error("record delivery failure", zap.Error(err))
		}
	}
	return OutcomeGivenUp, nil
}

func (d *Dispatcher) attempt(ctx context.Context, msg mail.Message) error {
	if err := d.transport.VerifyIdentity(ctx, d.sender); err != nil {
		return err
	}
	return d.transport.Send(ctx, d.sender, msg)
}

func (d *Dispatcher) markDelivered(ctx context.Context, log *zap.Logger, orderID int64) {
	if d.guard == nil {
		return
	}
	if err := d.guard.MarkDelivered(ctx, orderID); err != nil {
		log.Warn("mark confirmation delivered", zap.Error(err))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
