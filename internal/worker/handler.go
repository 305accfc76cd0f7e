package worker

import (
	"context"

	"github.com/Domenick1991/ticketing/internal/kafka"
	"github.com/Domenick1991/ticketing/internal/logger"
	"github.com/Domenick1991/ticketing/internal/service/notify"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type ConfirmationDispatcher interface {
	DeliverOrderConfirmation(ctx context.Context, orderID int64) (notify.Outcome, error)
}

// Handler runs jobs taken from the job topic. It returns an error only when
// the worker is shutting down, leaving the message uncommitted for the next
// consumer.
type Handler struct {
	dispatcher ConfirmationDispatcher
	failures   notify.FailureRecorder
	log        *zap.Logger
}

func NewHandler(dispatcher ConfirmationDispatcher, failures notify.FailureRecorder, log *zap.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, failures: failures, log: logger.OrNop(log)}
}

func (h *Handler) Handle(ctx context.Context, msg kafkaGo.Message) error {
	job, err := kafka.DecodeJob(msg.Value)
	if err != nil {
		h.log.Error("dropping undecodable job",
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	log := h.log.With(zap.String("job_id", job.ID), zap.String("job", job.Name), zap.Int64("order_id", job.OrderID))
	if job.Name != kafka.JobSendOrderConfirmation {
		log.Warn("unknown job, skipping")
		return nil
	}

	outcome, err := h.dispatcher.DeliverOrderConfirmation(ctx, job.OrderID)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Error("job failed", zap.Error(err))
		if h.failures != nil {
			if recErr := h.failures.RecordDeliveryFailure(ctx, job.OrderID, 0, string(notify.OutcomeFailed), err); recErr != nil {
				log.Error("record job failure", zap.Error(recErr))
			}
		}
		return nil
	}

	log.Info("job finished", zap.String("outcome", string(outcome)))
	return nil
}
