package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// JobSendOrderConfirmation is the only job the order flow submits.
const JobSendOrderConfirmation = "send_order_confirmation"

// Job is the wire format of a unit of background work.
type Job struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OrderID     int64     `json:"order_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func DecodeJob(data []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	if job.Name == "" || job.OrderID <= 0 {
		return Job{}, fmt.Errorf("decode job: missing name or order id")
	}
	return job, nil
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// JobQueue submits jobs to a topic keyed by order id, so retries of the same
// order land on the same partition.
type JobQueue struct {
	publisher Publisher
	topic     string
}

func NewJobQueue(publisher Publisher, topic string) *JobQueue {
	return &JobQueue{publisher: publisher, topic: topic}
}

func (q *JobQueue) Submit(ctx context.Context, name string, orderID int64) error {
	job := Job{
		ID:          uuid.NewString(),
		Name:        name,
		OrderID:     orderID,
		SubmittedAt: time.Now().UTC(),
	}
	return q.publisher.Publish(ctx, q.topic, strconv.FormatInt(orderID, 10), job)
}

// DeadLetter records a job that will not be attempted again.
type DeadLetter struct {
	Job      string    `json:"job"`
	OrderID  int64     `json:"order_id"`
	Attempts int       `json:"attempts"`
	Reason   string    `json:"reason"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

type DeadLetterQueue struct {
	publisher Publisher
	topic     string
}

func NewDeadLetterQueue(publisher Publisher, topic string) *DeadLetterQueue {
	return &DeadLetterQueue{publisher: publisher, topic: topic}
}

func (q *DeadLetterQueue) RecordDeliveryFailure(ctx context.Context, orderID int64, attempts int, reason string, cause error) error {
	letter := DeadLetter{
		Job:      JobSendOrderConfirmation,
		OrderID:  orderID,
		Attempts: attempts,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
	}
	if cause != nil {
		letter.Error = cause.Error()
	}
	return q.publisher.Publish(ctx, q.topic, strconv.FormatInt(orderID, 10), letter)
}
