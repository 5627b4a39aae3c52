package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/payments"
	"github.com/societyhub/backend/pkg/queue"
)

// ReminderProcessor processes payment reminder jobs: it verifies the
// payment is still pending and appends a payment_reminders record.
type ReminderProcessor struct {
	payRepo *payments.Repository
	queue   *queue.Queue
	logger  *zap.Logger
}

// NewReminderProcessor creates a payment reminder processor.
func NewReminderProcessor(payRepo *payments.Repository, q *queue.Queue, logger *zap.Logger) *ReminderProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderProcessor{payRepo: payRepo, queue: q, logger: logger}
}

// Process executes one payment reminder job.
func (p *ReminderProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypePaymentReminder {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.PaymentReminderPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	payment, err := p.payRepo.GetByID(ctx, payload.PaymentID)
	if err != nil {
		return fmt.Errorf("payment not found: %s", payload.PaymentID)
	}
	if payment.Status != models.PaymentStatusPending {
		p.logger.Info("payment no longer pending, skipping reminder",
			zap.String("payment_id", payment.ID.String()), zap.String("status", payment.Status))
		return nil
	}

	rem := &models.PaymentReminder{
		PaymentID:   payload.PaymentID,
		RequestedBy: payload.RequestedBy,
		Message:     payload.Message,
	}
	if err := p.payRepo.RecordReminder(ctx, rem); err != nil {
		return fmt.Errorf("record reminder: %w", err)
	}

	p.logger.Info("payment reminder recorded",
		zap.String("payment_id", payload.PaymentID.String()),
		zap.String("reminder_id", rem.ID.String()))
	return nil
}

// Run consumes the reminder queue until ctx is cancelled. Failed jobs are
// retried with backoff and land in the DLQ after queue.MaxRetries attempts.
func (p *ReminderProcessor) Run(ctx context.Context) {
	p.logger.Info("reminder worker started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("reminder worker stopped")
			return
		default:
		}

		job, _, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.Error(err), zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
			if err := p.queue.Retry(ctx, job); err != nil {
				p.logger.Error("retry failed", zap.Error(err), zap.String("job_id", job.ID))
			}
			time.Sleep(queue.RetryBackoff)
		}
	}
}
