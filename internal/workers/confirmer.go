// Package workers contains the queue consumers that run in the worker binary.
package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volunteernetwork/api/internal/database"
	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/queue"
	"go.uber.org/zap"
)

// NotificationChannelEmail is the delivery channel recorded for confirmations
const NotificationChannelEmail = "email"

// Confirmer consumes signup confirmation jobs and records the resulting
// notifications
type Confirmer struct {
	eventRepo        database.EventRepositoryInterface
	notificationRepo database.NotificationRepositoryInterface
	jobQueue         queue.JobQueue
	logger           *zap.Logger
}

// NewConfirmer creates a new confirmation worker. The queue is used to
// re-enqueue failed jobs with their retry count persisted in the message body.
func NewConfirmer(eventRepo database.EventRepositoryInterface, notificationRepo database.NotificationRepositoryInterface, jobQueue queue.JobQueue, logger *zap.Logger) *Confirmer {
	return &Confirmer{
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		jobQueue:         jobQueue,
		logger:           logger,
	}
}

// ProcessJob processes a job based on its type
func (c *Confirmer) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	switch job.Type {
	case queue.JobTypeSignupConfirmation:
		if err := c.processSignupConfirmation(ctx, job); err != nil {
			return c.handleJobError(ctx, msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		// Unknown job type, send to DLQ
		if nackErr := msg.Nack(false); nackErr != nil {
			c.logger.Error("failed_to_nack_unknown_job", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (c *Confirmer) processSignupConfirmation(ctx context.Context, job *queue.Job) error {
	status := models.NotificationStatusSent

	// The registration may have been deleted between enqueue and delivery;
	// record the attempt as failed rather than retrying forever
	if _, err := c.eventRepo.GetByID(ctx, job.EventID); err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("failed to load event %s: %w", job.EventID, err)
		}
		status = models.NotificationStatusFailed
	}

	notification := &models.Notification{
		ID:      uuid.New(),
		EventID: job.EventID,
		Email:   job.Email,
		Channel: NotificationChannelEmail,
		Status:  status,
	}

	if err := c.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	c.logger.Info("signup_confirmation_recorded",
		zap.String("event_id", job.EventID.String()),
		zap.String("status", string(status)),
	)

	return nil
}

// handleJobError re-enqueues retryable failures and dead-letters the rest.
//
// A broker requeue redelivers the original message body, which would reset
// the retry count on every delivery. The count has to travel in a fresh
// message, so retries are published as a copy of the job with the count
// incremented, and the original is acked once the copy is on the queue.
func (c *Confirmer) handleJobError(ctx context.Context, msg queue.MessageInterface, job *queue.Job, err error) error {
	if job.CanRetry() && c.jobQueue != nil {
		retry := *job
		retry.IncrementRetry()

		if enqueueErr := c.jobQueue.Enqueue(ctx, &retry); enqueueErr != nil {
			// The retry cannot be persisted, dead-letter the original
			c.logger.Error("failed_to_re_enqueue_job",
				zap.Error(enqueueErr),
				zap.String("job_id", job.ID.String()),
			)
			if nackErr := msg.Nack(false); nackErr != nil {
				c.logger.Error("failed_to_nack_job_to_dlq", zap.Error(nackErr))
			}
			return fmt.Errorf("failed to re-enqueue job for retry: %w", enqueueErr)
		}

		if ackErr := msg.Ack(); ackErr != nil {
			// The retry is already queued; a redelivery of the original
			// would at worst duplicate the notification
			c.logger.Error("failed_to_ack_retried_job", zap.Error(ackErr))
		}

		c.logger.Warn("confirmation_job_failed_retrying",
			zap.Error(err),
			zap.String("job_id", job.ID.String()),
			zap.Int("retry_count", retry.RetryCount),
		)
		return nil
	}

	c.logger.Error("confirmation_job_exhausted_retries",
		zap.Error(err),
		zap.String("job_id", job.ID.String()),
	)
	if nackErr := msg.Nack(false); nackErr != nil {
		return fmt.Errorf("failed to nack job to DLQ: %w", nackErr)
	}
	return fmt.Errorf("signup confirmation failed: %w", err)
}
