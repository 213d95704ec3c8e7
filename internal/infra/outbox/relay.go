package outbox

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/config"
	"belizevibes-booking/internal/usecase/shared"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v4"
)

const (
	metadataKind     = "kind"
	metadataAttempts = "attempts"
)

// Relay moves queued notification jobs onto the message bus.
type Relay struct {
	uow       shared.UnitOfWork
	publisher message.Publisher
	clock     clock.Clock
	cfg       config.OutboxConfig
	logger    *slog.Logger
}

func NewRelay(uow shared.UnitOfWork, publisher message.Publisher, clk clock.Clock, cfg config.OutboxConfig, logger *slog.Logger) *Relay {
	return &Relay{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	poll := time.NewTicker(r.cfg.PollInterval)
	defer poll.Stop()

	sweepInterval := r.cfg.KeySweepInterval
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}
	sweep := time.NewTicker(sweepInterval)
	defer sweep.Stop()

	r.logger.Info("Outbox relay started",
		"poll_interval", r.cfg.PollInterval.String(),
		"batch_size", r.cfg.BatchSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay stopped")
			return
		case <-poll.C:
			if _, err := r.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("Outbox dispatch failed", "error", err.Error())
			}
		case <-sweep.C:
			if _, err := r.SweepExpiredKeys(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("Idempotency key sweep failed", "error", err.Error())
			}
		}
	}
}

// DispatchOnce publishes one batch of due jobs and returns how many were sent.
// Claimed rows stay locked until the batch is recorded.
func (r *Relay) DispatchOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		now := r.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, r.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			status, runAt, lastErr := r.publish(job, now)
			if status == shared.JobStatusSent {
				sent++
			}
			if err := tx.Notifications().UpdateJobStatus(ctx, tx.DB(), job.ID, status, lastErr, runAt); err != nil {
				return err
			}
		}
		return nil
	})
	return sent, err
}

func (r *Relay) publish(job shared.NotificationJob, now time.Time) (string, time.Time, *string) {
	msg := message.NewMessage(job.ID.String(), job.Payload)
	msg.Metadata.Set(metadataKind, job.Kind)
	msg.Metadata.Set(metadataAttempts, formatAttempts(job.Attempts+1))

	err := r.publisher.Publish(job.Topic, msg)
	if err == nil {
		r.logger.Debug("Notification published", "job_id", job.ID.String(), "topic", job.Topic)
		return shared.JobStatusSent, now, nil
	}

	lastErr := err.Error()
	attempts := job.Attempts + 1
	if attempts >= r.cfg.MaxAttempts {
		r.logger.Error("Notification job gave up",
			"job_id", job.ID.String(),
			"topic", job.Topic,
			"attempts", attempts,
			"error", lastErr)
		return shared.JobStatusFailed, now, &lastErr
	}

	delay := retryDelay(attempts)
	r.logger.Warn("Notification publish failed, retrying later",
		"job_id", job.ID.String(),
		"topic", job.Topic,
		"attempts", attempts,
		"retry_in", delay.String(),
		"error", lastErr)
	return shared.JobStatusQueued, now.Add(delay), &lastErr
}

func (r *Relay) SweepExpiredKeys(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB())
		deleted = n
		return err
	})
	if err == nil && deleted > 0 {
		r.logger.Info("Expired idempotency keys deleted", "count", deleted)
	}
	return deleted, err
}

// retryDelay is 1s, 2s, 4s ... capped at five minutes for the nth failure.
func retryDelay(attempt int32) time.Duration {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = 5 * time.Minute
	b.MaxElapsedTime = 0
	b.Reset()

	d := b.NextBackOff()
	for i := int32(1); i < attempt; i++ {
		d = b.NextBackOff()
	}
	return d
}

func formatAttempts(n int32) string {
	return strconv.FormatInt(int64(n), 10)
}
