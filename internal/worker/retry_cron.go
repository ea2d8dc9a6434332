package worker

// retry_cron.go
// Background goroutine that periodically re-attempts gateway charges for
// payments stuck in status='failed' with a next_retry_at in the past.
// Uses the Circuit Breaker to avoid hammering a downed provider.

import (
	"context"
	"fmt"
	"time"

	"lilass/internal/infra"
	"lilass/internal/model"
	"lilass/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxPaymentRetries is the cap before a payment is parked in the DLQ.
	MaxPaymentRetries = 5

	// QueuePayment names the logical source queue for payment DLQ entries.
	QueuePayment = "jobs:payment"
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	PaymentRepo repository.PaymentRepository
	Gateway     infra.PaymentGateway
	CB          *infra.CircuitBreaker
	RDB         *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries failed payments, and re-attempts gateway charges through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed provider
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	payments, err := cfg.PaymentRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(payments) == 0 {
		return
	}

	log.Info().Int("count", len(payments)).Msg("retry_cron: processing failed payments")

	for i := range payments {
		p := &payments[i]

		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		charge := infra.GatewayCharge{
			Amount:    p.Amount,
			Currency:  p.Currency,
			Provider:  p.Provider,
			PaymentID: p.ID.String(),
		}
		if p.OrderID != nil {
			charge.OrderID = p.OrderID.String()
		}

		var result *infra.GatewayResult
		cbErr := cfg.CB.Execute(func() error {
			resp, err := cfg.Gateway.Charge(ctx, charge)
			if err != nil {
				return err
			}
			result = resp
			return nil
		})

		if cbErr != nil {
			// Failure — increment retry count, schedule next attempt
			p.RetryCount++
			errMsg := cbErr.Error()
			p.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(p.RetryCount))
			p.NextRetryAt = &nextRetry

			if p.RetryCount >= MaxPaymentRetries {
				p.NextRetryAt = nil
				log.Error().
					Str("payment_id", p.ID.String()).
					Int("retries", p.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to DLQ")

				// Send to DLQ for manual inspection
				payload := fmt.Sprintf(`{"payment_id":"%s"}`, p.ID)
				SendToDLQ(ctx, cfg.RDB, QueuePayment, "payment", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxPaymentRetries, errMsg),
					p.RetryCount)
			} else {
				log.Warn().
					Str("payment_id", p.ID.String()).
					Int("retry_count", p.RetryCount).
					Time("next_retry_at", *p.NextRetryAt).
					Msg("retry_cron: gateway retry failed, scheduled next attempt")
			}

			_ = cfg.PaymentRepo.Update(ctx, p)
			continue
		}

		// Success path
		if result != nil && result.Status == "succeeded" {
			p.Status = model.PaymentStatusSucceeded
			externalID := result.ExternalID
			p.ExternalID = &externalID
			p.NextRetryAt = nil
			p.LastError = nil
			_ = cfg.PaymentRepo.Update(ctx, p)

			log.Info().
				Str("payment_id", p.ID.String()).
				Str("external_id", externalID).
				Int("total_retries", p.RetryCount).
				Msg("retry_cron: payment succeeded after retry")
		} else if result != nil {
			msg := result.Message
			p.LastError = &msg
			p.RetryCount++
			nextRetry := time.Now().Add(computeRetryBackoff(p.RetryCount))
			p.NextRetryAt = &nextRetry
			_ = cfg.PaymentRepo.Update(ctx, p)
			log.Warn().
				Str("status", result.Status).
				Str("payment_id", p.ID.String()).
				Msg("retry_cron: provider declined on retry")
		}
	}
}

// computeRetryBackoff doubles the wait per attempt: 1m, 2m, 4m, 8m, capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Minute * time.Duration(1<<uint(retryCount-1))
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}
