package worker

// receipt_worker.go
// Processes order receipt jobs from QueueReceipt.
// Renders the PDF receipt and enqueues a confirmation email to the customer.
// Runs off the request path so order placement latency stays flat.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lilass/internal/infra"
	"lilass/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// ReceiptWorker renders order receipts and hands them to the email queue.
type ReceiptWorker struct {
	orderRepo   repository.OrderRepository
	dispatcher  *Dispatcher
	storagePath string
	storeName   string
}

func NewReceiptWorker(
	orderRepo repository.OrderRepository,
	dispatcher *Dispatcher,
	storagePath string,
	storeName string,
) *ReceiptWorker {
	return &ReceiptWorker{
		orderRepo:   orderRepo,
		dispatcher:  dispatcher,
		storagePath: storagePath,
		storeName:   storeName,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the order (with items) from DB
//  3. Render the PDF receipt with retry on transient failures
//  4. Enqueue the confirmation email with the PDF attached
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("receipt_worker: invalid order_id")
		return
	}

	order, err := w.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("receipt_worker: order not found")
		return
	}

	var pdfPath string
	pdfErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateReceiptPDF(order, w.storeName, w.storagePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("order_id", payload.OrderID).
				Msg("receipt_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if pdfErr != nil {
		log.Error().Err(pdfErr).Str("order_id", payload.OrderID).Msg("receipt_worker: PDF generation failed after retries")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("order_id", payload.OrderID).Msg("receipt_worker: PDF generated")

	if payload.CustomerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: payload.CustomerEmail,
			Subject: fmt.Sprintf("%s — Order confirmation", w.storeName),
			Body: fmt.Sprintf("Thanks for your order!\nOrder: %s\nTotal: $%s\nYour receipt is attached.",
				order.ID, order.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.CustomerEmail).Msg("receipt_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", payload.CustomerEmail).Msg("receipt_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
