package service

import (
	"context"
	"errors"
	"time"

	"lilass/internal/dto"
	"lilass/internal/infra"
	"lilass/internal/model"
	"lilass/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	// ErrProviderNotImplemented marks providers we accept in the schema but
	// have no gateway integration for yet (paypal).
	ErrProviderNotImplemented = errors.New("payment provider not implemented")
)

type PaymentService interface {
	Initiate(ctx context.Context, userID *uuid.UUID, req dto.InitiatePaymentRequest) (*dto.PaymentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
}

type paymentService struct {
	repo    repository.PaymentRepository
	gateway infra.PaymentGateway
	cb      *infra.CircuitBreaker
}

func NewPaymentService(repo repository.PaymentRepository, gateway infra.PaymentGateway, cb *infra.CircuitBreaker) PaymentService {
	return &paymentService{repo: repo, gateway: gateway, cb: cb}
}

// Initiate records a payment row first, then registers it with the provider
// through the circuit breaker. A gateway failure does not fail the request:
// the payment is marked failed with a retry schedule and the cron picks it up.
func (s *paymentService) Initiate(ctx context.Context, userID *uuid.UUID, req dto.InitiatePaymentRequest) (*dto.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}
	provider := req.Provider
	if provider == "" {
		provider = "stripe"
	}
	// Paypal is accepted by the schema but has no gateway integration;
	// refusing up front keeps it out of the retry cron.
	if provider == "paypal" {
		return nil, ErrProviderNotImplemented
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	p := &model.Payment{
		Provider: provider,
		Status:   model.PaymentStatusCreated,
		Amount:   req.Amount,
		Currency: currency,
		UserID:   userID,
	}
	if req.OrderID != nil {
		if oid, err := uuid.Parse(*req.OrderID); err == nil {
			p.OrderID = &oid
		}
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Manual payments settle out of band; nothing to register.
	if provider == "manual" {
		p.Status = model.PaymentStatusSucceeded
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
		return &dto.PaymentResponse{Payment: *p}, nil
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
	cbErr := s.cb.Execute(func() error {
		resp, err := s.gateway.Charge(ctx, charge)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})

	if cbErr != nil {
		p.Status = model.PaymentStatusFailed
		errMsg := cbErr.Error()
		p.LastError = &errMsg
		p.RetryCount = 1
		next := time.Now().Add(time.Minute)
		p.NextRetryAt = &next
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
		log.Warn().
			Str("payment_id", p.ID.String()).
			Err(cbErr).
			Msg("payment: gateway registration failed, scheduled for retry")
		return &dto.PaymentResponse{Payment: *p}, nil
	}

	if result.Status == "failed" {
		p.Status = model.PaymentStatusFailed
		msg := result.Message
		p.LastError = &msg
	} else {
		p.Status = model.PaymentStatusSucceeded
		if result.Status == "requires_action" {
			p.Status = model.PaymentStatusCreated
		}
		externalID := result.ExternalID
		p.ExternalID = &externalID
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	resp := &dto.PaymentResponse{Payment: *p}
	if result.ClientSecret != "" {
		secret := result.ClientSecret
		resp.ClientSecret = &secret
	}
	return resp, nil
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{Payment: *p}, nil
}
