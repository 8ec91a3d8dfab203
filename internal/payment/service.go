package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cardstream/cardstream/internal/bank"
	"github.com/cardstream/cardstream/internal/clock"
	"github.com/cardstream/cardstream/internal/events"
	"github.com/cardstream/cardstream/internal/logging"
)

// Service orchestrates the payment flow: sanitize, deduplicate, validate,
// authorize with the bank, store the masked outcome and bind the idempotency
// key.
type Service struct {
	repo   Repository
	cache  Cache
	bank   bank.Client
	clock  clock.Clock
	events events.Publisher
	logger *slog.Logger
}

// NewService constructs a payment service. A nil clock falls back to the
// system clock and a nil logger discards output.
func NewService(repo Repository, cache Cache, bankClient bank.Client, clk clock.Clock, publisher events.Publisher, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{repo: repo, cache: cache, bank: bankClient, clock: clk, events: publisher, logger: logger}
}

// Process runs one payment attempt end to end and returns the stored, masked
// outcome. The card number and CVV are trimmed in place before anything else,
// so the caller's view of those fields reflects what was processed.
//
// Validation failures and bank unavailability abort the attempt before
// anything is stored or bound. An idempotency key already bound in the cache
// short-circuits the whole flow, bank call included.
func (s *Service) Process(ctx context.Context, input *ProcessInput, idempotencyKey string) (Payment, error) {
	input.CardNumber = strings.TrimSpace(input.CardNumber)
	input.CVV = strings.TrimSpace(input.CVV)

	if idempotencyKey != "" && s.cache != nil {
		cached, found, err := s.cache.Find(ctx, idempotencyKey)
		if err != nil {
			// Fail open: a broken cache degrades deduplication, not payments.
			s.logger.Warn("idempotency lookup failed", "error", err)
		} else if found {
			s.logger.Info("payment idempotency hit", "payment_id", cached.ID)
			return cached, nil
		}
	}

	s.logger.Info("payment received", "currency", input.Currency, "has_idempotency_key", idempotencyKey != "")

	if errs := Validate(*input, s.clock.Now()); len(errs) > 0 {
		s.logger.Warn("payment validation failed", "error_count", len(errs))
		return Payment{}, &ValidationError{Errors: errs}
	}

	bankReq := bank.Request{
		CardNumber: input.CardNumber,
		ExpiryDate: fmt.Sprintf("%02d/%d", *input.ExpiryMonth, *input.ExpiryYear),
		Currency:   input.Currency,
		Amount:     *input.Amount,
		CVV:        input.CVV,
	}

	bankStart := time.Now()
	verdict, err := s.bank.Authorize(ctx, bankReq)
	if err != nil {
		return Payment{}, err
	}
	s.logger.Info("bank responded", "authorized", verdict.Authorized, "bank_latency_ms", time.Since(bankStart).Milliseconds())

	status := StatusDeclined
	if verdict.Authorized {
		status = StatusAuthorized
	}

	p := Payment{
		ID:                 uuid.NewString(),
		Status:             status,
		CardNumberLastFour: input.CardNumber[len(input.CardNumber)-4:],
		ExpiryMonth:        *input.ExpiryMonth,
		ExpiryYear:         *input.ExpiryYear,
		Currency:           input.Currency,
		Amount:             *input.Amount,
	}

	if err := s.repo.Add(ctx, p); err != nil {
		return Payment{}, err
	}

	if idempotencyKey != "" && s.cache != nil {
		bound, err := s.cache.Bind(ctx, idempotencyKey, p)
		if err != nil {
			s.logger.Warn("idempotency bind failed", "payment_id", p.ID, "error", err)
		} else {
			p = bound
		}
	}

	if s.events != nil {
		_ = s.events.Publish(ctx, events.PaymentProcessed{
			PaymentID:    p.ID,
			Status:       p.Status,
			Currency:     p.Currency,
			Amount:       p.Amount,
			CardLastFour: p.CardNumberLastFour,
		})
	}

	s.logger.Info("payment processed",
		"payment_id", p.ID,
		"status", p.Status,
		"currency", p.Currency,
		"amount", p.Amount,
		"card_last_four", p.CardNumberLastFour,
	)

	return p, nil
}

// GetByID retrieves a previously stored payment.
func (s *Service) GetByID(ctx context.Context, id string) (Payment, error) {
	return s.repo.Get(ctx, id)
}
