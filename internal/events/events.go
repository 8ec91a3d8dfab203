package events

import (
	"context"
	"log/slog"
)

const (
	// KindPaymentProcessed indicates a payment reached a terminal stored state.
	KindPaymentProcessed = "payment_processed"
)

// PaymentProcessed describes the outcome of one processed payment. Only
// masked card data is carried.
type PaymentProcessed struct {
	PaymentID    string
	Status       string
	Currency     string
	Amount       int64
	CardLastFour string
}

// Publisher delivers payment events to downstream systems.
type Publisher interface {
	Publish(ctx context.Context, event PaymentProcessed) error
}

// LoggerPublisher is a stub implementation that writes events to the logger.
type LoggerPublisher struct {
	logger *slog.Logger
}

// NewLoggerPublisher constructs a logging publisher stub.
func NewLoggerPublisher(logger *slog.Logger) *LoggerPublisher {
	return &LoggerPublisher{logger: logger}
}

// Publish writes the event to the structured logger.
func (p *LoggerPublisher) Publish(_ context.Context, event PaymentProcessed) error {
	if p == nil || p.logger == nil {
		return nil
	}
	p.logger.Info("payment event",
		"kind", KindPaymentProcessed,
		"payment_id", event.PaymentID,
		"status", event.Status,
		"currency", event.Currency,
		"amount", event.Amount,
		"card_last_four", event.CardLastFour,
	)
	return nil
}
