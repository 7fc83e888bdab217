package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/karantec/minutos-storefront/internal/domain"
	pkgkafka "github.com/karantec/minutos-storefront/pkg/kafka"
)

// Kafka topics for checkout lifecycle events.
const (
	TopicCheckoutStarted   = "storefront.checkout.started"
	TopicCheckoutCompleted = "storefront.checkout.completed"
	TopicCheckoutFailed    = "storefront.checkout.failed"
)

// Aggregate type constant.
const AggregateTypeCheckout = "checkout_session"

// Source identifier for events originating from this service.
const SourceStorefront = "storefront-checkout"

// CheckoutStartedData is the payload for a checkout.started event.
type CheckoutStartedData struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id"`
	Lines     []domain.CartLine `json:"lines"`
	Subtotal  int64             `json:"subtotal"`
	Total     int64             `json:"total"`
}

// CheckoutCompletedData is the payload for a checkout.completed event.
type CheckoutCompletedData struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	OrderID       string `json:"order_id"`
	VendorID      string `json:"vendor_id"`
	PaymentMethod string `json:"payment_method"`
	TotalAmount   int64  `json:"total_amount"`
}

// CheckoutFailedData is the payload for a checkout.failed event.
type CheckoutFailedData struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Step      string `json:"step"`
	ErrorCode string `json:"error_code"`
	Reason    string `json:"reason"`
}

// Producer publishes checkout lifecycle events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for this service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCheckoutStarted publishes a checkout.started event.
func (p *Producer) PublishCheckoutStarted(ctx context.Context, session *domain.CheckoutSession) error {
	data := CheckoutStartedData{
		SessionID: session.ID,
		UserID:    session.UserID,
		Lines:     session.CartLines,
		Subtotal:  session.Summary.Subtotal,
		Total:     session.Summary.Total,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutStarted, session.ID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.started event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutStarted, event); err != nil {
		return fmt.Errorf("publish checkout.started event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.started event",
		slog.String("session_id", session.ID),
		slog.String("user_id", session.UserID),
	)

	return nil
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, session *domain.CheckoutSession) error {
	data := CheckoutCompletedData{
		SessionID:     session.ID,
		UserID:        session.UserID,
		VendorID:      session.VendorID,
		PaymentMethod: session.PaymentMethod,
	}
	if session.Order != nil {
		data.OrderID = session.Order.ID
		data.TotalAmount = session.Order.TotalAmount
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, session.ID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.String("session_id", session.ID),
		slog.String("order_id", data.OrderID),
	)

	return nil
}

// PublishCheckoutFailed publishes a checkout.failed event.
func (p *Producer) PublishCheckoutFailed(ctx context.Context, session *domain.CheckoutSession, reason string) error {
	data := CheckoutFailedData{
		SessionID: session.ID,
		UserID:    session.UserID,
		Step:      session.Step,
		Reason:    reason,
	}
	if session.StepError != nil {
		data.ErrorCode = session.StepError.Code
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutFailed, session.ID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.failed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutFailed, event); err != nil {
		return fmt.Errorf("publish checkout.failed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.failed event",
		slog.String("session_id", session.ID),
		slog.String("reason", reason),
	)

	return nil
}
