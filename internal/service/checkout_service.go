package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	orderEmailSubject = "Nuevo pedido %s"
	checkoutAttempts  = 3
)

// DeepLinkBuilder turns the order text into the link that hands it to the
// chat application.
type DeepLinkBuilder interface {
	Build(text string) string
}

type EmailSender interface {
	Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error
}

type CheckoutResult struct {
	OrderID  string         `json:"order_id"`
	Message  string         `json:"message"`
	DeepLink string         `json:"deep_link"`
	Summary  entity.Summary `json:"summary"`
}

type CheckoutServiceConfig struct {
	// ShopEmail receives a copy of every order when a mailer is set.
	ShopEmail string
}

type CheckoutService struct {
	formatter *OrderFormatter
	links     DeepLinkBuilder
	publisher EventPublisher
	mailer    EmailSender
	metrics   *metrics.MetricsManager
	log       logger.Logger
	cfg       CheckoutServiceConfig
}

// NewCheckoutService wires the checkout flow. publisher, mailer and m may be
// nil to disable the matching side effect.
func NewCheckoutService(
	formatter *OrderFormatter,
	links DeepLinkBuilder,
	publisher EventPublisher,
	mailer EmailSender,
	m *metrics.MetricsManager,
	log logger.Logger,
	cfg CheckoutServiceConfig,
) *CheckoutService {
	return &CheckoutService{
		formatter: formatter,
		links:     links,
		publisher: publisher,
		mailer:    mailer,
		metrics:   m,
		log:       log,
		cfg:       cfg,
	}
}

// Preview renders the order text for the current cart without placing it.
func (s *CheckoutService) Preview(store *Store, shipping *entity.ShippingDetails) (string, entity.Summary, error) {
	summary := entity.Summarize(store.Snapshot())
	if summary.IsEmpty() {
		return "", entity.Summary{}, ErrEmptyCart
	}
	if shipping == nil {
		shipping = entity.NewShippingDetails()
	}
	return s.formatter.Format(summary, shipping), summary, nil
}

// Checkout validates the shipping form, renders the order message and its
// deep link, clears exactly the cart that was rendered and notifies the shop.
// A cart that changes while the order is rendered is rendered again, up to
// checkoutAttempts times, before ErrCartChanged is returned.
func (s *CheckoutService) Checkout(ctx context.Context, store *Store, shipping *entity.ShippingDetails) (*CheckoutResult, error) {
	ctx, span := tracer.Tracer("storefront/checkout").Start(ctx, "CheckoutService.Checkout")
	defer span.End()

	if store.Snapshot().IsEmpty() {
		s.countCheckout("empty_cart")
		return nil, ErrEmptyCart
	}
	if shipping == nil {
		shipping = entity.NewShippingDetails()
	}
	if err := shipping.Validate(); err != nil {
		s.countCheckout("invalid_shipping")
		return nil, fmt.Errorf("%w: %w", ErrInvalidShipping, err)
	}

	var result *CheckoutResult
	for attempt := 1; ; attempt++ {
		cart, revision := store.SnapshotRevision()
		summary := entity.Summarize(cart)
		if summary.IsEmpty() {
			s.countCheckout("empty_cart")
			return nil, ErrEmptyCart
		}

		text := s.formatter.Format(summary, shipping)
		deepLink := s.links.Build(text)

		_, err := store.ClearIfUnchanged(ctx, revision)
		if err == nil {
			result = &CheckoutResult{
				OrderID:  uuid.NewString(),
				Message:  text,
				DeepLink: deepLink,
				Summary:  summary,
			}
			break
		}
		if errors.Is(err, ErrCartChanged) && attempt < checkoutAttempts {
			s.log.Debugf("Cart %s changed during checkout, rendering again", store.Key())
			continue
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "clear cart failed")
		if errors.Is(err, ErrCartChanged) {
			s.countCheckout("cart_changed")
			return nil, err
		}
		s.countCheckout("clear_failed")
		return nil, fmt.Errorf("order rendered but cart %s could not be cleared: %w", store.Key(), err)
	}

	span.SetAttributes(
		attribute.String("order.id", result.OrderID),
		attribute.Int("order.items", result.Summary.ItemCount),
		attribute.String("order.total", result.Summary.Total.String()),
	)

	s.notify(ctx, store.Key(), result)

	s.countCheckout("placed")
	if s.metrics != nil {
		s.metrics.OrderValue.Observe(result.Summary.Total.InexactFloat64())
	}
	s.log.Infof("Order %s placed for %s: %d items, total %s", result.OrderID, store.Key(), result.Summary.ItemCount, result.Summary.Total)
	return result, nil
}

func (s *CheckoutService) notify(ctx context.Context, cartKey string, result *CheckoutResult) {
	if s.publisher != nil {
		event := OrderPlacedEvent{
			OrderID:    result.OrderID,
			CartKey:    cartKey,
			ItemCount:  result.Summary.ItemCount,
			Total:      result.Summary.Total,
			Message:    result.Message,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, SubjectOrderPlaced, event); err != nil {
			s.log.Warnf("Failed to publish %s for order %s: %v", SubjectOrderPlaced, result.OrderID, err)
		}
	}

	if s.mailer != nil && s.cfg.ShopEmail != "" {
		subject := fmt.Sprintf(orderEmailSubject, result.OrderID)
		if err := s.mailer.Send(ctx, []string{s.cfg.ShopEmail}, subject, "", result.Message); err != nil {
			s.log.Warnf("Failed to e-mail order %s: %v", result.OrderID, err)
		}
	}
}

func (s *CheckoutService) countCheckout(result string) {
	if s.metrics != nil {
		s.metrics.CheckoutsTotal.WithLabelValues(result).Inc()
	}
}
