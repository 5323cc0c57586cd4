package service

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

const (
	SubjectCartChanged = "cart.changed"
	SubjectOrderPlaced = "order.placed"
)

// EventPublisher is satisfied by the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, message interface{}) error
}

type CartChangedEvent struct {
	CartKey       string          `json:"cart_key"`
	Operation     string          `json:"operation"`
	Lines         int             `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	Total         decimal.Decimal `json:"total"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type OrderPlacedEvent struct {
	OrderID    string          `json:"order_id"`
	CartKey    string          `json:"cart_key"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
	Message    string          `json:"message"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewEventListener publishes a CartChangedEvent for every committed change.
// Publish failures are logged and never undo the change.
func NewEventListener(pub EventPublisher, log logger.Logger) Listener {
	return func(ctx context.Context, change CartChange) {
		summary := entity.Summarize(change.Cart)
		event := CartChangedEvent{
			CartKey:       change.Key,
			Operation:     change.Operation,
			Lines:         change.Cart.Len(),
			TotalQuantity: change.Cart.TotalQuantity(),
			Total:         summary.Total,
			OccurredAt:    time.Now().UTC(),
		}
		if err := pub.Publish(context.WithoutCancel(ctx), SubjectCartChanged, event); err != nil {
			log.Warnf("Failed to publish %s for %s: %v", SubjectCartChanged, change.Key, err)
		}
	}
}

// NewMetricsListener counts committed changes by operation.
func NewMetricsListener(m *metrics.MetricsManager) Listener {
	return func(_ context.Context, change CartChange) {
		m.CartMutationsTotal.WithLabelValues(change.Operation).Inc()
	}
}
