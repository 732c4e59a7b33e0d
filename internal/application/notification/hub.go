package notification

import (
	"context"
	"sync"

	domnotify "github.com/techsolutions/salescore/internal/domain/notification"
	"github.com/techsolutions/salescore/internal/domain/product"
	"github.com/techsolutions/salescore/internal/observability"
	"github.com/techsolutions/salescore/internal/observability/logctx"
)

const componentHub = "notification_hub"

// Hub holds the ordered set of stock subscribers and fans low-stock notices
// out to the entitled ones. Registration order is notification order.
// Register/Unregister may race with in-flight Evaluate calls, so the list is
// mutex-guarded and copied before iteration.
type Hub struct {
	mu          sync.Mutex
	subscribers []domnotify.Subscriber
	log         observability.Logger
	notices     observability.Counter
}

func NewHub(tel observability.Observability) *Hub {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Hub{
		log:     tel.Logger().With(observability.F("component", componentHub)),
		notices: tel.Metrics().Counter(observability.MStockNotifications),
	}
}

// Register appends the subscriber unless the identical subscriber is already
// present. Duplicates are silently ignored.
func (h *Hub) Register(s domnotify.Subscriber) {
	if s == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, existing := range h.subscribers {
		if existing == s {
			return
		}
	}
	h.subscribers = append(h.subscribers, s)
	h.log.Info("subscriber_registered",
		observability.F("role", s.Role()),
		observability.F("subscribers", len(h.subscribers)),
	)
}

// Unregister removes the subscriber if present; absent subscribers are a
// no-op.
func (h *Hub) Unregister(s domnotify.Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, existing := range h.subscribers {
		if existing == s {
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			h.log.Info("subscriber_unregistered",
				observability.F("role", s.Role()),
			)
			return
		}
	}
}

// Subscribers returns a snapshot of the current registration list.
func (h *Hub) Subscribers() []domnotify.Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domnotify.Subscriber(nil), h.subscribers...)
}

// Evaluate checks the product's post-mutation stock and, when replenishment
// is due, notifies entitled subscribers in registration order. Every
// mutation re-evaluates; a product sitting below its minimum is notified on
// each call. Subscriber errors are logged and never abort the fanout.
func (h *Hub) Evaluate(ctx context.Context, p *product.Product) {
	if p == nil || !p.NeedsReplenishment() {
		return
	}

	logger := logctx.FromOr(ctx, h.log).With(
		observability.F("product_id", p.ID),
		observability.F("stock", p.Stock),
		observability.F("minimum_stock", p.MinimumStock),
	)
	logger.Info("low_stock_detected")

	for _, s := range h.Subscribers() {
		if !domnotify.Entitled(s.Role()) {
			continue
		}
		if err := s.Notify(ctx, p); err != nil {
			logger.Warn("subscriber_notify_error",
				observability.F("role", s.Role()),
				observability.F("error", err.Error()),
			)
			continue
		}
		h.notices.Add(1, observability.L("role", s.Role()))
	}
}
