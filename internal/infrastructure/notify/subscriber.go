package notify

import (
	"context"

	domnotify "github.com/techsolutions/salescore/internal/domain/notification"
	"github.com/techsolutions/salescore/internal/domain/product"
	"github.com/techsolutions/salescore/internal/domain/user"
	"github.com/techsolutions/salescore/internal/observability"
)

// UserSubscriber delivers low-stock notices to a user through the log
// stream. A real deployment would push to mail or chat; the sink is the only
// part that would change.
type UserSubscriber struct {
	user *user.User
	log  observability.Logger
}

func NewUserSubscriber(u *user.User, logger observability.Logger) *UserSubscriber {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &UserSubscriber{
		user: u,
		log:  logger.With(observability.F("component", "stock_notifier")),
	}
}

func (s *UserSubscriber) Notify(ctx context.Context, p *product.Product) error {
	_ = ctx
	s.log.Info("low_stock_notice",
		observability.F("recipient", s.user.Username),
		observability.F("recipient_roles", s.user.Roles),
		observability.F("product_id", p.ID),
		observability.F("product_name", p.Name),
		observability.F("stock", p.Stock),
		observability.F("minimum_stock", p.MinimumStock),
		observability.F("action", "replenish_inventory"),
	)
	return nil
}

// Role returns the user's first role; subscribers are keyed by a single
// role for notification routing.
func (s *UserSubscriber) Role() string {
	if len(s.user.Roles) == 0 {
		return ""
	}
	return s.user.Roles[0]
}

var _ domnotify.Subscriber = (*UserSubscriber)(nil)
