package notification

import (
	"context"

	"github.com/techsolutions/salescore/internal/domain/product"
)

// Roles entitled to low-stock notices. The hub checks each subscriber's
// declared role against this allow-list; it is not configurable per call.
const (
	RoleManager    = "MANAGER"
	RolePurchasing = "PURCHASING"
)

// Subscriber receives low-stock notices for products. Role is the single
// role name the subscriber registered under.
type Subscriber interface {
	Notify(ctx context.Context, p *product.Product) error
	Role() string
}

// Entitled reports whether a subscriber role is on the notification
// allow-list.
func Entitled(role string) bool {
	return role == RoleManager || role == RolePurchasing
}
