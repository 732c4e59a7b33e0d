package gateway

import (
	dompay "github.com/techsolutions/salescore/internal/domain/payment"
	"github.com/techsolutions/salescore/internal/observability"
)

// NewPayPal returns the simulated PayPal adapter.
func NewPayPal(logger observability.Logger) dompay.Gateway {
	return newAdapter("PayPal", "paypal_api", logger)
}

// NewYape returns the simulated Yape mobile-wallet adapter.
func NewYape(logger observability.Logger) dompay.Gateway {
	return newAdapter("Yape", "yape_wallet", logger)
}

// NewPlin returns the simulated Plin mobile-wallet adapter.
func NewPlin(logger observability.Logger) dompay.Gateway {
	return newAdapter("Plin", "plin_wallet", logger)
}
