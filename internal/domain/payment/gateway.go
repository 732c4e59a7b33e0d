package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownGateway   = errors.New("payment: unknown gateway")
	ErrGatewayDisabled  = errors.New("payment: gateway disabled")
	ErrInvalidAmount    = errors.New("payment: amount must be greater than zero")
	ErrInvalidReference = errors.New("payment: reference is required")
)

// Gateway is the uniform capability set every payment backend adapts to.
// Process is only invoked for enabled gateways; the registry refuses
// disabled ones before delegating. Verify must stay reachable regardless of
// the enabled flag so historical transactions remain checkable.
type Gateway interface {
	Process(ctx context.Context, amount decimal.Decimal, reference string) (bool, error)
	Verify(ctx context.Context, reference string) (string, error)
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
}

// Info is the listing shape exposed to callers.
type Info struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Enabled     bool   `json:"enabled"`
}
