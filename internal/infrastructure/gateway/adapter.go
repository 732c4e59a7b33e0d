package gateway

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	dompay "github.com/techsolutions/salescore/internal/domain/payment"
	"github.com/techsolutions/salescore/internal/observability"
)

// adapter is the shared simulation behind every provider. Real provider
// APIs are out of scope; Process always succeeds and Verify reports a
// completed status for any reference.
type adapter struct {
	mu      sync.Mutex
	name    string
	note    string
	enabled bool
	log     observability.Logger
}

func newAdapter(name, note string, logger observability.Logger) *adapter {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &adapter{
		name:    name,
		note:    note,
		enabled: true,
		log:     logger.With(observability.F("gateway", name)),
	}
}

func (a *adapter) Name() string { return a.name }

func (a *adapter) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

func (a *adapter) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

func (a *adapter) Process(ctx context.Context, amount decimal.Decimal, reference string) (bool, error) {
	_ = ctx
	if !a.Enabled() {
		a.log.Warn("gateway_disabled_process_refused",
			observability.F("reference", reference),
		)
		return false, nil
	}
	a.log.Info("payment_simulated",
		observability.F("channel", a.note),
		observability.F("amount", amount.String()),
		observability.F("reference", reference),
	)
	return true, nil
}

func (a *adapter) Verify(ctx context.Context, reference string) (string, error) {
	_ = ctx
	a.log.Info("transaction_verified",
		observability.F("reference", reference),
	)
	return "COMPLETADO - " + a.name, nil
}

var _ dompay.Gateway = (*adapter)(nil)
