package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	dompay "github.com/techsolutions/salescore/internal/domain/payment"
	"github.com/techsolutions/salescore/internal/infrastructure/id"
	"github.com/techsolutions/salescore/internal/observability"
	"github.com/techsolutions/salescore/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	paymentService     = "payment-service"
	useCaseProcess     = "payment.process"
	useCaseVerify      = "payment.verify"
	useCaseConfigure   = "payment.configure"
	spanProcessPayment = "UC.ProcessPayment"
	spanVerifyPayment  = "UC.VerifyTransaction"
)

// ProcessResult echoes the request fields alongside the simulated outcome.
type ProcessResult struct {
	Success       bool            `json:"success"`
	GatewayID     string          `json:"gatewayId"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
	TransactionID string          `json:"transactionId"`
}

// Service routes payment operations to one of several interchangeable
// gateway adapters and centrally enforces the enabled/disabled gate.
// Lookups are case-insensitive; listing follows registration order.
type Service struct {
	mu       sync.RWMutex
	gateways map[string]dompay.Gateway
	order    []string
	ids      id.Generator
	log      observability.Logger
	tracer   observability.Tracer
	requests observability.Counter
	duration observability.Histogram
	payments observability.Counter
}

func NewService(ids id.Generator, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		gateways: make(map[string]dompay.Gateway),
		ids:      ids,
		log:      tel.Logger().With(observability.F("service", paymentService)),
		tracer:   tel.Tracer(),
		requests: tel.Metrics().Counter(observability.MUsecaseRequests),
		duration: tel.Metrics().Histogram(observability.MUsecaseDuration),
		payments: tel.Metrics().Counter(observability.MPaymentsProcessed),
	}
}

// Register adds a gateway under the given identifier. Identifiers are
// case-insensitive and unique; re-registering an id replaces the adapter but
// keeps its original position in the listing order.
func (s *Service) Register(gatewayID string, gw dompay.Gateway) {
	key := strings.ToLower(gatewayID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.gateways[key]; !exists {
		s.order = append(s.order, key)
	}
	s.gateways[key] = gw
}

func (s *Service) lookup(gatewayID string) (string, dompay.Gateway, error) {
	key := strings.ToLower(gatewayID)
	s.mu.RLock()
	gw, ok := s.gateways[key]
	s.mu.RUnlock()
	if !ok {
		return key, nil, fmt.Errorf("%w: %s", dompay.ErrUnknownGateway, gatewayID)
	}
	return key, gw, nil
}

// Process routes a payment to the named gateway. Disabled gateways are
// refused here; adapters never see a process call while disabled.
func (s *Service) Process(ctx context.Context, gatewayID string, amount decimal.Decimal, reference string) (_ *ProcessResult, err error) {
	ctx, span := s.tracer.Start(ctx, spanProcessPayment,
		attribute.String("use_case", useCaseProcess),
		attribute.String("gateway.id", strings.ToLower(gatewayID)),
		attribute.String("payment.reference", reference),
	)
	start := time.Now()
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCaseProcess),
		observability.F("gateway_id", strings.ToLower(gatewayID)),
		observability.F("reference", reference),
	)
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()
		s.requests.Add(1,
			observability.L("use_case", useCaseProcess),
			observability.L("outcome", outcome),
		)
		s.duration.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCaseProcess),
		)
	}()

	key, gw, err := s.lookup(gatewayID)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", dompay.ErrInvalidAmount, amount)
	}
	if reference == "" {
		return nil, dompay.ErrInvalidReference
	}
	if !gw.Enabled() {
		return nil, fmt.Errorf("%w: %s", dompay.ErrGatewayDisabled, key)
	}

	ok, err := gw.Process(ctx, amount, reference)
	if err != nil {
		return nil, fmt.Errorf("payment: process via %s: %w", key, err)
	}

	result := &ProcessResult{
		Success:   ok,
		GatewayID: key,
		Amount:    amount,
		Reference: reference,
	}
	if s.ids != nil {
		result.TransactionID = s.ids.TransactionID(key)
	}

	s.payments.Add(1,
		observability.L("gateway", key),
		observability.L("outcome", outcomeLabel(ok)),
	)
	logger.Info("payment_processed",
		observability.F("success", ok),
		observability.F("amount", amount.String()),
		observability.F("transaction_id", result.TransactionID),
	)
	return result, nil
}

// Verify reports the status of a past transaction. It deliberately bypasses
// the enabled gate: verification must stay possible while a gateway is
// disabled for new payments.
func (s *Service) Verify(ctx context.Context, gatewayID, reference string) (_ string, err error) {
	ctx, span := s.tracer.Start(ctx, spanVerifyPayment,
		attribute.String("use_case", useCaseVerify),
		attribute.String("gateway.id", strings.ToLower(gatewayID)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()
	}()

	key, gw, err := s.lookup(gatewayID)
	if err != nil {
		return "", err
	}

	status, err := gw.Verify(ctx, reference)
	if err != nil {
		return "", fmt.Errorf("payment: verify via %s: %w", key, err)
	}

	logctx.FromOr(ctx, s.log).Info("transaction_status_checked",
		observability.F("use_case", useCaseVerify),
		observability.F("gateway_id", key),
		observability.F("reference", reference),
		observability.F("status", status),
	)
	return status, nil
}

// SetEnabled flips a gateway's availability for new payments. Setting the
// current value again is a no-op success.
func (s *Service) SetEnabled(ctx context.Context, gatewayID string, enabled bool) error {
	key, gw, err := s.lookup(gatewayID)
	if err != nil {
		return err
	}
	gw.SetEnabled(enabled)
	logctx.FromOr(ctx, s.log).Info("gateway_configured",
		observability.F("use_case", useCaseConfigure),
		observability.F("gateway_id", key),
		observability.F("enabled", enabled),
	)
	return nil
}

// Status returns a snapshot of every gateway's enabled flag.
func (s *Service) Status() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.gateways))
	for key, gw := range s.gateways {
		out[key] = gw.Enabled()
	}
	return out
}

// List returns gateway descriptors in registration order.
func (s *Service) List() []dompay.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dompay.Info, 0, len(s.order))
	for _, key := range s.order {
		gw := s.gateways[key]
		out = append(out, dompay.Info{
			ID:          key,
			DisplayName: gw.Name(),
			Enabled:     gw.Enabled(),
		})
	}
	return out
}

func outcomeLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "declined"
}
