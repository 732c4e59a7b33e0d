package inventory

import (
	"context"
	"fmt"
	"time"

	appnotify "github.com/techsolutions/salescore/internal/application/notification"
	domain "github.com/techsolutions/salescore/internal/domain/product"
	"github.com/techsolutions/salescore/internal/observability"
	"github.com/techsolutions/salescore/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	inventoryService  = "inventory-service"
	useCaseReduce     = "inventory.reduce"
	useCaseIncrease   = "inventory.increase"
	useCaseSetMinimum = "inventory.set_minimum"
	spanStockMutation = "UC.MutateStock"
)

// StockStatus is the post-mutation snapshot returned to the caller.
type StockStatus struct {
	ProductID          string `json:"productoId"`
	CurrentStock       int    `json:"stockActual"`
	MinimumStock       int    `json:"stockMinimo"`
	NeedsReplenishment bool   `json:"necesitaReposicion"`
}

// Service owns the stock-affecting mutations. Every mutation persists the
// product and then hands the fresh state to the notification hub; any
// transition that could flip the replenishment flag triggers a re-evaluation.
type Service struct {
	repo     domain.Repository
	hub      *appnotify.Hub
	log      observability.Logger
	tracer   observability.Tracer
	requests observability.Counter
	duration observability.Histogram
}

func NewService(repo domain.Repository, hub *appnotify.Hub, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		repo:     repo,
		hub:      hub,
		log:      tel.Logger().With(observability.F("service", inventoryService)),
		tracer:   tel.Tracer(),
		requests: tel.Metrics().Counter(observability.MUsecaseRequests),
		duration: tel.Metrics().Histogram(observability.MUsecaseDuration),
	}
}

// Reduce removes quantity units of stock.
func (s *Service) Reduce(ctx context.Context, productID string, quantity int) (*StockStatus, error) {
	return s.mutate(ctx, useCaseReduce, productID, func(p *domain.Product) error {
		return p.Reduce(quantity)
	})
}

// Increase adds quantity units of stock. An increase can still leave the
// product at or below its minimum, so it re-evaluates like any mutation.
func (s *Service) Increase(ctx context.Context, productID string, quantity int) (*StockStatus, error) {
	return s.mutate(ctx, useCaseIncrease, productID, func(p *domain.Product) error {
		return p.Increase(quantity)
	})
}

// SetMinimumThreshold reconfigures the replenishment threshold.
func (s *Service) SetMinimumThreshold(ctx context.Context, productID string, minimum int) (*StockStatus, error) {
	return s.mutate(ctx, useCaseSetMinimum, productID, func(p *domain.Product) error {
		return p.SetMinimumStock(minimum)
	})
}

// Get returns the current product state without mutating it.
func (s *Service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.Get(ctx, productID)
}

// List returns all known products.
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) mutate(ctx context.Context, useCase, productID string, op func(*domain.Product) error) (_ *StockStatus, err error) {
	ctx, span := s.tracer.Start(ctx, spanStockMutation,
		attribute.String("use_case", useCase),
		attribute.String("product.id", productID),
	)
	start := time.Now()
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
			observability.L("use_case", useCase),
			observability.L("outcome", outcome),
		)
		s.duration.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCase),
		)
	}()

	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("inventory: get %s: %w", productID, err)
	}

	if err = op(p); err != nil {
		return nil, fmt.Errorf("inventory: %s: %w", useCase, err)
	}

	if err = s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("inventory: save %s: %w", productID, err)
	}

	logctx.FromOr(ctx, s.log).Info("stock_mutated",
		observability.F("use_case", useCase),
		observability.F("product_id", p.ID),
		observability.F("stock", p.Stock),
		observability.F("minimum_stock", p.MinimumStock),
		observability.F("needs_replenishment", p.NeedsReplenishment()),
	)

	if s.hub != nil {
		s.hub.Evaluate(ctx, p)
	}

	return &StockStatus{
		ProductID:          p.ID,
		CurrentStock:       p.Stock,
		MinimumStock:       p.MinimumStock,
		NeedsReplenishment: p.NeedsReplenishment(),
	}, nil
}
