package report

import (
	"context"
	"time"

	domreport "github.com/techsolutions/salescore/internal/domain/report"
	"github.com/techsolutions/salescore/internal/domain/user"
	"github.com/techsolutions/salescore/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	reportService = "report-service"
	spanReport    = "UC.GenerateReport"
)

// Service builds a fresh access guard for each request and delegates to it.
// The guard is short-lived on purpose; see Guard.
type Service struct {
	real     domreport.Generator
	tel      observability.Observability
	tracer   observability.Tracer
	requests observability.Counter
	duration observability.Histogram
}

func NewService(real domreport.Generator, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		real:     real,
		tel:      tel,
		tracer:   tel.Tracer(),
		requests: tel.Metrics().Counter(observability.MUsecaseRequests),
		duration: tel.Metrics().Histogram(observability.MUsecaseDuration),
	}
}

// GuardFor returns a guard bound to the requesting user.
func (s *Service) GuardFor(u *user.User) *Guard {
	return NewGuard(u, s.real, s.tel)
}

func (s *Service) Sales(ctx context.Context, u *user.User, from, to time.Time) (r *domreport.SalesReport, err error) {
	ctx, done := s.instrument(ctx, "report.sales")
	defer func() { done(err) }()
	return s.GuardFor(u).Sales(ctx, from, to)
}

func (s *Service) IncomeExpense(ctx context.Context, u *user.User, month, year int) (r *domreport.IncomeExpenseReport, err error) {
	ctx, done := s.instrument(ctx, "report.income_expense")
	defer func() { done(err) }()
	return s.GuardFor(u).IncomeExpense(ctx, month, year)
}

func (s *Service) Profitability(ctx context.Context, u *user.User, from, to time.Time) (r *domreport.ProfitabilityReport, err error) {
	ctx, done := s.instrument(ctx, "report.profitability")
	defer func() { done(err) }()
	return s.GuardFor(u).Profitability(ctx, from, to)
}

func (s *Service) Export(ctx context.Context, u *user.User, reportType string, data map[string]any) (r *domreport.ExportResult, err error) {
	ctx, done := s.instrument(ctx, "report.export")
	defer func() { done(err) }()
	return s.GuardFor(u).Export(ctx, reportType, data)
}

func (s *Service) instrument(ctx context.Context, useCase string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, spanReport,
		attribute.String("use_case", useCase),
	)
	start := time.Now()
	return ctx, func(err error) {
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
	}
}
