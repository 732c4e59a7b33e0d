package report

import (
	"context"
	"fmt"
	"time"

	domreport "github.com/techsolutions/salescore/internal/domain/report"
	"github.com/techsolutions/salescore/internal/domain/user"
	"github.com/techsolutions/salescore/internal/observability"
)

// AuthorizedRoles are the only roles permitted to run financial reports.
var AuthorizedRoles = []string{user.RoleManager, user.RoleAccountant}

// Guard wraps the report generator with an authorization check bound to one
// requesting user. A guard is built per request and discarded after the call
// completes; authorization decisions are never cached across operations.
type Guard struct {
	user    *user.User
	real    domreport.Generator
	log     observability.Logger
	denials observability.Counter
}

func NewGuard(u *user.User, real domreport.Generator, tel observability.Observability) *Guard {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Guard{
		user:    u,
		real:    real,
		log:     tel.Logger().With(observability.F("component", "report_guard")),
		denials: tel.Metrics().Counter(observability.MReportDenials),
	}
}

// authorize runs the full validation sequence. Every failure wraps
// report.ErrAccessDenied; the message carries the cause.
func (g *Guard) authorize(ctx context.Context, operation string) error {
	_ = ctx
	if g.user == nil {
		g.deny(operation, "unauthenticated")
		return fmt.Errorf("%w: user not authenticated", domreport.ErrAccessDenied)
	}
	if !g.user.Active {
		g.deny(operation, "inactive_user")
		return fmt.Errorf("%w: user %q is inactive", domreport.ErrAccessDenied, g.user.Username)
	}
	if !g.user.HasAnyRole(AuthorizedRoles...) {
		g.deny(operation, "insufficient_role")
		return fmt.Errorf("%w: requires %s or %s role, user %q has roles %v",
			domreport.ErrAccessDenied, user.RoleManager, user.RoleAccountant,
			g.user.Username, g.user.Roles)
	}

	// Audit trail for granted access.
	g.log.Info("report_access_granted",
		observability.F("operation", operation),
		observability.F("username", g.user.Username),
		observability.F("roles", g.user.Roles),
	)
	return nil
}

func (g *Guard) deny(operation, reason string) {
	fields := []observability.Field{
		observability.F("operation", operation),
		observability.F("reason", reason),
	}
	if g.user != nil {
		fields = append(fields,
			observability.F("username", g.user.Username),
			observability.F("roles", g.user.Roles),
		)
	}
	g.log.Warn("report_access_denied", fields...)
	g.denials.Add(1, observability.L("reason", reason))
}

func (g *Guard) audit() domreport.Audit {
	return domreport.Audit{
		GeneratedBy: g.user.Username,
		RolesUsed:   append([]string(nil), g.user.Roles...),
	}
}

func (g *Guard) Sales(ctx context.Context, from, to time.Time) (*domreport.SalesReport, error) {
	if err := g.authorize(ctx, "sales"); err != nil {
		return nil, err
	}
	r, err := g.real.Sales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	r.Audit = g.audit()
	return r, nil
}

func (g *Guard) IncomeExpense(ctx context.Context, month, year int) (*domreport.IncomeExpenseReport, error) {
	if err := g.authorize(ctx, "income_expense"); err != nil {
		return nil, err
	}
	r, err := g.real.IncomeExpense(ctx, month, year)
	if err != nil {
		return nil, err
	}
	r.Audit = g.audit()
	return r, nil
}

func (g *Guard) Profitability(ctx context.Context, from, to time.Time) (*domreport.ProfitabilityReport, error) {
	if err := g.authorize(ctx, "profitability"); err != nil {
		return nil, err
	}
	r, err := g.real.Profitability(ctx, from, to)
	if err != nil {
		return nil, err
	}
	r.Audit = g.audit()
	return r, nil
}

func (g *Guard) Export(ctx context.Context, reportType string, data map[string]any) (*domreport.ExportResult, error) {
	if err := g.authorize(ctx, "export"); err != nil {
		return nil, err
	}
	r, err := g.real.Export(ctx, reportType, data)
	if err != nil {
		return nil, err
	}
	r.Audit = g.audit()
	return r, nil
}

var _ domreport.Generator = (*Guard)(nil)
