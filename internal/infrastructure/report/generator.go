package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	domreport "github.com/techsolutions/salescore/internal/domain/report"
	"github.com/techsolutions/salescore/internal/observability"
)

const componentGenerator = "report_generator"

// Generator is the real report subject. Figures are deterministic
// simulations; real aggregation queries and PDF rendering are out of scope.
type Generator struct {
	log observability.Logger
	now func() time.Time
}

func NewGenerator(logger observability.Logger) *Generator {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Generator{
		log: logger.With(observability.F("component", componentGenerator)),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (g *Generator) Sales(ctx context.Context, from, to time.Time) (*domreport.SalesReport, error) {
	_ = ctx
	g.log.Info("sales_report_generated",
		observability.F("from", from),
		observability.F("to", to),
	)
	return &domreport.SalesReport{
		Title:            "Reporte de Ventas",
		From:             from,
		To:               to,
		TotalSales:       decimal.RequireFromString("125450.75"),
		TransactionCount: 342,
		AverageTicket:    decimal.RequireFromString("366.81"),
		GeneratedAt:      g.now(),
	}, nil
}

func (g *Generator) IncomeExpense(ctx context.Context, month, year int) (*domreport.IncomeExpenseReport, error) {
	_ = ctx
	g.log.Info("income_expense_report_generated",
		observability.F("month", month),
		observability.F("year", year),
	)
	return &domreport.IncomeExpenseReport{
		Title:        "Reporte de Ingresos y Gastos",
		Month:        month,
		Year:         year,
		TotalIncome:  decimal.RequireFromString("180500.00"),
		TotalExpense: decimal.RequireFromString("95300.50"),
		NetProfit:    decimal.RequireFromString("85199.50"),
		ProfitMargin: "47.2%",
		GeneratedAt:  g.now(),
	}, nil
}

func (g *Generator) Profitability(ctx context.Context, from, to time.Time) (*domreport.ProfitabilityReport, error) {
	_ = ctx
	g.log.Info("profitability_report_generated",
		observability.F("from", from),
		observability.F("to", to),
	)
	return &domreport.ProfitabilityReport{
		Title:          "Reporte de Utilidades",
		From:           from,
		To:             to,
		GrossSales:     decimal.RequireFromString("450300.00"),
		CostOfSales:    decimal.RequireFromString("280150.00"),
		GrossProfit:    decimal.RequireFromString("170150.00"),
		OperatingCosts: decimal.RequireFromString("85000.00"),
		NetProfit:      decimal.RequireFromString("85150.00"),
		ROI:            "18.9%",
		GeneratedAt:    g.now(),
	}, nil
}

// Export pretends to render the report to a file and returns the path it
// would have been written to.
func (g *Generator) Export(ctx context.Context, reportType string, data map[string]any) (*domreport.ExportResult, error) {
	_ = ctx
	path := fmt.Sprintf("/reportes/%s_%d.pdf", reportType, g.now().UnixMilli())
	g.log.Info("report_exported",
		observability.F("report_type", reportType),
		observability.F("fields", len(data)),
		observability.F("path", path),
	)
	return &domreport.ExportResult{Path: path}, nil
}

var _ domreport.Generator = (*Generator)(nil)
