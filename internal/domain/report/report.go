package report

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrAccessDenied is the single authorization-failure kind surfaced by the
// report access guard. The wrapped message distinguishes the cause
// (unauthenticated, inactive user, insufficient role).
var ErrAccessDenied = errors.New("report: access denied")

// Audit is appended to every report result by the access guard so the
// consumer can tell who generated it and under which roles.
type Audit struct {
	GeneratedBy string   `json:"generatedBy"`
	RolesUsed   []string `json:"rolesUsed"`
}

type SalesReport struct {
	Title            string          `json:"titulo"`
	From             time.Time       `json:"fechaInicio"`
	To               time.Time       `json:"fechaFin"`
	TotalSales       decimal.Decimal `json:"totalVentas"`
	TransactionCount int             `json:"cantidadTransacciones"`
	AverageTicket    decimal.Decimal `json:"ticketPromedio"`
	GeneratedAt      time.Time       `json:"generadoEn"`
	Audit
}

type IncomeExpenseReport struct {
	Title        string          `json:"titulo"`
	Month        int             `json:"mes"`
	Year         int             `json:"anio"`
	TotalIncome  decimal.Decimal `json:"totalIngresos"`
	TotalExpense decimal.Decimal `json:"totalGastos"`
	NetProfit    decimal.Decimal `json:"utilidadNeta"`
	ProfitMargin string          `json:"margenUtilidad"`
	GeneratedAt  time.Time       `json:"generadoEn"`
	Audit
}

type ProfitabilityReport struct {
	Title          string          `json:"titulo"`
	From           time.Time       `json:"fechaInicio"`
	To             time.Time       `json:"fechaFin"`
	GrossSales     decimal.Decimal `json:"ventasBrutas"`
	CostOfSales    decimal.Decimal `json:"costoVentas"`
	GrossProfit    decimal.Decimal `json:"utilidadBruta"`
	OperatingCosts decimal.Decimal `json:"gastosOperativos"`
	NetProfit      decimal.Decimal `json:"utilidadNeta"`
	ROI            string          `json:"roi"`
	GeneratedAt    time.Time       `json:"generadoEn"`
	Audit
}

type ExportResult struct {
	Path string `json:"ruta"`
	Audit
}

// Generator is the underlying report capability. Implementations carry no
// access control; the guard in the application layer owns that.
type Generator interface {
	Sales(ctx context.Context, from, to time.Time) (*SalesReport, error)
	IncomeExpense(ctx context.Context, month, year int) (*IncomeExpenseReport, error)
	Profitability(ctx context.Context, from, to time.Time) (*ProfitabilityReport, error)
	Export(ctx context.Context, reportType string, data map[string]any) (*ExportResult, error)
}
