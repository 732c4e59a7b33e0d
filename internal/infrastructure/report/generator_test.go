package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixedGenerator(at time.Time) *Generator {
	g := NewGenerator(nil)
	g.now = func() time.Time { return at }
	return g
}

func TestGenerator_Sales(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	g := newFixedGenerator(at)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	rep, err := g.Sales(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, "Reporte de Ventas", rep.Title)
	assert.Equal(t, from, rep.From)
	assert.Equal(t, to, rep.To)
	assert.True(t, decimal.RequireFromString("125450.75").Equal(rep.TotalSales))
	assert.Equal(t, 342, rep.TransactionCount)
	assert.Equal(t, at, rep.GeneratedAt)
}

func TestGenerator_IncomeExpense(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	g := newFixedGenerator(at)

	rep, err := g.IncomeExpense(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, 5, rep.Month)
	assert.Equal(t, 2024, rep.Year)
	assert.True(t, decimal.RequireFromString("85199.50").Equal(rep.NetProfit))
	assert.Equal(t, "47.2%", rep.ProfitMargin)
	assert.Equal(t, at, rep.GeneratedAt)
}

func TestGenerator_ProfitabilityStampsGeneratedAt(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	g := newFixedGenerator(at)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	rep, err := g.Profitability(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("85150.00").Equal(rep.NetProfit))
	assert.Equal(t, "18.9%", rep.ROI)
	assert.Equal(t, at, rep.GeneratedAt)
}

func TestGenerator_ExportPath(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	g := newFixedGenerator(at)

	res, err := g.Export(context.Background(), "ventas", map[string]any{"mes": 5})
	require.NoError(t, err)
	assert.Equal(t, "/reportes/ventas_1717236000000.pdf", res.Path)
}
