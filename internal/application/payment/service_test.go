package payment

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dompay "github.com/techsolutions/salescore/internal/domain/payment"
	"github.com/techsolutions/salescore/internal/infrastructure/id"
)

// stubGateway records calls so tests can assert the registry never delegates
// a process call to a disabled gateway.
type stubGateway struct {
	mu        sync.Mutex
	name      string
	enabled   bool
	processed int
	verified  int
}

func newStubGateway(name string) *stubGateway {
	return &stubGateway{name: name, enabled: true}
}

func (g *stubGateway) Process(_ context.Context, _ decimal.Decimal, _ string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.processed++
	return true, nil
}

func (g *stubGateway) Verify(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verified++
	return "COMPLETADO - " + g.name, nil
}

func (g *stubGateway) Name() string { return g.name }

func (g *stubGateway) Enabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled
}

func (g *stubGateway) SetEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = enabled
}

func newTestService(t *testing.T) (*Service, map[string]*stubGateway) {
	t.Helper()
	svc := NewService(id.NewUUIDGenerator(), nil)
	gws := map[string]*stubGateway{
		"alpha": newStubGateway("Alpha"),
		"beta":  newStubGateway("Beta"),
		"gamma": newStubGateway("Gamma"),
	}
	svc.Register("alpha", gws["alpha"])
	svc.Register("beta", gws["beta"])
	svc.Register("gamma", gws["gamma"])
	return svc, gws
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProcess_UnknownGateway(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Process(context.Background(), "nope", amount("10.00"), "R1")
	assert.ErrorIs(t, err, dompay.ErrUnknownGateway)

	_, err = svc.Verify(context.Background(), "nope", "R1")
	assert.ErrorIs(t, err, dompay.ErrUnknownGateway)

	err = svc.SetEnabled(context.Background(), "nope", false)
	assert.ErrorIs(t, err, dompay.ErrUnknownGateway)
}

func TestProcess_UnknownGatewayWinsOverInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	// lookup happens first, so a bad amount or reference on an
	// unregistered id still reports the unknown gateway
	_, err := svc.Process(context.Background(), "nope", amount("0"), "R1")
	assert.ErrorIs(t, err, dompay.ErrUnknownGateway)

	_, err = svc.Process(context.Background(), "nope", amount("10.00"), "")
	assert.ErrorIs(t, err, dompay.ErrUnknownGateway)
}

func TestProcess_CaseInsensitiveLookup(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Process(context.Background(), "ALPHA", amount("10.00"), "R1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "alpha", result.GatewayID)
}

func TestProcess_EchoesRequestFields(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Process(context.Background(), "beta", amount("150.50"), "ORD-2024-001")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "beta", result.GatewayID)
	assert.True(t, amount("150.50").Equal(result.Amount))
	assert.Equal(t, "ORD-2024-001", result.Reference)
	assert.True(t, strings.HasPrefix(result.TransactionID, "TXN-BETA-"))
}

func TestProcess_InvalidInput(t *testing.T) {
	svc, gws := newTestService(t)

	_, err := svc.Process(context.Background(), "alpha", amount("0"), "R1")
	assert.ErrorIs(t, err, dompay.ErrInvalidAmount)

	_, err = svc.Process(context.Background(), "alpha", amount("-5.00"), "R1")
	assert.ErrorIs(t, err, dompay.ErrInvalidAmount)

	_, err = svc.Process(context.Background(), "alpha", amount("5.00"), "")
	assert.ErrorIs(t, err, dompay.ErrInvalidReference)

	assert.Zero(t, gws["alpha"].processed, "invalid requests must not reach the adapter")
}

func TestProcess_DisabledGatewayRefusedBeforeDelegation(t *testing.T) {
	svc, gws := newTestService(t)

	require.NoError(t, svc.SetEnabled(context.Background(), "beta", false))

	_, err := svc.Process(context.Background(), "beta", amount("10.00"), "R1")
	assert.ErrorIs(t, err, dompay.ErrGatewayDisabled)
	assert.Zero(t, gws["beta"].processed, "registry must refuse before delegating")
}

func TestVerify_BypassesEnabledGate(t *testing.T) {
	svc, gws := newTestService(t)

	require.NoError(t, svc.SetEnabled(context.Background(), "beta", false))

	status, err := svc.Verify(context.Background(), "beta", "R1")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETADO - Beta", status)
	assert.Equal(t, 1, gws["beta"].verified)
}

func TestSetEnabled_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Process(ctx, "alpha", amount("10.00"), "R1")
	require.NoError(t, err)

	require.NoError(t, svc.SetEnabled(ctx, "alpha", false))
	_, err = svc.Process(ctx, "alpha", amount("10.00"), "R1")
	assert.ErrorIs(t, err, dompay.ErrGatewayDisabled)

	require.NoError(t, svc.SetEnabled(ctx, "alpha", true))
	result, err := svc.Process(ctx, "alpha", amount("10.00"), "R1")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestSetEnabled_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetEnabled(ctx, "alpha", true))
	require.NoError(t, svc.SetEnabled(ctx, "alpha", true))
	assert.True(t, svc.Status()["alpha"])
}

func TestStatus_Snapshot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetEnabled(ctx, "beta", false))

	_, err := svc.Process(ctx, "beta", amount("10.00"), "R1")
	assert.ErrorIs(t, err, dompay.ErrGatewayDisabled)

	result, err := svc.Process(ctx, "alpha", amount("10.00"), "R1")
	require.NoError(t, err)
	assert.True(t, result.Success)

	assert.Equal(t, map[string]bool{
		"alpha": true,
		"beta":  false,
		"gamma": true,
	}, svc.Status())
}

func TestList_RegistrationOrder(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.SetEnabled(context.Background(), "beta", false))

	list := svc.List()
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].ID)
	assert.Equal(t, "beta", list[1].ID)
	assert.Equal(t, "gamma", list[2].ID)
	assert.Equal(t, "Alpha", list[0].DisplayName)
	assert.True(t, list[0].Enabled)
	assert.False(t, list[1].Enabled)

	// Order is stable across calls.
	assert.Equal(t, list, svc.List())
}
