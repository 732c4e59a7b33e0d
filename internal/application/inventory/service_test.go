package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appnotify "github.com/techsolutions/salescore/internal/application/notification"
	domnotify "github.com/techsolutions/salescore/internal/domain/notification"
	domain "github.com/techsolutions/salescore/internal/domain/product"
	"github.com/techsolutions/salescore/internal/infrastructure/memory"
)

type recordingSubscriber struct {
	role     string
	notified int
}

func (s *recordingSubscriber) Notify(context.Context, *domain.Product) error {
	s.notified++
	return nil
}

func (s *recordingSubscriber) Role() string { return s.role }

func newTestService(t *testing.T, stock, minimum int) (*Service, *recordingSubscriber) {
	t.Helper()

	repo := memory.NewProductRepository()
	p, err := domain.New("P-1", "Widget", stock, minimum)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))

	hub := appnotify.NewHub(nil)
	sub := &recordingSubscriber{role: domnotify.RoleManager}
	hub.Register(sub)

	return NewService(repo, hub, nil), sub
}

func TestReduce_ReturnsPostMutationStatus(t *testing.T) {
	svc, _ := newTestService(t, 20, 10)

	status, err := svc.Reduce(context.Background(), "P-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 15, status.CurrentStock)
	assert.Equal(t, 10, status.MinimumStock)
	assert.False(t, status.NeedsReplenishment)
}

func TestReduce_BelowMinimum_Notifies(t *testing.T) {
	svc, sub := newTestService(t, 12, 10)

	status, err := svc.Reduce(context.Background(), "P-1", 5)
	require.NoError(t, err)
	assert.True(t, status.NeedsReplenishment)
	assert.Equal(t, 1, sub.notified)
}

func TestReduce_EveryMutationReEvaluates(t *testing.T) {
	svc, sub := newTestService(t, 8, 10)
	ctx := context.Background()

	_, err := svc.Reduce(ctx, "P-1", 1)
	require.NoError(t, err)
	_, err = svc.Reduce(ctx, "P-1", 1)
	require.NoError(t, err)

	assert.Equal(t, 2, sub.notified, "no transition debouncing")
}

func TestIncrease_StillBelowMinimum_Notifies(t *testing.T) {
	svc, sub := newTestService(t, 2, 10)

	status, err := svc.Increase(context.Background(), "P-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, status.CurrentStock)
	assert.True(t, status.NeedsReplenishment)
	assert.Equal(t, 1, sub.notified)
}

func TestIncrease_AboveMinimum_NoNotice(t *testing.T) {
	svc, sub := newTestService(t, 8, 10)

	status, err := svc.Increase(context.Background(), "P-1", 10)
	require.NoError(t, err)
	assert.False(t, status.NeedsReplenishment)
	assert.Zero(t, sub.notified)
}

func TestSetMinimumThreshold_RaisingTriggersNotice(t *testing.T) {
	svc, sub := newTestService(t, 15, 10)

	status, err := svc.SetMinimumThreshold(context.Background(), "P-1", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, status.MinimumStock)
	assert.True(t, status.NeedsReplenishment)
	assert.Equal(t, 1, sub.notified)
}

func TestMutation_Errors(t *testing.T) {
	svc, sub := newTestService(t, 10, 5)
	ctx := context.Background()

	_, err := svc.Reduce(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Reduce(ctx, "P-1", 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.Reduce(ctx, "P-1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.SetMinimumThreshold(ctx, "P-1", -1)
	assert.ErrorIs(t, err, domain.ErrNegativeThreshold)

	assert.Zero(t, sub.notified, "failed mutations must not notify")

	p, err := svc.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock, "failed mutations must not persist")
}
