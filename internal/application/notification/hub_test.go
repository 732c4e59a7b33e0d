package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domnotify "github.com/techsolutions/salescore/internal/domain/notification"
	"github.com/techsolutions/salescore/internal/domain/product"
)

type recordingSubscriber struct {
	role     string
	notified []string
	fail     bool
}

func (s *recordingSubscriber) Notify(_ context.Context, p *product.Product) error {
	if s.fail {
		return errors.New("sink unavailable")
	}
	s.notified = append(s.notified, p.ID)
	return nil
}

func (s *recordingSubscriber) Role() string { return s.role }

func lowStockProduct(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.New("P-1", "Widget", 5, 10)
	require.NoError(t, err)
	return p
}

func TestRegister_DuplicateIsNoOp(t *testing.T) {
	hub := NewHub(nil)
	sub := &recordingSubscriber{role: domnotify.RoleManager}

	hub.Register(sub)
	hub.Register(sub)
	assert.Len(t, hub.Subscribers(), 1)
}

func TestUnregister_AbsentIsNoOp(t *testing.T) {
	hub := NewHub(nil)
	sub := &recordingSubscriber{role: domnotify.RoleManager}

	hub.Unregister(sub)
	assert.Empty(t, hub.Subscribers())

	hub.Register(sub)
	hub.Unregister(sub)
	assert.Empty(t, hub.Subscribers())
}

func TestEvaluate_AllowListOnly(t *testing.T) {
	hub := NewHub(nil)
	manager := &recordingSubscriber{role: domnotify.RoleManager}
	purchasing := &recordingSubscriber{role: domnotify.RolePurchasing}
	sales := &recordingSubscriber{role: "SALES"}
	hub.Register(manager)
	hub.Register(purchasing)
	hub.Register(sales)

	hub.Evaluate(context.Background(), lowStockProduct(t))

	assert.Equal(t, []string{"P-1"}, manager.notified)
	assert.Equal(t, []string{"P-1"}, purchasing.notified)
	assert.Empty(t, sales.notified, "SALES is not on the allow-list")
}

func TestEvaluate_AboveMinimum_NotifiesNobody(t *testing.T) {
	hub := NewHub(nil)
	manager := &recordingSubscriber{role: domnotify.RoleManager}
	hub.Register(manager)

	p, err := product.New("P-1", "Widget", 20, 10)
	require.NoError(t, err)

	hub.Evaluate(context.Background(), p)
	assert.Empty(t, manager.notified)
}

func TestEvaluate_AtMinimum_Notifies(t *testing.T) {
	hub := NewHub(nil)
	manager := &recordingSubscriber{role: domnotify.RoleManager}
	hub.Register(manager)

	p, err := product.New("P-1", "Widget", 10, 10)
	require.NoError(t, err)

	hub.Evaluate(context.Background(), p)
	assert.Equal(t, []string{"P-1"}, manager.notified)
}

func TestEvaluate_NoDebounce(t *testing.T) {
	hub := NewHub(nil)
	manager := &recordingSubscriber{role: domnotify.RoleManager}
	hub.Register(manager)

	p := lowStockProduct(t)
	hub.Evaluate(context.Background(), p)
	hub.Evaluate(context.Background(), p)
	hub.Evaluate(context.Background(), p)

	assert.Len(t, manager.notified, 3, "a product staying below minimum is re-notified on every evaluation")
}

func TestEvaluate_SubscriberErrorDoesNotAbortFanout(t *testing.T) {
	hub := NewHub(nil)
	broken := &recordingSubscriber{role: domnotify.RoleManager, fail: true}
	healthy := &recordingSubscriber{role: domnotify.RolePurchasing}
	hub.Register(broken)
	hub.Register(healthy)

	hub.Evaluate(context.Background(), lowStockProduct(t))
	assert.Equal(t, []string{"P-1"}, healthy.notified)
}

func TestEntitled(t *testing.T) {
	assert.True(t, domnotify.Entitled(domnotify.RoleManager))
	assert.True(t, domnotify.Entitled(domnotify.RolePurchasing))
	assert.False(t, domnotify.Entitled("SALES"))
	assert.False(t, domnotify.Entitled("manager"), "role comparison is exact")
	assert.False(t, domnotify.Entitled(""))
}
