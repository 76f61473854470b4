package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

type fakeFetcher struct {
	sub   *ProviderSubscription
	err   error
	calls int
}

func (f *fakeFetcher) FetchSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

type fakePlanRepo struct {
	byPrice map[string]*models.Plan
}

func (r *fakePlanRepo) GetByID(id uint) (*models.Plan, error) {
	for _, p := range r.byPrice {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePlanRepo) GetByName(name string) (*models.Plan, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePlanRepo) GetByStripePriceID(priceID string) (*models.Plan, error) {
	if p, ok := r.byPrice[priceID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePlanRepo) ListActive() ([]models.Plan, error) { return nil, nil }
func (r *fakePlanRepo) Save(plan *models.Plan) error       { return nil }

type fakeSubRepo struct {
	setPlanCalls []setPlanCall
	setPlanErr   error
}

type setPlanCall struct {
	subscriptionID uint
	planID         *uint
	isActive       bool
}

func (r *fakeSubRepo) GetByUserID(userID uint) (*models.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubRepo) GetByUserIDWithPlan(userID uint) (*models.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubRepo) GetByStripeSubscriptionID(subID string) (*models.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubRepo) Save(sub *models.Subscription) error { return nil }

func (r *fakeSubRepo) SetPlan(subscriptionID uint, planID *uint, isActive bool) error {
	r.setPlanCalls = append(r.setPlanCalls, setPlanCall{subscriptionID, planID, isActive})
	return r.setPlanErr
}

func TestReconcile_LinksMappedPlan(t *testing.T) {
	plans := &fakePlanRepo{byPrice: map[string]*models.Plan{
		"price_pro": {ID: 7, Name: "Profissional", StripePriceID: "price_pro"},
	}}
	subs := &fakeSubRepo{}
	fetcher := &fakeFetcher{sub: &ProviderSubscription{
		ID:      "sub_1",
		Status:  "active",
		PriceID: "price_pro",
	}}

	r := NewReconciler(fetcher, plans, subs)
	sub := &models.Subscription{ID: 3, StripeSubscriptionID: "sub_1"}

	if err := r.Reconcile(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(subs.setPlanCalls) != 1 {
		t.Fatalf("expected exactly one SetPlan call, got %d", len(subs.setPlanCalls))
	}
	call := subs.setPlanCalls[0]
	if call.subscriptionID != 3 {
		t.Fatalf("expected subscription 3, got %d", call.subscriptionID)
	}
	if call.planID == nil || *call.planID != 7 {
		t.Fatalf("expected plan 7, got %v", call.planID)
	}
	if !call.isActive {
		t.Fatalf("active provider status must set is_active")
	}
}

func TestReconcile_UnmappedPriceKeepsPlanUnlinked(t *testing.T) {
	plans := &fakePlanRepo{byPrice: map[string]*models.Plan{}}
	subs := &fakeSubRepo{}
	fetcher := &fakeFetcher{sub: &ProviderSubscription{
		ID:      "sub_1",
		Status:  "active",
		PriceID: "price_unknown",
	}}

	r := NewReconciler(fetcher, plans, subs)

	if err := r.Reconcile(context.Background(), &models.Subscription{ID: 3, StripeSubscriptionID: "sub_1"}); err != nil {
		t.Fatalf("unmapped price must not fail reconciliation: %v", err)
	}

	call := subs.setPlanCalls[0]
	if call.planID != nil {
		t.Fatalf("unmapped price must leave plan nil, got %v", *call.planID)
	}
	if !call.isActive {
		t.Fatalf("entitling provider status must still be recorded")
	}
}

func TestReconcile_InactiveStatus(t *testing.T) {
	plans := &fakePlanRepo{byPrice: map[string]*models.Plan{
		"price_pro": {ID: 7, StripePriceID: "price_pro"},
	}}
	subs := &fakeSubRepo{}
	fetcher := &fakeFetcher{sub: &ProviderSubscription{
		ID:      "sub_1",
		Status:  "canceled",
		PriceID: "price_pro",
	}}

	r := NewReconciler(fetcher, plans, subs)

	if err := r.Reconcile(context.Background(), &models.Subscription{ID: 3, StripeSubscriptionID: "sub_1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := subs.setPlanCalls[0]
	if call.planID == nil || *call.planID != 7 {
		t.Fatalf("canceled subscription still links its plan, got %v", call.planID)
	}
	if call.isActive {
		t.Fatalf("canceled status must not set is_active")
	}
}

func TestReconcile_FetchFailure(t *testing.T) {
	subs := &fakeSubRepo{}
	fetcher := &fakeFetcher{err: errors.New("stripe: network")}

	r := NewReconciler(fetcher, &fakePlanRepo{}, subs)

	if err := r.Reconcile(context.Background(), &models.Subscription{ID: 3, StripeSubscriptionID: "sub_1"}); err == nil {
		t.Fatalf("expected fetch error to surface")
	}
	if len(subs.setPlanCalls) != 0 {
		t.Fatalf("nothing may be written when the fetch fails")
	}
}

func TestReconcile_NoBillingReference(t *testing.T) {
	r := NewReconciler(&fakeFetcher{}, &fakePlanRepo{}, &fakeSubRepo{})

	if err := r.Reconcile(context.Background(), &models.Subscription{ID: 3}); err == nil {
		t.Fatalf("expected error for subscription without billing reference")
	}
	if err := r.Reconcile(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil subscription")
	}
}
