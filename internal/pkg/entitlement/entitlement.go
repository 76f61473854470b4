// Package entitlement answers "does this user currently have paid access".
// It reconciles the locally cached subscription record against the external
// billing provider when the two disagree, and fails closed: data-access
// problems never grant access.
package entitlement

import (
	"context"
	"errors"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
	"gorm.io/gorm"
)

// Result is the resolved entitlement state for one user. The zero value is
// the no-entitlement state.
type Result struct {
	HasPlan       bool   `json:"has_plan"`
	HasActivePlan bool   `json:"has_active_plan"`
	PlanName      string `json:"plan_name"`
}

// Store is the data access the resolver depends on.
type Store interface {
	GetSubscriptionWithPlan(userID uint) (*models.Subscription, error)
	GetPlanByID(id uint) (*models.Plan, error)
}

// Reconciler refreshes a stale local subscription against the billing
// system of record.
type Reconciler interface {
	Reconcile(ctx context.Context, sub *models.Subscription) error
}

// repoStore adapts the repository layer to the Store interface.
type repoStore struct {
	subs  repository.SubscriptionRepository
	plans repository.PlanRepository
}

// NewStore builds a Store backed by the repository layer.
func NewStore(subs repository.SubscriptionRepository, plans repository.PlanRepository) Store {
	return &repoStore{subs: subs, plans: plans}
}

func (s *repoStore) GetSubscriptionWithPlan(userID uint) (*models.Subscription, error) {
	return s.subs.GetByUserIDWithPlan(userID)
}

func (s *repoStore) GetPlanByID(id uint) (*models.Plan, error) {
	return s.plans.GetByID(id)
}

// isNotFound treats a missing subscription row as the valid empty state,
// not a data-access failure.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
