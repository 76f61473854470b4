package models

import "time"

// Subscription is the locally cached billing state for one user. PlanID is
// nullable: a row without a plan means no entitlement, even when Stripe
// identifiers are present. BypassReconciliation opts a user out of the
// resolver's self-heal path (manually granted access).
type Subscription struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	PlanID               *uint     `gorm:"index" json:"plan_id,omitempty"`
	Plan                 *Plan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	IsActive             bool      `gorm:"default:false;index" json:"is_active"`
	StripeCustomerID     string    `gorm:"type:varchar(191);default:'';index" json:"stripe_customer_id"`
	StripeSubscriptionID string    `gorm:"type:varchar(191);default:'';index" json:"stripe_subscription_id"`
	BypassReconciliation bool      `gorm:"default:false" json:"bypass_reconciliation"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasPlan reports whether a plan is linked at all.
func (s *Subscription) HasPlan() bool {
	return s.PlanID != nil
}

// NeedsReconciliation reports whether the self-heal path applies: no local
// plan, a billing subscription to reconcile against, and no manual override.
func (s *Subscription) NeedsReconciliation() bool {
	return s.PlanID == nil && s.StripeSubscriptionID != "" && !s.BypassReconciliation
}
