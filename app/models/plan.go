package models

import "time"

// PlanNameFree is the reserved catalog name for the no-entitlement tier.
// Entitlement checks compare plan names against this literal; renaming the
// free plan in the catalog changes entitlement behavior.
const PlanNameFree = "Gratuito"

// Plan is a catalog entry users can subscribe to. StripePriceID links the
// plan to its price object in the external billing system.
type Plan struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name" validate:"required,min=1,max=100"`
	Slug          string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug" validate:"required,min=1,max=100"`
	PriceCents    int64     `gorm:"not null;default:0" json:"price_cents"`
	StripePriceID string    `gorm:"type:varchar(191);default:'';index" json:"stripe_price_id"`
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsFreeTier reports whether this plan is the reserved no-entitlement tier.
func (p *Plan) IsFreeTier() bool {
	return p.Name == PlanNameFree
}
