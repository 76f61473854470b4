package models

import "time"

// Purchase statuses. A row is created only after a webhook passed
// verification; status is the only field that may change afterwards.
const (
	PurchaseStatusApproved = "approved"
	PurchaseStatusRefunded = "refunded"
	PurchaseStatusDisputed = "disputed"
)

// Purchase is an externally verified transaction. The unique
// (provider, transaction_id) index makes webhook redelivery idempotent.
type Purchase struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	OrderBumpID   uint      `gorm:"not null;index" json:"order_bump_id"`
	Provider      string    `gorm:"type:varchar(20);not null;index:ux_purchases_provider_txn,unique,priority:1" json:"provider"`
	TransactionID string    `gorm:"type:varchar(191);not null;index:ux_purchases_provider_txn,unique,priority:2" json:"transaction_id"`
	BuyerEmail    string    `gorm:"type:varchar(200);not null;index" json:"buyer_email"`
	BuyerName     string    `gorm:"type:varchar(150);default:''" json:"buyer_name"`
	PriceCents    int64     `gorm:"not null;default:0" json:"price_cents"`
	Status        string    `gorm:"type:varchar(32);not null;default:'approved'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
