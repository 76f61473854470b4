package models

import "time"

// AccessCode is a single-use unlock token binding a buyer to one order
// bump's content. IsUsed goes false to true exactly once, with UsedAt set
// in the same statement; the conditional update lives in the repository.
// Codes are never deleted and carry no expiry.
type AccessCode struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Code        string     `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	OrderBumpID uint       `gorm:"not null;index" json:"order_bump_id"`
	BuyerEmail  string     `gorm:"type:varchar(200);not null;index" json:"buyer_email"`
	PurchaseID  *uint      `gorm:"index" json:"purchase_id,omitempty"`
	IsUsed      bool       `gorm:"default:false;index" json:"is_used"`
	UsedAt      *time.Time `gorm:"type:timestamp;default:null" json:"used_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
