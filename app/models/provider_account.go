package models

import "time"

// ProviderAccount links one external OAuth identity (Google, Facebook) to a
// platform user. A user may hold one row per provider; the provider-side
// email and name are kept for account-linking audits.
type ProviderAccount struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index" json:"user_id"`
	Provider       string     `gorm:"index:provider_uid,unique;type:varchar(50)" json:"provider"`
	ProviderUserID string     `gorm:"index:provider_uid,unique;type:varchar(191)" json:"provider_user_id"`
	ProviderEmail  string     `gorm:"type:varchar(255);default:''" json:"provider_email"`
	ProviderName   string     `gorm:"type:varchar(255);default:''" json:"provider_name"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TokenExpired reports whether the stored access token is past its expiry.
// Accounts without an expiry never report expired.
func (pa *ProviderAccount) TokenExpired() bool {
	return pa.ExpiresAt != nil && pa.ExpiresAt.Before(time.Now())
}
