package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Custom domain lifecycle. Only verified and active domains ever take part
// in request resolution.
const (
	DomainStatusPending   = "pending"
	DomainStatusVerifying = "verifying"
	DomainStatusVerified  = "verified"
	DomainStatusActive    = "active"
	DomainStatusFailed    = "failed"
)

// CustomDomain is a user-owned hostname pointed at the platform. AppID is
// the default app for the domain; per-path routing lives in DomainMapping.
type CustomDomain struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Domain      string    `gorm:"type:varchar(253);not null;uniqueIndex" json:"domain" validate:"required,fqdn"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AppID       *uint     `gorm:"index" json:"app_id,omitempty"`
	VerifyToken string    `gorm:"type:varchar(64);default:''" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsRoutable reports whether the domain participates in tenant resolution.
func (d *CustomDomain) IsRoutable() bool {
	return d.Status == DomainStatusVerified || d.Status == DomainStatusActive
}

// GenerateVerifyToken sets a fresh random token for DNS TXT verification.
func (d *CustomDomain) GenerateVerifyToken() error {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	d.VerifyToken = "vitrine-verify-" + hex.EncodeToString(b)
	return nil
}

// DomainMapping routes one path under a verified custom domain to a tenant
// app. (custom_domain_id, path) is unique; "" and "/" both mean the root.
type DomainMapping struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CustomDomainID uint      `gorm:"not null;index:ux_domain_mappings_domain_path,unique,priority:1" json:"custom_domain_id"`
	AppID          uint      `gorm:"not null;index" json:"app_id"`
	Path           string    `gorm:"type:varchar(255);not null;default:'';index:ux_domain_mappings_domain_path,unique,priority:2" json:"path"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
