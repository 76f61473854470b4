package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// TenantApp is a published micro-app. The slug is globally unique and is the
// fallback resolution target when no custom-domain mapping matches a request.
type TenantApp struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Slug        string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug" validate:"required,min=1,max=100"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	ViewCount   int64          `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *TenantApp) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
