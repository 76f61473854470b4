package repository

import (
	"strings"

	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

// tenantAppRepository implements the TenantAppRepository interface
type tenantAppRepository struct {
	db *gorm.DB
}

// NewTenantAppRepository creates a new tenant app repository instance
func NewTenantAppRepository(db *gorm.DB) TenantAppRepository {
	return &tenantAppRepository{db: db}
}

// Create creates a new tenant app
func (r *tenantAppRepository) Create(app *models.TenantApp) error {
	return r.db.Create(app).Error
}

// GetByID retrieves a tenant app by ID
func (r *tenantAppRepository) GetByID(id uint) (*models.TenantApp, error) {
	var app models.TenantApp
	err := r.db.First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetBySlug retrieves a published tenant app by its unique slug
func (r *tenantAppRepository) GetBySlug(slug string) (*models.TenantApp, error) {
	var app models.TenantApp
	err := r.db.Where("slug = ? AND is_published = ?", strings.ToLower(strings.TrimSpace(slug)), true).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByUserID retrieves all tenant apps owned by a user
func (r *tenantAppRepository) GetByUserID(userID uint) ([]models.TenantApp, error) {
	var apps []models.TenantApp
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error
	return apps, err
}

// Update updates an existing tenant app
func (r *tenantAppRepository) Update(app *models.TenantApp) error {
	return r.db.Save(app).Error
}

// Count returns the total number of tenant apps
func (r *tenantAppRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.TenantApp{}).Count(&count).Error
	return count, err
}
