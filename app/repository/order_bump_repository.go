package repository

import (
	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

// orderBumpRepository implements the OrderBumpRepository interface
type orderBumpRepository struct {
	db *gorm.DB
}

// NewOrderBumpRepository creates a new order bump repository instance
func NewOrderBumpRepository(db *gorm.DB) OrderBumpRepository {
	return &orderBumpRepository{db: db}
}

// Create creates a new order bump
func (r *orderBumpRepository) Create(bump *models.OrderBump) error {
	return r.db.Create(bump).Error
}

// GetByID retrieves an order bump by ID
func (r *orderBumpRepository) GetByID(id uint) (*models.OrderBump, error) {
	var bump models.OrderBump
	err := r.db.First(&bump, id).Error
	if err != nil {
		return nil, err
	}
	return &bump, nil
}

// GetActiveByID retrieves an order bump only when it is still sellable
func (r *orderBumpRepository) GetActiveByID(id uint) (*models.OrderBump, error) {
	var bump models.OrderBump
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&bump).Error
	if err != nil {
		return nil, err
	}
	return &bump, nil
}

// ListByApp retrieves all order bumps belonging to a tenant app
func (r *orderBumpRepository) ListByApp(appID uint) ([]models.OrderBump, error) {
	var bumps []models.OrderBump
	err := r.db.Where("app_id = ?", appID).Order("created_at ASC").Find(&bumps).Error
	return bumps, err
}

// Update updates an existing order bump
func (r *orderBumpRepository) Update(bump *models.OrderBump) error {
	return r.db.Save(bump).Error
}
