package repository

import (
	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// purchaseRepository implements the PurchaseRepository interface
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// CreateIfNotExists inserts the purchase with DO NOTHING on the
// (provider, transaction_id) unique index, then reads back the stored row.
// RowsAffected distinguishes a fresh insert from a webhook redelivery.
func (r *purchaseRepository) CreateIfNotExists(purchase *models.Purchase) (bool, *models.Purchase, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "transaction_id"},
		},
		DoNothing: true,
	}).Create(purchase)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Purchase
	if err := r.db.Where("provider = ? AND transaction_id = ?", purchase.Provider, purchase.TransactionID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// GetByProviderTransaction retrieves a purchase by its provider transaction id
func (r *purchaseRepository) GetByProviderTransaction(provider, transactionID string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Where("provider = ? AND transaction_id = ?", provider, transactionID).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// UpdateStatus changes the purchase status; no other column is mutable
func (r *purchaseRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Purchase{}).Where("id = ?", id).Update("status", status).Error
}

// ListByOrderBump returns a page of purchases for one order bump
func (r *purchaseRepository) ListByOrderBump(orderBumpID uint, offset, limit int) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.Where("order_bump_id = ?", orderBumpID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&purchases).Error
	return purchases, err
}

// Count returns the total number of purchases
func (r *purchaseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).Count(&count).Error
	return count, err
}
