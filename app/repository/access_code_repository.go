package repository

import (
	"errors"
	"time"

	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

// Redemption outcomes surfaced to callers as tagged errors.
var (
	ErrCodeNotFound    = errors.New("access code not found")
	ErrCodeAlreadyUsed = errors.New("access code already used")
)

// accessCodeRepository implements the AccessCodeRepository interface
type accessCodeRepository struct {
	db *gorm.DB
}

// NewAccessCodeRepository creates a new access code repository instance
func NewAccessCodeRepository(db *gorm.DB) AccessCodeRepository {
	return &accessCodeRepository{db: db}
}

// Create persists a fresh unused code
func (r *accessCodeRepository) Create(code *models.AccessCode) error {
	return r.db.Create(code).Error
}

// GetByCode retrieves an access code by its code string
func (r *accessCodeRepository) GetByCode(code string) (*models.AccessCode, error) {
	var ac models.AccessCode
	err := r.db.Where("code = ?", code).First(&ac).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &ac, nil
}

// GetByPurchaseID retrieves the code issued for a purchase, if any
func (r *accessCodeRepository) GetByPurchaseID(purchaseID uint) (*models.AccessCode, error) {
	var ac models.AccessCode
	err := r.db.Where("purchase_id = ?", purchaseID).First(&ac).Error
	if err != nil {
		return nil, err
	}
	return &ac, nil
}

// Redeem flips is_used in a single conditional UPDATE so two concurrent
// redemptions can never both succeed. RowsAffected == 0 means the guard
// failed; a follow-up read separates unknown codes from already-used ones.
func (r *accessCodeRepository) Redeem(code string) (*models.AccessCode, error) {
	now := time.Now()
	tx := r.db.Model(&models.AccessCode{}).
		Where("code = ? AND is_used = ?", code, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": &now,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}

	if tx.RowsAffected == 0 {
		var existing models.AccessCode
		err := r.db.Where("code = ?", code).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCodeNotFound
			}
			return nil, err
		}
		return nil, ErrCodeAlreadyUsed
	}

	var redeemed models.AccessCode
	if err := r.db.Where("code = ?", code).First(&redeemed).Error; err != nil {
		return nil, err
	}
	return &redeemed, nil
}

// ListByBuyer returns all codes issued to a buyer email
func (r *accessCodeRepository) ListByBuyer(buyerEmail string) ([]models.AccessCode, error) {
	var codes []models.AccessCode
	err := r.db.Where("buyer_email = ?", buyerEmail).Order("created_at DESC").Find(&codes).Error
	return codes, err
}

// Count returns the total number of issued codes
func (r *accessCodeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.AccessCode{}).Count(&count).Error
	return count, err
}

// CountUsed returns the number of redeemed codes
func (r *accessCodeRepository) CountUsed() (int64, error) {
	var count int64
	err := r.db.Model(&models.AccessCode{}).Where("is_used = ?", true).Count(&count).Error
	return count, err
}
