package repository

import (
	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// GetByUserID retrieves the subscription record for a user
func (r *subscriptionRepository) GetByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByUserIDWithPlan retrieves the subscription joined to its plan
func (r *subscriptionRepository) GetByUserIDWithPlan(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByStripeSubscriptionID resolves a Stripe subscription id to the local record
func (r *subscriptionRepository) GetByStripeSubscriptionID(subID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("stripe_subscription_id = ? AND stripe_subscription_id <> ''", subID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Save creates or updates a subscription record
func (r *subscriptionRepository) Save(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

// SetPlan writes plan linkage and active flag in one statement. A nil
// planID clears the linkage.
func (r *subscriptionRepository) SetPlan(subscriptionID uint, planID *uint, isActive bool) error {
	updates := map[string]interface{}{
		"plan_id":   planID,
		"is_active": isActive,
	}
	return r.db.Model(&models.Subscription{}).Where("id = ?", subscriptionID).Updates(updates).Error
}
