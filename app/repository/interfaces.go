package repository

import (
	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// PlanRepository defines the interface for plan catalog operations
type PlanRepository interface {
	GetByID(id uint) (*models.Plan, error)
	GetByName(name string) (*models.Plan, error)
	GetByStripePriceID(priceID string) (*models.Plan, error)
	ListActive() ([]models.Plan, error)
	Save(plan *models.Plan) error
}

// SubscriptionRepository defines the interface for subscription records
type SubscriptionRepository interface {
	GetByUserID(userID uint) (*models.Subscription, error)
	GetByUserIDWithPlan(userID uint) (*models.Subscription, error)
	GetByStripeSubscriptionID(subID string) (*models.Subscription, error)
	Save(sub *models.Subscription) error
	SetPlan(subscriptionID uint, planID *uint, isActive bool) error
}

// TenantAppRepository defines the interface for tenant app operations
type TenantAppRepository interface {
	Create(app *models.TenantApp) error
	GetByID(id uint) (*models.TenantApp, error)
	GetBySlug(slug string) (*models.TenantApp, error)
	GetByUserID(userID uint) ([]models.TenantApp, error)
	Update(app *models.TenantApp) error
	Count() (int64, error)
}

// DomainRepository covers custom domains and their path mappings
type DomainRepository interface {
	GetByHost(host string) (*models.CustomDomain, error)
	GetByID(id uint) (*models.CustomDomain, error)
	ListByUser(userID uint) ([]models.CustomDomain, error)
	List(offset, limit int) ([]models.CustomDomain, error)
	Save(domain *models.CustomDomain) error
	ListMappings(customDomainID uint) ([]models.DomainMapping, error)
	SaveMapping(mapping *models.DomainMapping) error
	DeleteMapping(id uint) error
}

// OrderBumpRepository defines the interface for order bump operations
type OrderBumpRepository interface {
	Create(bump *models.OrderBump) error
	GetByID(id uint) (*models.OrderBump, error)
	GetActiveByID(id uint) (*models.OrderBump, error)
	ListByApp(appID uint) ([]models.OrderBump, error)
	Update(bump *models.OrderBump) error
}

// PurchaseRepository persists verified transactions idempotently
type PurchaseRepository interface {
	// CreateIfNotExists inserts the purchase unless one with the same
	// (provider, transaction_id) already exists. Returns created=false and
	// the stored row when the webhook was a redelivery.
	CreateIfNotExists(purchase *models.Purchase) (bool, *models.Purchase, error)
	GetByProviderTransaction(provider, transactionID string) (*models.Purchase, error)
	UpdateStatus(id uint, status string) error
	ListByOrderBump(orderBumpID uint, offset, limit int) ([]models.Purchase, error)
	Count() (int64, error)
}

// AccessCodeRepository persists unlock codes; Redeem is the only mutation
// after creation and must be a single conditional update.
type AccessCodeRepository interface {
	Create(code *models.AccessCode) error
	GetByCode(code string) (*models.AccessCode, error)
	GetByPurchaseID(purchaseID uint) (*models.AccessCode, error)
	// Redeem marks the code used where is_used is still false. It returns
	// ErrCodeNotFound for unknown codes and ErrCodeAlreadyUsed when the
	// conditional update matched no rows.
	Redeem(code string) (*models.AccessCode, error)
	ListByBuyer(buyerEmail string) ([]models.AccessCode, error)
	Count() (int64, error)
	CountUsed() (int64, error)
}

// SettingRepository defines the interface for settings-related operations
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Plan         PlanRepository
	Subscription SubscriptionRepository
	TenantApp    TenantAppRepository
	Domain       DomainRepository
	OrderBump    OrderBumpRepository
	Purchase     PurchaseRepository
	AccessCode   AccessCodeRepository
	Setting      SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Plan:         NewPlanRepository(db),
		Subscription: NewSubscriptionRepository(db),
		TenantApp:    NewTenantAppRepository(db),
		Domain:       NewDomainRepository(db),
		OrderBump:    NewOrderBumpRepository(db),
		Purchase:     NewPurchaseRepository(db),
		AccessCode:   NewAccessCodeRepository(db),
		Setting:      NewSettingRepository(db),
	}
}
