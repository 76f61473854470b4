package repository

import (
	"strings"

	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

// domainRepository implements the DomainRepository interface
type domainRepository struct {
	db *gorm.DB
}

// NewDomainRepository creates a new domain repository instance
func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{db: db}
}

// GetByHost retrieves a custom domain by hostname (case-insensitive)
func (r *domainRepository) GetByHost(host string) (*models.CustomDomain, error) {
	var domain models.CustomDomain
	err := r.db.Where("domain = ?", strings.ToLower(strings.TrimSpace(host))).First(&domain).Error
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// GetByID retrieves a custom domain by ID
func (r *domainRepository) GetByID(id uint) (*models.CustomDomain, error) {
	var domain models.CustomDomain
	err := r.db.First(&domain, id).Error
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// ListByUser returns domains whose default app belongs to the given user
func (r *domainRepository) ListByUser(userID uint) ([]models.CustomDomain, error) {
	var domains []models.CustomDomain
	err := r.db.
		Joins("JOIN tenant_apps ON tenant_apps.id = custom_domains.app_id").
		Where("tenant_apps.user_id = ?", userID).
		Find(&domains).Error
	return domains, err
}

// List returns a page of domains ordered by creation time
func (r *domainRepository) List(offset, limit int) ([]models.CustomDomain, error) {
	var domains []models.CustomDomain
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&domains).Error
	return domains, err
}

// Save creates or updates a custom domain
func (r *domainRepository) Save(domain *models.CustomDomain) error {
	domain.Domain = strings.ToLower(strings.TrimSpace(domain.Domain))
	return r.db.Save(domain).Error
}

// ListMappings returns all path mappings for a custom domain
func (r *domainRepository) ListMappings(customDomainID uint) ([]models.DomainMapping, error) {
	var mappings []models.DomainMapping
	err := r.db.Where("custom_domain_id = ?", customDomainID).Find(&mappings).Error
	return mappings, err
}

// SaveMapping creates or updates a domain-app mapping
func (r *domainRepository) SaveMapping(mapping *models.DomainMapping) error {
	return r.db.Save(mapping).Error
}

// DeleteMapping removes a domain-app mapping
func (r *domainRepository) DeleteMapping(id uint) error {
	return r.db.Delete(&models.DomainMapping{}, id).Error
}
