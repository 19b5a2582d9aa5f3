package repositories

import (
	"context"
	"log"
	"time"

	"estates/internal/models"
	"estates/internal/repositories/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantFilter narrows tenant listings.
type TenantFilter struct {
	Status string
	Search string
	Offset int
	Limit  int
}

// TenantRepository covers tenant rows, their KYC artifacts and the audit trail.
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id uint) (*models.Tenant, error)
	List(filter TenantFilter) ([]models.Tenant, int64, error)
	Update(tenant *models.Tenant) error
	PendingDocumentCounts(tenantIDs []uint) (map[uint]int64, error)

	// SubmitDocument inserts the document and folds its score into the tenant
	// in one transaction, with the tenant row locked.
	SubmitDocument(doc *models.TenantDocument, now time.Time) (*models.Tenant, error)
	// RecordDecision overwrites the tenant's KYC status and appends the audit
	// entry in one transaction.
	RecordDecision(tenantID uint, newStatus, reason string, reviewerID uint, now time.Time) (*models.Tenant, error)
	ReviewDocument(documentID uint, status string, reviewerID uint, now time.Time) (*models.TenantDocument, error)

	CreateInvite(invite *models.TenantInvite) error
	CreateSession(session *models.TenantKycSession) error
}

type tenantRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewTenantRepository creates a new TenantRepository.
func NewTenantRepository(db *gorm.DB, cache *cache.CacheService) TenantRepository {
	return &tenantRepository{db: db, cache: cache}
}

func (r *tenantRepository) Create(tenant *models.Tenant) error {
	return translateError(r.db.Create(tenant).Error)
}

func (r *tenantRepository) GetByID(id uint) (*models.Tenant, error) {
	if r.cache != nil {
		if tenant, err := r.cache.GetTenant(context.Background(), id); err == nil {
			return tenant, nil
		}
	}

	var tenant models.Tenant
	if err := r.db.First(&tenant, id).Error; err != nil {
		return nil, translateError(err)
	}

	if r.cache != nil {
		if err := r.cache.CacheTenant(context.Background(), &tenant); err != nil {
			log.Printf("failed to cache tenant %d: %v", tenant.ID, err)
		}
	}
	return &tenant, nil
}

func (r *tenantRepository) List(filter TenantFilter) ([]models.Tenant, int64, error) {
	q := r.db.Model(&models.Tenant{})

	if filter.Status != "" {
		q = q.Where("kyc_status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"LOWER(full_name) LIKE LOWER(?) OR LOWER(phone) LIKE LOWER(?) OR LOWER(COALESCE(email, '')) LIKE LOWER(?)",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var tenants []models.Tenant
	err := q.Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&tenants).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return tenants, total, nil
}

func (r *tenantRepository) Update(tenant *models.Tenant) error {
	if err := r.db.Save(tenant).Error; err != nil {
		return translateError(err)
	}
	r.invalidate(tenant.ID)
	return nil
}

func (r *tenantRepository) PendingDocumentCounts(tenantIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(tenantIDs))
	if len(tenantIDs) == 0 {
		return counts, nil
	}

	rows := []struct {
		TenantID uint
		Count    int64
	}{}
	err := r.db.Model(&models.TenantDocument{}).
		Select("tenant_id, COUNT(id) AS count").
		Where("tenant_id IN ? AND status = ?", tenantIDs, models.DocStatusPending).
		Group("tenant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	for _, row := range rows {
		counts[row.TenantID] = row.Count
	}
	return counts, nil
}

func (r *tenantRepository) SubmitDocument(doc *models.TenantDocument, now time.Time) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tenant, doc.TenantID).Error; err != nil {
			return err
		}
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		tenant.ApplyDocument(doc.ScoreValue, now)
		return tx.Save(&tenant).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	r.invalidate(tenant.ID)
	return &tenant, nil
}

func (r *tenantRepository) RecordDecision(tenantID uint, newStatus, reason string, reviewerID uint, now time.Time) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tenant, tenantID).Error; err != nil {
			return err
		}

		previous := tenant.RecordDecision(newStatus, reviewerID, now)
		if err := tx.Save(&tenant).Error; err != nil {
			return err
		}

		audit := models.TenantKycAudit{
			TenantID:       tenant.ID,
			PreviousStatus: previous,
			NewStatus:      newStatus,
			ChangedByID:    &reviewerID,
			Reason:         reason,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	r.invalidate(tenant.ID)
	return &tenant, nil
}

func (r *tenantRepository) ReviewDocument(documentID uint, status string, reviewerID uint, now time.Time) (*models.TenantDocument, error) {
	var doc models.TenantDocument
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, documentID).Error; err != nil {
			return err
		}
		doc.Status = status
		doc.ReviewedByID = &reviewerID
		doc.ReviewedAt = &now
		return tx.Save(&doc).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}

func (r *tenantRepository) CreateInvite(invite *models.TenantInvite) error {
	return translateError(r.db.Create(invite).Error)
}

func (r *tenantRepository) CreateSession(session *models.TenantKycSession) error {
	return translateError(r.db.Create(session).Error)
}

func (r *tenantRepository) invalidate(id uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateTenant(context.Background(), id); err != nil {
		log.Printf("failed to invalidate tenant cache %d: %v", id, err)
	}
}
