package repositories

import (
	"estates/internal/models"

	"gorm.io/gorm"
)

// AuditRepository appends to the generic action ledger. There is no update or
// delete on purpose.
type AuditRepository interface {
	Append(entry *models.AuditLog) error
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(entry *models.AuditLog) error {
	return translateError(r.db.Create(entry).Error)
}
