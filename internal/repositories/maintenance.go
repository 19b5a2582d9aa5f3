package repositories

import (
	"estates/internal/models"

	"gorm.io/gorm"
)

type MaintenanceRepository interface {
	Create(record *models.MaintenanceRequest) error
	GetByID(id uint) (*models.MaintenanceRequest, error)
	List(limit int) ([]models.MaintenanceRequest, error)
	Update(record *models.MaintenanceRequest) error
}

type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new MaintenanceRepository.
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(record *models.MaintenanceRequest) error {
	return translateError(r.db.Create(record).Error)
}

func (r *maintenanceRepository) GetByID(id uint) (*models.MaintenanceRequest, error) {
	var record models.MaintenanceRequest
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r *maintenanceRepository) List(limit int) ([]models.MaintenanceRequest, error) {
	var records []models.MaintenanceRequest
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, translateError(err)
	}
	return records, nil
}

func (r *maintenanceRepository) Update(record *models.MaintenanceRequest) error {
	return translateError(r.db.Save(record).Error)
}
