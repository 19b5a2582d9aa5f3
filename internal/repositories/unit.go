package repositories

import (
	"errors"

	"estates/internal/models"

	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(unit *models.Unit) error
	GetByID(id uint) (*models.Unit, error)
	Update(unit *models.Unit) error
	// ActiveLease returns the unit's active lease, or nil when vacant.
	ActiveLease(unitID uint) (*models.Lease, error)
	ActiveLeaseMap(unitIDs []uint) (map[uint]*models.Lease, error)
}

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(unit *models.Unit) error {
	return translateError(r.db.Create(unit).Error)
}

func (r *unitRepository) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := r.db.First(&unit, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &unit, nil
}

func (r *unitRepository) Update(unit *models.Unit) error {
	return translateError(r.db.Save(unit).Error)
}

func (r *unitRepository) ActiveLease(unitID uint) (*models.Lease, error) {
	var lease models.Lease
	err := r.db.Where("unit_id = ? AND status = ?", unitID, models.LeaseActive).
		First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &lease, nil
}

func (r *unitRepository) ActiveLeaseMap(unitIDs []uint) (map[uint]*models.Lease, error) {
	leases := make(map[uint]*models.Lease, len(unitIDs))
	if len(unitIDs) == 0 {
		return leases, nil
	}

	var rows []models.Lease
	err := r.db.Where("unit_id IN ? AND status = ?", unitIDs, models.LeaseActive).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	for i := range rows {
		leases[rows[i].UnitID] = &rows[i]
	}
	return leases, nil
}
