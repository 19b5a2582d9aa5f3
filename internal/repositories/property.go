package repositories

import (
	"estates/internal/models"

	"gorm.io/gorm"
)

// PropertyFilter narrows property listings. ScopeOwnerID and ScopeManagerID
// carry the caller's role restriction, not a caller-chosen filter.
type PropertyFilter struct {
	Search         string
	City           string
	OwnerID        uint
	ScopeOwnerID   uint
	ScopeManagerID uint
	OrderDesc      bool
	Offset         int
	Limit          int
}

// OccupancyStats is the per-property aggregation row used by the directory
// and dashboard rollups.
type OccupancyStats struct {
	TotalUnits     int64
	OccupiedUnits  int64
	PendingKyc     int64
	MonthlyRevenue float64
}

type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	List(filter PropertyFilter) ([]models.Property, int64, error)
	Update(property *models.Property) error
	ListUnits(propertyID uint) ([]models.Unit, error)
	AggregateOccupancy(propertyIDs []uint) (map[uint]OccupancyStats, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new PropertyRepository.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *models.Property) error {
	return translateError(r.db.Create(property).Error)
}

func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.First(&property, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &property, nil
}

func (r *propertyRepository) List(filter PropertyFilter) ([]models.Property, int64, error) {
	q := r.db.Model(&models.Property{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(COALESCE(code, '')) LIKE LOWER(?)", like, like)
	}
	if filter.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.OwnerID != 0 {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.ScopeOwnerID != 0 {
		q = q.Where("owner_id = ?", filter.ScopeOwnerID)
	}
	if filter.ScopeManagerID != 0 {
		q = q.Where("manager_id = ? OR owner_id = ?", filter.ScopeManagerID, filter.ScopeManagerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	order := "created_at ASC"
	if filter.OrderDesc {
		order = "created_at DESC"
	}

	var properties []models.Property
	err := q.Order(order).Offset(filter.Offset).Limit(filter.Limit).Find(&properties).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return properties, total, nil
}

func (r *propertyRepository) Update(property *models.Property) error {
	return translateError(r.db.Save(property).Error)
}

func (r *propertyRepository) ListUnits(propertyID uint) ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&units).Error
	if err != nil {
		return nil, translateError(err)
	}
	return units, nil
}

func (r *propertyRepository) AggregateOccupancy(propertyIDs []uint) (map[uint]OccupancyStats, error) {
	stats := make(map[uint]OccupancyStats, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return stats, nil
	}

	type countRow struct {
		PropertyID uint
		Count      int64
	}
	type sumRow struct {
		PropertyID uint
		Sum        float64
	}

	var totals []countRow
	err := r.db.Model(&models.Unit{}).
		Select("property_id, COUNT(id) AS count").
		Where("property_id IN ?", propertyIDs).
		Group("property_id").
		Scan(&totals).Error
	if err != nil {
		return nil, translateError(err)
	}

	var occupied []countRow
	err = r.db.Model(&models.Unit{}).
		Select("units.property_id, COUNT(DISTINCT units.id) AS count").
		Joins("JOIN leases ON leases.unit_id = units.id").
		Where("units.property_id IN ? AND leases.status = ?", propertyIDs, models.LeaseActive).
		Group("units.property_id").
		Scan(&occupied).Error
	if err != nil {
		return nil, translateError(err)
	}

	var pending []countRow
	err = r.db.Model(&models.Unit{}).
		Select("units.property_id, COUNT(DISTINCT tenants.id) AS count").
		Joins("JOIN leases ON leases.unit_id = units.id").
		Joins("JOIN tenants ON tenants.id = leases.tenant_id").
		Where("units.property_id IN ? AND tenants.kyc_status IN ?", propertyIDs, models.PendingLikeKycStatuses).
		Group("units.property_id").
		Scan(&pending).Error
	if err != nil {
		return nil, translateError(err)
	}

	var revenue []sumRow
	err = r.db.Model(&models.Unit{}).
		Select("units.property_id, COALESCE(SUM(leases.rent_amount), 0) AS sum").
		Joins("JOIN leases ON leases.unit_id = units.id").
		Where("units.property_id IN ? AND leases.status = ?", propertyIDs, models.LeaseActive).
		Group("units.property_id").
		Scan(&revenue).Error
	if err != nil {
		return nil, translateError(err)
	}

	for _, row := range totals {
		s := stats[row.PropertyID]
		s.TotalUnits = row.Count
		stats[row.PropertyID] = s
	}
	for _, row := range occupied {
		s := stats[row.PropertyID]
		s.OccupiedUnits = row.Count
		stats[row.PropertyID] = s
	}
	for _, row := range pending {
		s := stats[row.PropertyID]
		s.PendingKyc = row.Count
		stats[row.PropertyID] = s
	}
	for _, row := range revenue {
		s := stats[row.PropertyID]
		s.MonthlyRevenue = row.Sum
		stats[row.PropertyID] = s
	}
	return stats, nil
}
