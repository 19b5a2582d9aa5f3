package repositories

import (
	"estates/internal/models"

	"gorm.io/gorm"
)

// OccupancyRow is a per-property occupancy aggregation for the dashboard.
type OccupancyRow struct {
	PropertyID   uint
	PropertyName string
	TotalUnits   int64
	ActiveLeases int64
}

// StatsRepository serves the read-only dashboard rollups.
type StatsRepository interface {
	PropertyCount() (int64, error)
	TenantCount() (int64, error)
	ActiveLeaseCount() (int64, error)
	PendingKycCount() (int64, error)
	ActiveLeaseRentSum() (float64, error)
	OccupancyRows() ([]OccupancyRow, error)
	PendingKycPerProperty() (map[uint]int64, error)
	RecentMaintenance(limit int) ([]models.MaintenanceRequest, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) PropertyCount() (int64, error) {
	var n int64
	err := r.db.Model(&models.Property{}).Count(&n).Error
	return n, translateError(err)
}

func (r *statsRepository) TenantCount() (int64, error) {
	var n int64
	err := r.db.Model(&models.Tenant{}).Count(&n).Error
	return n, translateError(err)
}

func (r *statsRepository) ActiveLeaseCount() (int64, error) {
	var n int64
	err := r.db.Model(&models.Lease{}).
		Where("status = ?", models.LeaseActive).
		Count(&n).Error
	return n, translateError(err)
}

func (r *statsRepository) PendingKycCount() (int64, error) {
	var n int64
	err := r.db.Model(&models.Tenant{}).
		Where("kyc_status IN ?", models.PendingLikeKycStatuses).
		Count(&n).Error
	return n, translateError(err)
}

func (r *statsRepository) ActiveLeaseRentSum() (float64, error) {
	var sum float64
	err := r.db.Model(&models.Lease{}).
		Where("status = ?", models.LeaseActive).
		Select("COALESCE(SUM(rent_amount), 0)").
		Scan(&sum).Error
	return sum, translateError(err)
}

func (r *statsRepository) OccupancyRows() ([]OccupancyRow, error) {
	var rows []OccupancyRow
	err := r.db.Model(&models.Property{}).
		Select("properties.id AS property_id, properties.name AS property_name, COUNT(units.id) AS total_units, COUNT(DISTINCT leases.id) AS active_leases").
		Joins("JOIN units ON units.property_id = properties.id").
		Joins("LEFT JOIN leases ON leases.unit_id = units.id AND leases.status = ?", models.LeaseActive).
		Group("properties.id, properties.name").
		Order("properties.name").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *statsRepository) PendingKycPerProperty() (map[uint]int64, error) {
	rows := []struct {
		PropertyID uint
		Count      int64
	}{}
	err := r.db.Model(&models.Unit{}).
		Select("units.property_id, COUNT(DISTINCT tenants.id) AS count").
		Joins("JOIN leases ON leases.unit_id = units.id").
		Joins("JOIN tenants ON tenants.id = leases.tenant_id").
		Where("tenants.kyc_status IN ?", models.PendingLikeKycStatuses).
		Group("units.property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PropertyID] = row.Count
	}
	return counts, nil
}

func (r *statsRepository) RecentMaintenance(limit int) ([]models.MaintenanceRequest, error) {
	var records []models.MaintenanceRequest
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, translateError(err)
	}
	return records, nil
}
