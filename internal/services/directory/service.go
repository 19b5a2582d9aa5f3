// Package directory manages the property, unit and lease catalog, including
// the role scoping rules and the occupancy rollups attached to listings.
package directory

import (
	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"
	"estates/internal/validation"

	"github.com/google/uuid"
)

// Occupancy is the derived rollup attached to property responses.
type Occupancy struct {
	TotalUnits     int64   `json:"total_units"`
	OccupiedUnits  int64   `json:"occupied_units"`
	OccupancyRate  float64 `json:"occupancy_rate"`
	PendingKyc     int64   `json:"pending_kyc"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
}

// PropertyView is a property plus its occupancy rollup.
type PropertyView struct {
	models.Property
	Occupancy Occupancy `json:"occupancy"`
}

// UnitView is a unit with occupancy derived from lease state at read time.
// The stored unit status is never consulted for this.
type UnitView struct {
	models.Unit
	Occupied      bool  `json:"occupied"`
	ActiveLeaseID *uint `json:"active_lease_id"`
}

// PropertyListFilter carries the caller-chosen listing filters. Role scoping
// is layered on top from the acting user, never from these fields.
type PropertyListFilter struct {
	Search    string
	City      string
	OwnerID   uint
	OrderDesc bool
	Offset    int
	Limit     int
}

type Service interface {
	ListProperties(user *models.User, filter PropertyListFilter) ([]PropertyView, int64, error)
	CreateProperty(property *models.Property) (*PropertyView, error)
	GetProperty(user *models.User, id uint) (*PropertyView, error)
	UpdateProperty(user *models.User, id uint, update models.PropertyUpdate) (*PropertyView, error)
	ListPropertyUnits(user *models.User, propertyID uint) ([]UnitView, error)

	CreateUnit(user *models.User, unit *models.Unit) (*UnitView, error)
	UpdateUnit(user *models.User, id uint, update models.UnitUpdate) (*UnitView, error)

	ListLeases(limit int) ([]models.Lease, error)
	CreateLease(lease *models.Lease) error
	GetLease(id uint) (*models.Lease, error)
	UpdateLease(id uint, update models.LeaseUpdate) (*models.Lease, error)
}

type service struct {
	propertyRepo repositories.PropertyRepository
	unitRepo     repositories.UnitRepository
	leaseRepo    repositories.LeaseRepository
	tenantRepo   repositories.TenantRepository
}

// NewService creates a new directory Service.
func NewService(
	propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.TenantRepository,
) Service {
	return &service{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		leaseRepo:    leaseRepo,
		tenantRepo:   tenantRepo,
	}
}

// OccupancyRate is occupied over total, rounded to 2dp. No units reads 0.
func OccupancyRate(occupied, total int64) float64 {
	if total == 0 {
		return 0
	}
	return models.RoundAmount(float64(occupied) / float64(total))
}

func (s *service) ListProperties(user *models.User, filter PropertyListFilter) ([]PropertyView, int64, error) {
	repoFilter := repositories.PropertyFilter{
		Search:    filter.Search,
		City:      filter.City,
		OwnerID:   filter.OwnerID,
		OrderDesc: filter.OrderDesc,
		Offset:    filter.Offset,
		Limit:     filter.Limit,
	}

	// A nil user means open access is enabled; no scope is applied.
	if user != nil {
		switch user.Role {
		case models.RoleOwner:
			repoFilter.ScopeOwnerID = user.ID
		case models.RoleManager:
			repoFilter.ScopeManagerID = user.ID
		}
	}

	properties, total, err := s.propertyRepo.List(repoFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, len(properties))
	for i := range properties {
		ids[i] = properties[i].ID
	}
	stats, err := s.propertyRepo.AggregateOccupancy(ids)
	if err != nil {
		return nil, 0, err
	}

	views := make([]PropertyView, len(properties))
	for i := range properties {
		views[i] = propertyView(&properties[i], stats[properties[i].ID])
	}
	return views, total, nil
}

func (s *service) CreateProperty(property *models.Property) (*PropertyView, error) {
	v := validation.New()
	v.Required("name", property.Name)
	v.OneOf("property_type", property.PropertyType,
		models.PropertyResidential, models.PropertyCommercial, models.PropertyMixedUse, models.PropertyLand)
	if !v.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}

	if property.PropertyType == "" {
		property.PropertyType = models.PropertyResidential
	}
	if property.Code == "" {
		property.Code = uuid.NewString()
	}

	if err := s.propertyRepo.Create(property); err != nil {
		return nil, err
	}

	view := propertyView(property, repositories.OccupancyStats{})
	return &view, nil
}

func (s *service) GetProperty(user *models.User, id uint) (*PropertyView, error) {
	property, err := s.visibleProperty(user, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.propertyRepo.AggregateOccupancy([]uint{property.ID})
	if err != nil {
		return nil, err
	}

	view := propertyView(property, stats[property.ID])
	return &view, nil
}

func (s *service) UpdateProperty(user *models.User, id uint, update models.PropertyUpdate) (*PropertyView, error) {
	property, err := s.visibleProperty(user, id)
	if err != nil {
		return nil, err
	}

	if update.PropertyType != nil {
		v := validation.New()
		v.OneOf("property_type", *update.PropertyType,
			models.PropertyResidential, models.PropertyCommercial, models.PropertyMixedUse, models.PropertyLand)
		if !v.Valid() {
			return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
		}
	}

	update.ApplyTo(property)
	if err := s.propertyRepo.Update(property); err != nil {
		return nil, err
	}

	stats, err := s.propertyRepo.AggregateOccupancy([]uint{property.ID})
	if err != nil {
		return nil, err
	}

	view := propertyView(property, stats[property.ID])
	return &view, nil
}

func (s *service) ListPropertyUnits(user *models.User, propertyID uint) ([]UnitView, error) {
	if _, err := s.visibleProperty(user, propertyID); err != nil {
		return nil, err
	}

	units, err := s.propertyRepo.ListUnits(propertyID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(units))
	for i := range units {
		ids[i] = units[i].ID
	}
	leases, err := s.unitRepo.ActiveLeaseMap(ids)
	if err != nil {
		return nil, err
	}

	views := make([]UnitView, len(units))
	for i := range units {
		views[i] = unitView(&units[i], leases[units[i].ID])
	}
	return views, nil
}

func (s *service) CreateUnit(user *models.User, unit *models.Unit) (*UnitView, error) {
	if _, err := s.visibleProperty(user, unit.PropertyID); err != nil {
		return nil, err
	}

	v := validation.New()
	v.Required("name", unit.Name)
	v.NonNegative("rent_amount", unit.RentAmount)
	v.OneOf("status", unit.Status, models.UnitAvailable, models.UnitOccupied, models.UnitMaintenance)
	if !v.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}
	if unit.Status == "" {
		unit.Status = models.UnitAvailable
	}

	if err := s.unitRepo.Create(unit); err != nil {
		return nil, err
	}

	view := unitView(unit, nil)
	return &view, nil
}

func (s *service) UpdateUnit(user *models.User, id uint, update models.UnitUpdate) (*UnitView, error) {
	unit, err := s.unitRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "unit not found")
	}
	if _, err := s.visibleProperty(user, unit.PropertyID); err != nil {
		return nil, err
	}

	update.ApplyTo(unit)
	if err := s.unitRepo.Update(unit); err != nil {
		return nil, err
	}

	lease, err := s.unitRepo.ActiveLease(unit.ID)
	if err != nil {
		return nil, err
	}

	view := unitView(unit, lease)
	return &view, nil
}

func (s *service) ListLeases(limit int) ([]models.Lease, error) {
	return s.leaseRepo.List(limit)
}

func (s *service) CreateLease(lease *models.Lease) error {
	if _, err := s.unitRepo.GetByID(lease.UnitID); err != nil {
		return apperrors.New(apperrors.ErrNotFound.Code, "unit not found")
	}
	if _, err := s.tenantRepo.GetByID(lease.TenantID); err != nil {
		return apperrors.New(apperrors.ErrNotFound.Code, "tenant not found")
	}

	v := validation.New()
	v.NonNegative("rent_amount", lease.RentAmount)
	v.NonNegative("deposit_amount", lease.DepositAmount)
	v.OneOf("status", lease.Status,
		models.LeaseDraft, models.LeaseActive, models.LeaseTerminated, models.LeaseExpired)
	if !v.Valid() {
		return apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}
	if lease.Status == "" {
		lease.Status = models.LeaseActive
	}

	return s.leaseRepo.Create(lease)
}

func (s *service) GetLease(id uint) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "lease not found")
	}
	return lease, nil
}

func (s *service) UpdateLease(id uint, update models.LeaseUpdate) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "lease not found")
	}

	if update.Status != nil {
		v := validation.New()
		v.OneOf("status", *update.Status,
			models.LeaseDraft, models.LeaseActive, models.LeaseTerminated, models.LeaseExpired)
		if !v.Valid() {
			return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
		}
	}

	update.ApplyTo(lease)
	if err := s.leaseRepo.Update(lease); err != nil {
		return nil, err
	}
	return lease, nil
}

// visibleProperty loads a property and rejects access when the acting user's
// ownership scope does not cover it. A nil user means open access.
func (s *service) visibleProperty(user *models.User, id uint) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "property not found")
	}
	if user != nil && !property.VisibleTo(user) {
		return nil, apperrors.New(apperrors.ErrForbidden.Code, "not allowed")
	}
	return property, nil
}

func propertyView(property *models.Property, stats repositories.OccupancyStats) PropertyView {
	return PropertyView{
		Property: *property,
		Occupancy: Occupancy{
			TotalUnits:     stats.TotalUnits,
			OccupiedUnits:  stats.OccupiedUnits,
			OccupancyRate:  OccupancyRate(stats.OccupiedUnits, stats.TotalUnits),
			PendingKyc:     stats.PendingKyc,
			MonthlyRevenue: stats.MonthlyRevenue,
		},
	}
}

func unitView(unit *models.Unit, activeLease *models.Lease) UnitView {
	view := UnitView{Unit: *unit}
	if activeLease != nil {
		view.Occupied = true
		view.ActiveLeaseID = &activeLease.ID
	}
	return view
}
