// Package maintenance tracks repair requests against properties and units.
package maintenance

import (
	"time"

	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"
	"estates/internal/validation"
)

// RequestView is a maintenance request joined with the display names of the
// property, unit and tenant it references.
type RequestView struct {
	models.MaintenanceRequest
	PropertyName string `json:"property_name"`
	UnitName     string `json:"unit_name,omitempty"`
	TenantName   string `json:"tenant_name,omitempty"`
}

type Service interface {
	List(limit int) ([]RequestView, error)
	Create(record *models.MaintenanceRequest) (*RequestView, error)
	Update(id uint, update models.MaintenanceUpdate) (*RequestView, error)
}

type service struct {
	maintRepo    repositories.MaintenanceRepository
	propertyRepo repositories.PropertyRepository
	unitRepo     repositories.UnitRepository
	tenantRepo   repositories.TenantRepository
	now          func() time.Time
}

// NewService creates a new maintenance Service.
func NewService(
	maintRepo repositories.MaintenanceRepository,
	propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	tenantRepo repositories.TenantRepository,
) Service {
	return &service{
		maintRepo:    maintRepo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		tenantRepo:   tenantRepo,
		now:          time.Now,
	}
}

func (s *service) List(limit int) ([]RequestView, error) {
	records, err := s.maintRepo.List(limit)
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, len(records))
	for i := range records {
		views[i] = s.view(&records[i])
	}
	return views, nil
}

func (s *service) Create(record *models.MaintenanceRequest) (*RequestView, error) {
	if _, err := s.propertyRepo.GetByID(record.PropertyID); err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "property not found")
	}

	v := validation.New()
	v.Required("title", record.Title)
	v.OneOf("priority", record.Priority,
		models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent)
	v.OneOf("status", record.Status, models.MaintOpen, models.MaintInProgress, models.MaintClosed)
	if !v.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}

	if record.Priority == "" {
		record.Priority = models.PriorityMedium
	}
	if record.Status == "" {
		record.Status = models.MaintOpen
	}
	if record.ReportedOn.IsZero() {
		record.ReportedOn = s.now()
	}

	if err := s.maintRepo.Create(record); err != nil {
		return nil, err
	}

	view := s.view(record)
	return &view, nil
}

func (s *service) Update(id uint, update models.MaintenanceUpdate) (*RequestView, error) {
	record, err := s.maintRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "maintenance request not found")
	}

	v := validation.New()
	if update.Priority != nil {
		v.OneOf("priority", *update.Priority,
			models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent)
	}
	if update.Status != nil {
		v.OneOf("status", *update.Status, models.MaintOpen, models.MaintInProgress, models.MaintClosed)
	}
	if !v.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}

	update.ApplyTo(record)

	// Closing without an explicit resolution date stamps now.
	if update.Status != nil && *update.Status == models.MaintClosed && record.ResolvedOn == nil {
		now := s.now()
		record.ResolvedOn = &now
	}

	if err := s.maintRepo.Update(record); err != nil {
		return nil, err
	}

	view := s.view(record)
	return &view, nil
}

// view joins the display names. Lookups are best effort; a missing reference
// leaves the name empty rather than failing the listing.
func (s *service) view(record *models.MaintenanceRequest) RequestView {
	view := RequestView{MaintenanceRequest: *record}

	if property, err := s.propertyRepo.GetByID(record.PropertyID); err == nil {
		view.PropertyName = property.Name
	}
	if record.UnitID != nil {
		if unit, err := s.unitRepo.GetByID(*record.UnitID); err == nil {
			view.UnitName = unit.Name
		}
	}
	if record.TenantID != nil {
		if tenant, err := s.tenantRepo.GetByID(*record.TenantID); err == nil {
			view.TenantName = tenant.FullName
		}
	}
	return view
}
