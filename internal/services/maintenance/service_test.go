package maintenance

import (
	"testing"
	"time"

	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaintRepo struct {
	records map[uint]*models.MaintenanceRequest
	nextID  uint
}

func (r *fakeMaintRepo) Create(record *models.MaintenanceRequest) error {
	r.nextID++
	record.ID = r.nextID
	r.records[record.ID] = record
	return nil
}

func (r *fakeMaintRepo) GetByID(id uint) (*models.MaintenanceRequest, error) {
	if rec, ok := r.records[id]; ok {
		return rec, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeMaintRepo) List(limit int) ([]models.MaintenanceRequest, error) {
	out := make([]models.MaintenanceRequest, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeMaintRepo) Update(record *models.MaintenanceRequest) error {
	r.records[record.ID] = record
	return nil
}

type fakePropertyRepo struct {
	properties map[uint]*models.Property
}

func (r *fakePropertyRepo) Create(property *models.Property) error { return nil }
func (r *fakePropertyRepo) GetByID(id uint) (*models.Property, error) {
	if p, ok := r.properties[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrNotFound
}
func (r *fakePropertyRepo) List(filter repositories.PropertyFilter) ([]models.Property, int64, error) {
	return nil, 0, nil
}
func (r *fakePropertyRepo) Update(property *models.Property) error { return nil }
func (r *fakePropertyRepo) ListUnits(propertyID uint) ([]models.Unit, error) {
	return nil, nil
}
func (r *fakePropertyRepo) AggregateOccupancy(propertyIDs []uint) (map[uint]repositories.OccupancyStats, error) {
	return nil, nil
}

type fakeUnitRepo struct {
	units map[uint]*models.Unit
}

func (r *fakeUnitRepo) Create(unit *models.Unit) error { return nil }
func (r *fakeUnitRepo) GetByID(id uint) (*models.Unit, error) {
	if u, ok := r.units[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}
func (r *fakeUnitRepo) Update(unit *models.Unit) error { return nil }
func (r *fakeUnitRepo) ActiveLease(unitID uint) (*models.Lease, error) {
	return nil, nil
}
func (r *fakeUnitRepo) ActiveLeaseMap(unitIDs []uint) (map[uint]*models.Lease, error) {
	return nil, nil
}

type fakeTenantRepo struct {
	tenants map[uint]*models.Tenant
}

func (r *fakeTenantRepo) Create(tenant *models.Tenant) error { return nil }
func (r *fakeTenantRepo) GetByID(id uint) (*models.Tenant, error) {
	if t, ok := r.tenants[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrNotFound
}
func (r *fakeTenantRepo) List(filter repositories.TenantFilter) ([]models.Tenant, int64, error) {
	return nil, 0, nil
}
func (r *fakeTenantRepo) Update(tenant *models.Tenant) error { return nil }
func (r *fakeTenantRepo) PendingDocumentCounts(tenantIDs []uint) (map[uint]int64, error) {
	return nil, nil
}
func (r *fakeTenantRepo) SubmitDocument(doc *models.TenantDocument, now time.Time) (*models.Tenant, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeTenantRepo) RecordDecision(tenantID uint, newStatus, reason string, reviewerID uint, now time.Time) (*models.Tenant, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeTenantRepo) ReviewDocument(documentID uint, status string, reviewerID uint, now time.Time) (*models.TenantDocument, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeTenantRepo) CreateInvite(invite *models.TenantInvite) error       { return nil }
func (r *fakeTenantRepo) CreateSession(session *models.TenantKycSession) error { return nil }

func newTestService() (Service, *fakeMaintRepo) {
	property := &models.Property{Name: "Sunrise Court"}
	property.ID = 1
	unit := &models.Unit{PropertyID: 1, Name: "A1"}
	unit.ID = 2
	tenant := &models.Tenant{FullName: "Jane Wanjiku"}
	tenant.ID = 3

	maintRepo := &fakeMaintRepo{records: make(map[uint]*models.MaintenanceRequest)}
	s := NewService(
		maintRepo,
		&fakePropertyRepo{properties: map[uint]*models.Property{1: property}},
		&fakeUnitRepo{units: map[uint]*models.Unit{2: unit}},
		&fakeTenantRepo{tenants: map[uint]*models.Tenant{3: tenant}},
	)
	return s, maintRepo
}

func uintPtr(v uint) *uint { return &v }

func TestService_Create(t *testing.T) {
	t.Run("joins names and defaults fields", func(t *testing.T) {
		s, _ := newTestService()

		view, err := s.Create(&models.MaintenanceRequest{
			PropertyID: 1,
			UnitID:     uintPtr(2),
			TenantID:   uintPtr(3),
			Title:      "Leaking kitchen tap",
		})

		require.NoError(t, err)
		assert.Equal(t, "Sunrise Court", view.PropertyName)
		assert.Equal(t, "A1", view.UnitName)
		assert.Equal(t, "Jane Wanjiku", view.TenantName)
		assert.Equal(t, models.PriorityMedium, view.Priority)
		assert.Equal(t, models.MaintOpen, view.Status)
		assert.False(t, view.ReportedOn.IsZero())
	})

	t.Run("unknown property is not found", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Create(&models.MaintenanceRequest{PropertyID: 9, Title: "x"})
		assert.ErrorContains(t, err, "property not found")
	})

	t.Run("bad priority is invalid", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Create(&models.MaintenanceRequest{PropertyID: 1, Title: "x", Priority: "critical"})
		assert.ErrorContains(t, err, "priority")
	})
}

func TestService_Update(t *testing.T) {
	t.Run("closing stamps resolved date", func(t *testing.T) {
		s, _ := newTestService()
		view, err := s.Create(&models.MaintenanceRequest{PropertyID: 1, Title: "Broken gate lock"})
		require.NoError(t, err)

		closed := models.MaintClosed
		updated, err := s.Update(view.ID, models.MaintenanceUpdate{Status: &closed})

		require.NoError(t, err)
		assert.Equal(t, models.MaintClosed, updated.Status)
		require.NotNil(t, updated.ResolvedOn)
	})

	t.Run("explicit resolution date wins", func(t *testing.T) {
		s, _ := newTestService()
		view, err := s.Create(&models.MaintenanceRequest{PropertyID: 1, Title: "Broken gate lock"})
		require.NoError(t, err)

		closed := models.MaintClosed
		resolved := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		updated, err := s.Update(view.ID, models.MaintenanceUpdate{Status: &closed, ResolvedOn: &resolved})

		require.NoError(t, err)
		assert.Equal(t, resolved, *updated.ResolvedOn)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Update(404, models.MaintenanceUpdate{})
		assert.ErrorContains(t, err, "maintenance request not found")
	})
}
