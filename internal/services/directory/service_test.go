package directory

import (
	"testing"
	"time"

	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePropertyRepo struct {
	properties map[uint]*models.Property
	units      map[uint][]models.Unit
	stats      map[uint]repositories.OccupancyStats
	lastFilter repositories.PropertyFilter
	nextID     uint
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{
		properties: make(map[uint]*models.Property),
		units:      make(map[uint][]models.Unit),
		stats:      make(map[uint]repositories.OccupancyStats),
	}
}

func (r *fakePropertyRepo) Create(property *models.Property) error {
	r.nextID++
	property.ID = r.nextID
	r.properties[property.ID] = property
	return nil
}

func (r *fakePropertyRepo) GetByID(id uint) (*models.Property, error) {
	if p, ok := r.properties[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakePropertyRepo) List(filter repositories.PropertyFilter) ([]models.Property, int64, error) {
	r.lastFilter = filter
	out := []models.Property{}
	for _, p := range r.properties {
		if filter.ScopeOwnerID != 0 && (p.OwnerID == nil || *p.OwnerID != filter.ScopeOwnerID) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePropertyRepo) Update(property *models.Property) error {
	r.properties[property.ID] = property
	return nil
}

func (r *fakePropertyRepo) ListUnits(propertyID uint) ([]models.Unit, error) {
	return r.units[propertyID], nil
}

func (r *fakePropertyRepo) AggregateOccupancy(propertyIDs []uint) (map[uint]repositories.OccupancyStats, error) {
	out := make(map[uint]repositories.OccupancyStats)
	for _, id := range propertyIDs {
		out[id] = r.stats[id]
	}
	return out, nil
}

type fakeUnitRepo struct {
	units  map[uint]*models.Unit
	active map[uint]*models.Lease
	nextID uint
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{
		units:  make(map[uint]*models.Unit),
		active: make(map[uint]*models.Lease),
	}
}

func (r *fakeUnitRepo) Create(unit *models.Unit) error {
	r.nextID++
	unit.ID = r.nextID
	r.units[unit.ID] = unit
	return nil
}

func (r *fakeUnitRepo) GetByID(id uint) (*models.Unit, error) {
	if u, ok := r.units[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUnitRepo) Update(unit *models.Unit) error {
	r.units[unit.ID] = unit
	return nil
}

func (r *fakeUnitRepo) ActiveLease(unitID uint) (*models.Lease, error) {
	return r.active[unitID], nil
}

func (r *fakeUnitRepo) ActiveLeaseMap(unitIDs []uint) (map[uint]*models.Lease, error) {
	out := make(map[uint]*models.Lease)
	for _, id := range unitIDs {
		if lease, ok := r.active[id]; ok {
			out[id] = lease
		}
	}
	return out, nil
}

type fakeLeaseRepo struct {
	leases map[uint]*models.Lease
	nextID uint
}

func newFakeLeaseRepo() *fakeLeaseRepo {
	return &fakeLeaseRepo{leases: make(map[uint]*models.Lease)}
}

func (r *fakeLeaseRepo) Create(lease *models.Lease) error {
	r.nextID++
	lease.ID = r.nextID
	r.leases[lease.ID] = lease
	return nil
}

func (r *fakeLeaseRepo) GetByID(id uint) (*models.Lease, error) {
	if l, ok := r.leases[id]; ok {
		return l, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeLeaseRepo) List(limit int) ([]models.Lease, error) {
	out := make([]models.Lease, 0, len(r.leases))
	for _, l := range r.leases {
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeLeaseRepo) Update(lease *models.Lease) error {
	r.leases[lease.ID] = lease
	return nil
}

func (r *fakeLeaseRepo) CreateInvoice(invoice *models.RentInvoice) error { return nil }
func (r *fakeLeaseRepo) GetInvoice(id uint) (*models.RentInvoice, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeLeaseRepo) UpdateInvoice(invoice *models.RentInvoice) error { return nil }
func (r *fakeLeaseRepo) RecordPayment(payment *models.Payment) (*models.RentInvoice, error) {
	return nil, apperrors.ErrNotFound
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

type fixture struct {
	properties *fakePropertyRepo
	units      *fakeUnitRepo
	leases     *fakeLeaseRepo
	tenants    *fakeTenantRepo
	service    Service
}

func newFixture() *fixture {
	f := &fixture{
		properties: newFakePropertyRepo(),
		units:      newFakeUnitRepo(),
		leases:     newFakeLeaseRepo(),
		tenants:    &fakeTenantRepo{tenants: make(map[uint]*models.Tenant)},
	}
	f.service = NewService(f.properties, f.units, f.leases, f.tenants)
	return f
}

func userWithRole(id uint, role string) *models.User {
	u := &models.User{Role: role, Active: true}
	u.ID = id
	return u
}

func (f *fixture) seedProperty(ownerID, managerID *uint) *models.Property {
	p := &models.Property{Name: "Sunrise Court", PropertyType: models.PropertyResidential, OwnerID: ownerID, ManagerID: managerID}
	_ = f.properties.Create(p)
	return p
}

func uintPtr(v uint) *uint { return &v }

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, OccupancyRate(0, 0))
	assert.Equal(t, 0.75, OccupancyRate(3, 4))
	assert.Equal(t, 1.0, OccupancyRate(4, 4))
	assert.Equal(t, 0.33, OccupancyRate(1, 3))
}

func TestService_Properties(t *testing.T) {
	t.Run("create defaults type and code", func(t *testing.T) {
		f := newFixture()

		view, err := f.service.CreateProperty(&models.Property{Name: "Sunrise Court"})

		require.NoError(t, err)
		assert.Equal(t, models.PropertyResidential, view.PropertyType)
		assert.NotEmpty(t, view.Code)
		assert.Equal(t, 0.0, view.Occupancy.OccupancyRate)
	})

	t.Run("create rejects missing name", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateProperty(&models.Property{})
		assert.ErrorContains(t, err, "name")
	})

	t.Run("owner cannot reach another owner's property", func(t *testing.T) {
		f := newFixture()
		p := f.seedProperty(uintPtr(1), nil)

		_, err := f.service.GetProperty(userWithRole(2, models.RoleOwner), p.ID)
		assert.ErrorContains(t, err, "not allowed")

		view, err := f.service.GetProperty(userWithRole(1, models.RoleOwner), p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, view.ID)
	})

	t.Run("manager sees unassigned and own properties", func(t *testing.T) {
		f := newFixture()
		unassigned := f.seedProperty(uintPtr(1), nil)
		mine := f.seedProperty(uintPtr(1), uintPtr(5))
		other := f.seedProperty(uintPtr(1), uintPtr(9))

		manager := userWithRole(5, models.RoleManager)

		_, err := f.service.GetProperty(manager, unassigned.ID)
		assert.NoError(t, err)
		_, err = f.service.GetProperty(manager, mine.ID)
		assert.NoError(t, err)
		_, err = f.service.GetProperty(manager, other.ID)
		assert.ErrorContains(t, err, "not allowed")
	})

	t.Run("viewer reads everything", func(t *testing.T) {
		f := newFixture()
		p := f.seedProperty(uintPtr(1), uintPtr(2))

		_, err := f.service.GetProperty(userWithRole(7, models.RoleViewer), p.ID)
		assert.NoError(t, err)
	})

	t.Run("list scopes owners", func(t *testing.T) {
		f := newFixture()
		f.seedProperty(uintPtr(1), nil)
		f.seedProperty(uintPtr(2), nil)

		views, total, err := f.service.ListProperties(userWithRole(1, models.RoleOwner), PropertyListFilter{Limit: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
		assert.Equal(t, uint(1), f.properties.lastFilter.ScopeOwnerID)
	})

	t.Run("nil user lists without scope", func(t *testing.T) {
		f := newFixture()
		f.seedProperty(uintPtr(1), nil)
		f.seedProperty(uintPtr(2), nil)

		_, total, err := f.service.ListProperties(nil, PropertyListFilter{Limit: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Zero(t, f.properties.lastFilter.ScopeOwnerID)
		assert.Zero(t, f.properties.lastFilter.ScopeManagerID)
	})

	t.Run("occupancy rollup is attached", func(t *testing.T) {
		f := newFixture()
		p := f.seedProperty(nil, nil)
		f.properties.stats[p.ID] = repositories.OccupancyStats{
			TotalUnits:     4,
			OccupiedUnits:  3,
			PendingKyc:     2,
			MonthlyRevenue: 120000,
		}

		view, err := f.service.GetProperty(userWithRole(1, models.RoleViewer), p.ID)

		require.NoError(t, err)
		assert.Equal(t, 0.75, view.Occupancy.OccupancyRate)
		assert.Equal(t, int64(2), view.Occupancy.PendingKyc)
		assert.Equal(t, 120000.0, view.Occupancy.MonthlyRevenue)
	})

	t.Run("patch merges only provided fields", func(t *testing.T) {
		f := newFixture()
		p := f.seedProperty(nil, nil)

		city := "Nairobi"
		view, err := f.service.UpdateProperty(userWithRole(1, models.RoleViewer), p.ID, models.PropertyUpdate{City: &city})

		require.NoError(t, err)
		assert.Equal(t, "Nairobi", view.City)
		assert.Equal(t, "Sunrise Court", view.Name)
	})
}

func TestService_Units(t *testing.T) {
	t.Run("occupied is derived from the active lease", func(t *testing.T) {
		f := newFixture()
		p := f.seedProperty(nil, nil)

		occupiedUnit := models.Unit{PropertyID: p.ID, Name: "A1", RentAmount: 25000}
		vacantUnit := models.Unit{PropertyID: p.ID, Name: "A2", RentAmount: 25000}
		require.NoError(t, f.units.Create(&occupiedUnit))
		require.NoError(t, f.units.Create(&vacantUnit))
		f.properties.units[p.ID] = []models.Unit{occupiedUnit, vacantUnit}

		lease := &models.Lease{UnitID: occupiedUnit.ID, TenantID: 1, Status: models.LeaseActive}
		lease.ID = 77
		f.units.active[occupiedUnit.ID] = lease

		views, err := f.service.ListPropertyUnits(userWithRole(1, models.RoleViewer), p.ID)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.True(t, views[0].Occupied)
		assert.Equal(t, uint(77), *views[0].ActiveLeaseID)
		assert.False(t, views[1].Occupied)
		assert.Nil(t, views[1].ActiveLeaseID)
	})

	t.Run("create requires a visible property", func(t *testing.T) {
		f := newFixture()
		p := f.seedProperty(uintPtr(1), nil)

		_, err := f.service.CreateUnit(userWithRole(2, models.RoleOwner), &models.Unit{PropertyID: p.ID, Name: "B1"})
		assert.ErrorContains(t, err, "not allowed")

		view, err := f.service.CreateUnit(userWithRole(1, models.RoleOwner), &models.Unit{PropertyID: p.ID, Name: "B1"})
		require.NoError(t, err)
		assert.Equal(t, models.UnitAvailable, view.Status)
		assert.False(t, view.Occupied)
	})

	t.Run("patch keeps unset fields", func(t *testing.T) {
		f := newFixture()
		p := f.seedProperty(nil, nil)
		unit := models.Unit{PropertyID: p.ID, Name: "C3", RentAmount: 30000, Bedrooms: 2}
		require.NoError(t, f.units.Create(&unit))

		rent := 32000.0
		view, err := f.service.UpdateUnit(userWithRole(1, models.RoleViewer), unit.ID, models.UnitUpdate{RentAmount: &rent})

		require.NoError(t, err)
		assert.Equal(t, 32000.0, view.RentAmount)
		assert.Equal(t, 2, view.Bedrooms)
	})
}

func TestService_Leases(t *testing.T) {
	seed := func(f *fixture) (*models.Unit, *models.Tenant) {
		p := f.seedProperty(nil, nil)
		unit := &models.Unit{PropertyID: p.ID, Name: "A1", RentAmount: 25000}
		require.NoError(t, f.units.Create(unit))
		tenant := &models.Tenant{FullName: "Jane Wanjiku"}
		tenant.ID = 1
		f.tenants.tenants[tenant.ID] = tenant
		return unit, tenant
	}

	t.Run("create validates unit and tenant", func(t *testing.T) {
		f := newFixture()
		unit, tenant := seed(f)

		err := f.service.CreateLease(&models.Lease{UnitID: 99, TenantID: tenant.ID})
		assert.ErrorContains(t, err, "unit not found")

		err = f.service.CreateLease(&models.Lease{UnitID: unit.ID, TenantID: 99})
		assert.ErrorContains(t, err, "tenant not found")

		lease := &models.Lease{UnitID: unit.ID, TenantID: tenant.ID, RentAmount: 25000}
		require.NoError(t, f.service.CreateLease(lease))
		assert.Equal(t, models.LeaseActive, lease.Status)
	})

	t.Run("patch transitions status", func(t *testing.T) {
		f := newFixture()
		unit, tenant := seed(f)

		lease := &models.Lease{UnitID: unit.ID, TenantID: tenant.ID, RentAmount: 25000}
		require.NoError(t, f.service.CreateLease(lease))

		terminated := models.LeaseTerminated
		updated, err := f.service.UpdateLease(lease.ID, models.LeaseUpdate{Status: &terminated})
		require.NoError(t, err)
		assert.Equal(t, models.LeaseTerminated, updated.Status)

		bogus := "paused"
		_, err = f.service.UpdateLease(lease.ID, models.LeaseUpdate{Status: &bogus})
		assert.ErrorContains(t, err, "status")
	})

	t.Run("unknown lease is not found", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.GetLease(404)
		assert.ErrorContains(t, err, "lease not found")
	})
}
