package kyc

import (
	"testing"
	"time"

	"estates/internal/config"
	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenantRepo struct {
	tenants  map[uint]*models.Tenant
	docs     map[uint]*models.TenantDocument
	invites  []*models.TenantInvite
	sessions []*models.TenantKycSession
	audits   []models.TenantKycAudit
	nextID   uint
}

func newFakeTenantRepo(tenants ...*models.Tenant) *fakeTenantRepo {
	r := &fakeTenantRepo{
		tenants: make(map[uint]*models.Tenant),
		docs:    make(map[uint]*models.TenantDocument),
	}
	for _, t := range tenants {
		r.tenants[t.ID] = t
	}
	return r
}

func (r *fakeTenantRepo) Create(tenant *models.Tenant) error {
	r.nextID++
	tenant.ID = r.nextID
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(id uint) (*models.Tenant, error) {
	if t, ok := r.tenants[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeTenantRepo) List(filter repositories.TenantFilter) ([]models.Tenant, int64, error) {
	out := make([]models.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTenantRepo) Update(tenant *models.Tenant) error {
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) PendingDocumentCounts(tenantIDs []uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (r *fakeTenantRepo) SubmitDocument(doc *models.TenantDocument, now time.Time) (*models.Tenant, error) {
	tenant, ok := r.tenants[doc.TenantID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	r.nextID++
	doc.ID = r.nextID
	r.docs[doc.ID] = doc
	tenant.ApplyDocument(doc.ScoreValue, now)
	return tenant, nil
}

func (r *fakeTenantRepo) RecordDecision(tenantID uint, newStatus, reason string, reviewerID uint, now time.Time) (*models.Tenant, error) {
	tenant, ok := r.tenants[tenantID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	previous := tenant.RecordDecision(newStatus, reviewerID, now)
	r.audits = append(r.audits, models.TenantKycAudit{
		TenantID:       tenantID,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		ChangedByID:    &reviewerID,
		Reason:         reason,
	})
	return tenant, nil
}

func (r *fakeTenantRepo) ReviewDocument(documentID uint, status string, reviewerID uint, now time.Time) (*models.TenantDocument, error) {
	doc, ok := r.docs[documentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	doc.Status = status
	doc.ReviewedByID = &reviewerID
	doc.ReviewedAt = &now
	return doc, nil
}

func (r *fakeTenantRepo) CreateInvite(invite *models.TenantInvite) error {
	r.nextID++
	invite.ID = r.nextID
	r.invites = append(r.invites, invite)
	return nil
}

func (r *fakeTenantRepo) CreateSession(session *models.TenantKycSession) error {
	r.nextID++
	session.ID = r.nextID
	r.sessions = append(r.sessions, session)
	return nil
}

type fakeAuditRepo struct {
	entries []*models.AuditLog
}

func (r *fakeAuditRepo) Append(entry *models.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func newTestService(repo *fakeTenantRepo, audit *fakeAuditRepo) *service {
	return &service{
		tenantRepo: repo,
		auditRepo:  audit,
		settings:   &config.Settings{FrontendBaseURL: "https://app.example.com"},
		now:        time.Now,
	}
}

func seedTenant(id uint) *models.Tenant {
	t := &models.Tenant{
		FullName:  "Jane Wanjiku",
		Email:     "jane@example.com",
		Phone:     "+254700000001",
		KycStatus: models.KycPending,
	}
	t.ID = id
	return t
}

func TestService_Invite(t *testing.T) {
	t.Run("creates invite and audit entry", func(t *testing.T) {
		repo := newFakeTenantRepo(seedTenant(1))
		audit := &fakeAuditRepo{}
		s := newTestService(repo, audit)
		actor := &models.User{Role: models.RoleManager}
		actor.ID = 9

		invite, err := s.Invite(1, "", 48, actor)

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", invite.Email)
		assert.NotEmpty(t, invite.Token)
		assert.WithinDuration(t, time.Now().Add(48*time.Hour), invite.ExpiresAt, time.Minute)

		require.Len(t, audit.entries, 1)
		assert.Equal(t, models.ActionInvite, audit.entries[0].Action)
		assert.Equal(t, uint(9), *audit.entries[0].ActorID)
	})

	t.Run("defaults expiry to 24 hours", func(t *testing.T) {
		repo := newFakeTenantRepo(seedTenant(1))
		s := newTestService(repo, &fakeAuditRepo{})

		invite, err := s.Invite(1, "other@example.com", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, "other@example.com", invite.Email)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), invite.ExpiresAt, time.Minute)
	})

	t.Run("unknown tenant is not found", func(t *testing.T) {
		s := newTestService(newFakeTenantRepo(), &fakeAuditRepo{})
		_, err := s.Invite(42, "", 24, nil)
		assert.ErrorContains(t, err, "tenant not found")
	})
}

func TestService_OpenSession(t *testing.T) {
	repo := newFakeTenantRepo(seedTenant(1))
	s := newTestService(repo, &fakeAuditRepo{})

	res, err := s.OpenSession(1, 0)

	require.NoError(t, err)
	assert.Equal(t, models.SessionOpen, res.Session.Status)
	assert.Equal(t, "https://app.example.com/kyc/"+res.Session.Token, res.VerifyURL)

	_, err = s.OpenSession(7, 0)
	assert.ErrorContains(t, err, "tenant not found")
}

func TestService_SubmitDocument(t *testing.T) {
	t.Run("accumulates score and advances pending tenant", func(t *testing.T) {
		repo := newFakeTenantRepo(seedTenant(1))
		s := newTestService(repo, &fakeAuditRepo{})

		updated, doc, err := s.SubmitDocument(1, models.DocTypeIDFront, "https://files/id.jpg", 40)
		require.NoError(t, err)
		assert.Equal(t, 40, updated.KycScore)
		assert.Equal(t, models.KycSubmitted, updated.KycStatus)
		assert.Equal(t, models.DocStatusPending, doc.Status)

		updated, _, err = s.SubmitDocument(1, models.DocTypeSelfie, "https://files/selfie.jpg", 30)
		require.NoError(t, err)
		assert.Equal(t, 70, updated.KycScore)
		assert.Equal(t, models.KycSubmitted, updated.KycStatus)
	})

	t.Run("reviewer-set status is left alone", func(t *testing.T) {
		tenant := seedTenant(1)
		tenant.KycStatus = models.KycConditional
		repo := newFakeTenantRepo(tenant)
		s := newTestService(repo, &fakeAuditRepo{})

		updated, _, err := s.SubmitDocument(1, models.DocTypeSupporting, "https://files/doc.pdf", 10)
		require.NoError(t, err)
		assert.Equal(t, models.KycConditional, updated.KycStatus)
	})

	t.Run("unknown tenant is not found", func(t *testing.T) {
		s := newTestService(newFakeTenantRepo(), &fakeAuditRepo{})
		_, _, err := s.SubmitDocument(5, models.DocTypeSelfie, "u", 1)
		assert.ErrorContains(t, err, "tenant not found")
	})
}

func TestService_RecordDecision(t *testing.T) {
	repo := newFakeTenantRepo(seedTenant(1))
	audit := &fakeAuditRepo{}
	s := newTestService(repo, audit)
	reviewer := &models.User{Role: models.RoleOwner}
	reviewer.ID = 3

	_, _, err := s.SubmitDocument(1, models.DocTypeIDFront, "https://files/id.jpg", 30)
	require.NoError(t, err)

	tenant, err := s.RecordDecision(1, models.KycApproved, "documents check out", reviewer)

	require.NoError(t, err)
	assert.Equal(t, models.KycApproved, tenant.KycStatus)
	assert.Equal(t, 30, tenant.KycScore)
	assert.Equal(t, uint(3), *tenant.KycReviewedByID)
	assert.NotNil(t, tenant.KycReviewedAt)

	require.Len(t, repo.audits, 1)
	assert.Equal(t, models.KycSubmitted, repo.audits[0].PreviousStatus)
	assert.Equal(t, models.KycApproved, repo.audits[0].NewStatus)
	assert.Equal(t, "documents check out", repo.audits[0].Reason)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.ActionApprove, audit.entries[0].Action)

	_, err = s.RecordDecision(1, models.KycDeclined, "changed after review", reviewer)
	require.NoError(t, err)
	assert.Equal(t, models.ActionDecline, audit.entries[1].Action)
}

func TestService_ReviewDocument(t *testing.T) {
	tenant := seedTenant(1)
	repo := newFakeTenantRepo(tenant)
	s := newTestService(repo, &fakeAuditRepo{})
	reviewer := &models.User{Role: models.RoleManager}
	reviewer.ID = 2

	_, doc, err := s.SubmitDocument(1, models.DocTypeIDFront, "https://files/id.jpg", 40)
	require.NoError(t, err)

	reviewed, err := s.ReviewDocument(doc.ID, models.DocStatusAccepted, reviewer)
	require.NoError(t, err)
	assert.Equal(t, models.DocStatusAccepted, reviewed.Status)
	assert.Equal(t, uint(2), *reviewed.ReviewedByID)
}
