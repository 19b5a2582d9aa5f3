// Package kyc runs the tenant verification workflow: invites, document
// capture sessions, scored document submission and the review decision.
package kyc

import (
	"fmt"
	"log"
	"strings"
	"time"

	"estates/internal/config"
	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"
	"estates/internal/utils"
)

// SessionResult pairs the persisted session with the link handed to the tenant.
type SessionResult struct {
	Session   *models.TenantKycSession
	VerifyURL string
}

type Service interface {
	Invite(tenantID uint, email string, expiryHours int, actor *models.User) (*models.TenantInvite, error)
	OpenSession(tenantID uint, expiryHours int) (*SessionResult, error)
	SubmitDocument(tenantID uint, docType, fileURL string, scoreValue int) (*models.Tenant, *models.TenantDocument, error)
	RecordDecision(tenantID uint, newStatus, reason string, reviewer *models.User) (*models.Tenant, error)
	ReviewDocument(documentID uint, status string, reviewer *models.User) (*models.TenantDocument, error)
}

type service struct {
	tenantRepo repositories.TenantRepository
	auditRepo  repositories.AuditRepository
	settings   *config.Settings
	now        func() time.Time
}

// NewService creates a new kyc Service.
func NewService(tenantRepo repositories.TenantRepository, auditRepo repositories.AuditRepository, settings *config.Settings) Service {
	return &service{
		tenantRepo: tenantRepo,
		auditRepo:  auditRepo,
		settings:   settings,
		now:        time.Now,
	}
}

// SessionURL returns the tenant-facing capture link for a session token.
func SessionURL(frontendBase, token string) string {
	return fmt.Sprintf("%s/kyc/%s", strings.TrimRight(frontendBase, "/"), token)
}

func (s *service) Invite(tenantID uint, email string, expiryHours int, actor *models.User) (*models.TenantInvite, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "tenant not found")
	}

	if email == "" {
		email = tenant.Email
	}
	if expiryHours <= 0 {
		expiryHours = 24
	}

	now := s.now()
	invite := &models.TenantInvite{
		TenantID:  tenant.ID,
		Email:     email,
		Token:     utils.MustGenerateSecureToken(),
		SentAt:    now,
		ExpiresAt: now.Add(time.Duration(expiryHours) * time.Hour),
	}
	if err := s.tenantRepo.CreateInvite(invite); err != nil {
		return nil, err
	}

	s.audit(&models.AuditLog{
		ActorID:     actorID(actor),
		TenantID:    &tenant.ID,
		Action:      models.ActionInvite,
		EntityType:  "tenant_invite",
		EntityID:    invite.ID,
		Description: fmt.Sprintf("verification invite sent to %s", email),
	})

	return invite, nil
}

func (s *service) OpenSession(tenantID uint, expiryHours int) (*SessionResult, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "tenant not found")
	}

	if expiryHours <= 0 {
		expiryHours = 24
	}

	session := &models.TenantKycSession{
		TenantID:  tenant.ID,
		Token:     utils.MustGenerateSecureToken(),
		Status:    models.SessionOpen,
		ExpiresAt: s.now().Add(time.Duration(expiryHours) * time.Hour),
	}
	if err := s.tenantRepo.CreateSession(session); err != nil {
		return nil, err
	}

	return &SessionResult{
		Session:   session,
		VerifyURL: SessionURL(s.settings.FrontendBaseURL, session.Token),
	}, nil
}

func (s *service) SubmitDocument(tenantID uint, docType, fileURL string, scoreValue int) (*models.Tenant, *models.TenantDocument, error) {
	if _, err := s.tenantRepo.GetByID(tenantID); err != nil {
		return nil, nil, apperrors.New(apperrors.ErrNotFound.Code, "tenant not found")
	}

	now := s.now()
	doc := &models.TenantDocument{
		TenantID:    tenantID,
		DocType:     docType,
		FileURL:     fileURL,
		Status:      models.DocStatusPending,
		ScoreValue:  scoreValue,
		SubmittedAt: now,
	}

	tenant, err := s.tenantRepo.SubmitDocument(doc, now)
	if err != nil {
		return nil, nil, err
	}
	return tenant, doc, nil
}

func (s *service) RecordDecision(tenantID uint, newStatus, reason string, reviewer *models.User) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.RecordDecision(tenantID, newStatus, reason, reviewer.ID, s.now())
	if err != nil {
		return nil, err
	}

	s.audit(&models.AuditLog{
		ActorID:     &reviewer.ID,
		TenantID:    &tenant.ID,
		Action:      decisionAction(newStatus),
		EntityType:  "tenant",
		EntityID:    tenant.ID,
		Description: fmt.Sprintf("kyc status set to %s", newStatus),
	})

	return tenant, nil
}

func (s *service) ReviewDocument(documentID uint, status string, reviewer *models.User) (*models.TenantDocument, error) {
	return s.tenantRepo.ReviewDocument(documentID, status, reviewer.ID, s.now())
}

// audit failures never fail the request that produced them.
func (s *service) audit(entry *models.AuditLog) {
	if s.auditRepo == nil {
		return
	}
	if err := s.auditRepo.Append(entry); err != nil {
		log.Printf("failed to append audit entry for tenant %v: %v", entry.TenantID, err)
	}
}

func decisionAction(status string) string {
	switch status {
	case models.KycApproved:
		return models.ActionApprove
	case models.KycDeclined:
		return models.ActionDecline
	default:
		return models.ActionUpdate
	}
}

func actorID(actor *models.User) *uint {
	if actor == nil {
		return nil
	}
	return &actor.ID
}
