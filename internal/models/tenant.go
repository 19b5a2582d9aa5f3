package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant KYC statuses.
const (
	KycPending     = "pending"
	KycSubmitted   = "submitted"
	KycApproved    = "approved"
	KycConditional = "conditional"
	KycDeclined    = "declined"
)

// Tenant document types and statuses.
const (
	DocTypeIDFront    = "id_front"
	DocTypeSelfie     = "selfie"
	DocTypeSupporting = "supporting"

	DocStatusPending  = "pending"
	DocStatusAccepted = "accepted"
	DocStatusRejected = "rejected"
)

// KYC session statuses. Completed, expired and cancelled are terminal.
const (
	SessionOpen      = "open"
	SessionCompleted = "completed"
	SessionExpired   = "expired"
	SessionCancelled = "cancelled"
)

type Tenant struct {
	gorm.Model
	FullName              string `gorm:"size:255;not null"`
	Email                 string `gorm:"size:255;uniqueIndex"`
	Phone                 string `gorm:"size:50;uniqueIndex"`
	IDNumber              string `gorm:"size:50;unique"`
	DateOfBirth           *time.Time
	Gender                string `gorm:"size:20"`
	Occupation            string `gorm:"size:255"`
	EmergencyContactName  string `gorm:"size:255"`
	EmergencyContactPhone string `gorm:"size:50"`
	Notes                 string `gorm:"type:text"`

	KycStatus       string `gorm:"size:20;not null;default:'pending'"`
	KycScore        int    `gorm:"not null;default:0"`
	KycSubmittedAt  *time.Time
	KycReviewedByID *uint
	KycReviewedAt   *time.Time
	KycOverride     bool   `gorm:"not null;default:false"`
	KycNotes        string `gorm:"type:text"`
}

// ApplyDocument folds one document submission into the tenant: the score is an
// unconditional accumulator, and a tenant still at the initial pending state
// (or with no status at all) auto-advances to submitted. Reviewer-set states
// are never touched here.
func (t *Tenant) ApplyDocument(scoreValue int, now time.Time) {
	t.KycScore += scoreValue
	if t.KycStatus == "" || t.KycStatus == KycPending {
		t.KycStatus = KycSubmitted
		t.KycSubmittedAt = &now
	}
}

// RecordDecision overwrites the KYC status and stamps the reviewer.
func (t *Tenant) RecordDecision(newStatus string, reviewerID uint, now time.Time) (previous string) {
	previous = t.KycStatus
	t.KycStatus = newStatus
	t.KycReviewedByID = &reviewerID
	t.KycReviewedAt = &now
	return previous
}

type TenantDocument struct {
	gorm.Model
	TenantID     uint   `gorm:"not null;index"`
	DocType      string `gorm:"size:20;not null"`
	FileURL      string `gorm:"size:512;not null"`
	Status       string `gorm:"size:20;not null;default:'pending'"`
	ScoreValue   int    `gorm:"not null;default:0"`
	SubmittedAt  time.Time
	ReviewedByID *uint
	ReviewedAt   *time.Time
	Notes        string `gorm:"type:text"`
}

type TenantKycSession struct {
	gorm.Model
	TenantID    uint   `gorm:"not null;index"`
	Token       string `gorm:"size:64;uniqueIndex;not null"`
	Status      string `gorm:"size:20;not null;default:'open'"`
	ExpiresAt   time.Time
	CompletedAt *time.Time
}

type TenantInvite struct {
	gorm.Model
	TenantID   uint   `gorm:"not null;index"`
	Email      string `gorm:"size:255;not null"`
	Token      string `gorm:"size:64;uniqueIndex;not null"`
	SentAt     time.Time
	AcceptedAt *time.Time
	ExpiresAt  time.Time
}

// TenantKycAudit is an append-only ledger of status transitions. Rows are
// never updated or deleted.
type TenantKycAudit struct {
	gorm.Model
	TenantID       uint   `gorm:"not null;index"`
	PreviousStatus string `gorm:"size:50"`
	NewStatus      string `gorm:"size:50"`
	ChangedByID    *uint
	Reason         string `gorm:"type:text"`
}

// PendingLikeKycStatuses are the statuses counted as "awaiting verification"
// by the directory and dashboard rollups.
var PendingLikeKycStatuses = []string{KycPending, KycSubmitted, KycConditional}

// TenantUpdate carries the optional fields of a tenant patch.
type TenantUpdate struct {
	FullName              *string `json:"full_name"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	IDNumber              *string `json:"id_number"`
	Gender                *string `json:"gender"`
	Occupation            *string `json:"occupation"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	Notes                 *string `json:"notes"`
	KycOverride           *bool   `json:"kyc_override"`
	KycNotes              *string `json:"kyc_notes"`
}

// ApplyTo merges the provided fields into the tenant.
func (u *TenantUpdate) ApplyTo(t *Tenant) {
	if u.FullName != nil {
		t.FullName = *u.FullName
	}
	if u.Email != nil {
		t.Email = *u.Email
	}
	if u.Phone != nil {
		t.Phone = *u.Phone
	}
	if u.IDNumber != nil {
		t.IDNumber = *u.IDNumber
	}
	if u.Gender != nil {
		t.Gender = *u.Gender
	}
	if u.Occupation != nil {
		t.Occupation = *u.Occupation
	}
	if u.EmergencyContactName != nil {
		t.EmergencyContactName = *u.EmergencyContactName
	}
	if u.EmergencyContactPhone != nil {
		t.EmergencyContactPhone = *u.EmergencyContactPhone
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	if u.KycOverride != nil {
		t.KycOverride = *u.KycOverride
	}
	if u.KycNotes != nil {
		t.KycNotes = *u.KycNotes
	}
}
