package models

import (
	"time"

	"gorm.io/gorm"
)

// Lease statuses.
const (
	LeaseDraft      = "draft"
	LeaseActive     = "active"
	LeaseTerminated = "terminated"
	LeaseExpired    = "expired"
)

type Lease struct {
	gorm.Model
	UnitID        uint       `gorm:"not null;index"`
	TenantID      uint       `gorm:"not null;index"`
	StartDate     time.Time  `gorm:"type:date;not null"`
	EndDate       *time.Time `gorm:"type:date"`
	RentAmount    float64    `gorm:"type:numeric(12,2);not null"`
	DepositAmount float64    `gorm:"type:numeric(12,2)"`
	PaymentDay    int
	Status        string `gorm:"size:20;not null;default:'draft'"`
	Notes         string `gorm:"type:text"`

	Invoices []RentInvoice `gorm:"constraint:OnDelete:CASCADE"`
}

// LeaseUpdate carries the optional fields of a lease patch.
type LeaseUpdate struct {
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	RentAmount    *float64   `json:"rent_amount"`
	DepositAmount *float64   `json:"deposit_amount"`
	PaymentDay    *int       `json:"payment_day"`
	Status        *string    `json:"status"`
	Notes         *string    `json:"notes"`
}

// ApplyTo merges the provided fields into the lease.
func (u *LeaseUpdate) ApplyTo(l *Lease) {
	if u.StartDate != nil {
		l.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		l.EndDate = u.EndDate
	}
	if u.RentAmount != nil {
		l.RentAmount = *u.RentAmount
	}
	if u.DepositAmount != nil {
		l.DepositAmount = *u.DepositAmount
	}
	if u.PaymentDay != nil {
		l.PaymentDay = *u.PaymentDay
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.Notes != nil {
		l.Notes = *u.Notes
	}
}
