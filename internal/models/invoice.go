package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Invoice statuses. Overdue is never derived here; it is set externally
// (a time-based sweep owns that transition).
const (
	InvoicePending = "pending"
	InvoicePartial = "partial"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Payment methods.
const (
	PayCash         = "cash"
	PayMobileMoney  = "mobile_money"
	PayBankTransfer = "bank_transfer"
	PayCheque       = "cheque"
	PayOther        = "other"
)

type RentInvoice struct {
	gorm.Model
	LeaseID     uint      `gorm:"not null;index"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	DueDate     time.Time `gorm:"type:date;not null"`
	AmountDue   float64   `gorm:"type:numeric(12,2);not null"`
	AmountPaid  float64   `gorm:"type:numeric(12,2);not null;default:0"`
	Status      string    `gorm:"size:20;not null;default:'pending'"`
	Notes       string    `gorm:"type:text"`

	Payments []Payment `gorm:"constraint:OnDelete:CASCADE"`
}

// Payment is immutable once created. Recording one re-derives the parent
// invoice's amount_paid and status; no other code path touches those fields.
type Payment struct {
	gorm.Model
	InvoiceID    uint      `gorm:"not null;index"`
	Amount       float64   `gorm:"type:numeric(12,2);not null"`
	PaidOn       time.Time `gorm:"type:date;not null"`
	Method       string    `gorm:"size:20;not null;default:'cash'"`
	Reference    string    `gorm:"size:120"`
	ReceivedByID *uint
	Notes        string `gorm:"type:text"`
}

// RoundAmount normalizes a monetary value to 2 fractional digits.
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

// DeriveInvoiceStatus computes the settlement status from the accumulated
// amount paid against the stored due amount.
func DeriveInvoiceStatus(amountPaid, amountDue float64) string {
	switch {
	case amountPaid >= amountDue:
		return InvoicePaid
	case amountPaid > 0:
		return InvoicePartial
	default:
		return InvoicePending
	}
}

// ApplyPayment folds a payment amount into the invoice accumulator and
// re-derives the status. Callers must run this inside the same transaction
// that inserts the payment row, with the invoice row locked.
func (i *RentInvoice) ApplyPayment(amount float64) {
	i.AmountPaid = RoundAmount(i.AmountPaid + amount)
	i.Status = DeriveInvoiceStatus(i.AmountPaid, i.AmountDue)
}

// RentInvoiceUpdate carries the optional fields of an invoice patch. The
// overdue status arrives through here, never through derivation.
type RentInvoiceUpdate struct {
	DueDate *time.Time `json:"due_date"`
	Status  *string    `json:"status"`
	Notes   *string    `json:"notes"`
}

// ApplyTo merges the provided fields into the invoice.
func (u *RentInvoiceUpdate) ApplyTo(i *RentInvoice) {
	if u.DueDate != nil {
		i.DueDate = *u.DueDate
	}
	if u.Status != nil {
		i.Status = *u.Status
	}
	if u.Notes != nil {
		i.Notes = *u.Notes
	}
}
