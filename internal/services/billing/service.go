// Package billing issues rent invoices under leases and reconciles payments
// against them.
package billing

import (
	"time"

	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"
	"estates/internal/validation"

	"github.com/google/uuid"
)

// InvoiceInput carries the fields of a new rent invoice.
type InvoiceInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	DueDate     time.Time
	AmountDue   float64
	Notes       string
}

// PaymentInput carries the fields of a new payment record. Reference defaults
// to a generated uuid when omitted.
type PaymentInput struct {
	InvoiceID    uint
	Amount       float64
	PaidOn       time.Time
	Method       string
	Reference    string
	ReceivedByID *uint
	Notes        string
}

type Service interface {
	CreateInvoice(leaseID uint, input InvoiceInput) (*models.RentInvoice, error)
	GetInvoice(id uint) (*models.RentInvoice, error)
	UpdateInvoice(id uint, update models.RentInvoiceUpdate) (*models.RentInvoice, error)
	RecordPayment(input PaymentInput) (*models.Payment, *models.RentInvoice, error)
}

type service struct {
	leaseRepo repositories.LeaseRepository
	now       func() time.Time
}

// NewService creates a new billing Service.
func NewService(leaseRepo repositories.LeaseRepository) Service {
	return &service{leaseRepo: leaseRepo, now: time.Now}
}

func (s *service) CreateInvoice(leaseID uint, input InvoiceInput) (*models.RentInvoice, error) {
	if _, err := s.leaseRepo.GetByID(leaseID); err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "lease not found")
	}

	v := validation.New()
	v.NonNegative("amount_due", input.AmountDue)
	v.Check(!input.PeriodStart.IsZero(), "period_start", "is required")
	v.Check(!input.PeriodEnd.IsZero(), "period_end", "is required")
	v.Check(!input.DueDate.IsZero(), "due_date", "is required")
	if !v.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}

	invoice := &models.RentInvoice{
		LeaseID:     leaseID,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		DueDate:     input.DueDate,
		AmountDue:   models.RoundAmount(input.AmountDue),
		AmountPaid:  0,
		Status:      models.InvoicePending,
		Notes:       input.Notes,
	}
	if err := s.leaseRepo.CreateInvoice(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *service) GetInvoice(id uint) (*models.RentInvoice, error) {
	invoice, err := s.leaseRepo.GetInvoice(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "invoice not found")
	}
	return invoice, nil
}

func (s *service) UpdateInvoice(id uint, update models.RentInvoiceUpdate) (*models.RentInvoice, error) {
	invoice, err := s.leaseRepo.GetInvoice(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "invoice not found")
	}

	if update.Status != nil {
		v := validation.New()
		v.OneOf("status", *update.Status,
			models.InvoicePending, models.InvoicePartial, models.InvoicePaid, models.InvoiceOverdue)
		if !v.Valid() {
			return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
		}
	}

	update.ApplyTo(invoice)
	if err := s.leaseRepo.UpdateInvoice(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *service) RecordPayment(input PaymentInput) (*models.Payment, *models.RentInvoice, error) {
	if _, err := s.leaseRepo.GetInvoice(input.InvoiceID); err != nil {
		return nil, nil, apperrors.New(apperrors.ErrNotFound.Code, "invoice not found")
	}

	v := validation.New()
	v.NonNegative("amount", input.Amount)
	v.OneOf("method", input.Method,
		models.PayCash, models.PayMobileMoney, models.PayBankTransfer, models.PayCheque, models.PayOther)
	if !v.Valid() {
		return nil, nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}

	if input.Method == "" {
		input.Method = models.PayCash
	}
	if input.Reference == "" {
		input.Reference = uuid.NewString()
	}
	if input.PaidOn.IsZero() {
		input.PaidOn = s.now()
	}

	payment := &models.Payment{
		InvoiceID:    input.InvoiceID,
		Amount:       models.RoundAmount(input.Amount),
		PaidOn:       input.PaidOn,
		Method:       input.Method,
		Reference:    input.Reference,
		ReceivedByID: input.ReceivedByID,
		Notes:        input.Notes,
	}

	invoice, err := s.leaseRepo.RecordPayment(payment)
	if err != nil {
		return nil, nil, err
	}
	return payment, invoice, nil
}
