package repositories

import (
	"estates/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaseRepository covers leases, their invoices and payments. RecordPayment
// is the single code path allowed to mutate an invoice's amount_paid.
type LeaseRepository interface {
	Create(lease *models.Lease) error
	GetByID(id uint) (*models.Lease, error)
	List(limit int) ([]models.Lease, error)
	Update(lease *models.Lease) error

	CreateInvoice(invoice *models.RentInvoice) error
	GetInvoice(id uint) (*models.RentInvoice, error)
	UpdateInvoice(invoice *models.RentInvoice) error
	// RecordPayment inserts the payment and re-derives the invoice inside one
	// transaction with the invoice row locked, so concurrent payments against
	// the same invoice serialize instead of losing updates.
	RecordPayment(payment *models.Payment) (*models.RentInvoice, error)
}

type leaseRepository struct {
	db *gorm.DB
}

// NewLeaseRepository creates a new LeaseRepository.
func NewLeaseRepository(db *gorm.DB) LeaseRepository {
	return &leaseRepository{db: db}
}

func (r *leaseRepository) Create(lease *models.Lease) error {
	return translateError(r.db.Create(lease).Error)
}

func (r *leaseRepository) GetByID(id uint) (*models.Lease, error) {
	var lease models.Lease
	if err := r.db.First(&lease, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &lease, nil
}

func (r *leaseRepository) List(limit int) ([]models.Lease, error) {
	var leases []models.Lease
	err := r.db.Order("created_at DESC").Limit(limit).Find(&leases).Error
	if err != nil {
		return nil, translateError(err)
	}
	return leases, nil
}

func (r *leaseRepository) Update(lease *models.Lease) error {
	return translateError(r.db.Save(lease).Error)
}

func (r *leaseRepository) CreateInvoice(invoice *models.RentInvoice) error {
	return translateError(r.db.Create(invoice).Error)
}

func (r *leaseRepository) GetInvoice(id uint) (*models.RentInvoice, error) {
	var invoice models.RentInvoice
	if err := r.db.First(&invoice, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &invoice, nil
}

func (r *leaseRepository) UpdateInvoice(invoice *models.RentInvoice) error {
	return translateError(r.db.Save(invoice).Error)
}

func (r *leaseRepository) RecordPayment(payment *models.Payment) (*models.RentInvoice, error) {
	var invoice models.RentInvoice
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invoice, payment.InvoiceID).Error; err != nil {
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		invoice.ApplyPayment(payment.Amount)
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &invoice, nil
}
