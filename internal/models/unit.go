package models

import "gorm.io/gorm"

// Unit statuses. The stored status is caller-maintained; occupancy is derived
// at read time from lease state instead of trusting this field.
const (
	UnitAvailable   = "available"
	UnitOccupied    = "occupied"
	UnitMaintenance = "maintenance"
)

type Unit struct {
	gorm.Model
	PropertyID uint   `gorm:"not null;index"`
	Name       string `gorm:"size:120;not null"`
	FloorLabel string `gorm:"size:50"`
	Bedrooms   int
	Bathrooms  int
	SquareFeet int
	RentAmount float64 `gorm:"type:numeric(12,2);not null"`
	Status     string  `gorm:"size:20;not null;default:'available'"`
	Notes      string  `gorm:"type:text"`

	Leases []Lease `gorm:"constraint:OnDelete:CASCADE"`
}

// UnitUpdate carries the optional fields of a unit patch.
type UnitUpdate struct {
	Name       *string  `json:"name"`
	FloorLabel *string  `json:"floor_label"`
	Bedrooms   *int     `json:"bedrooms"`
	Bathrooms  *int     `json:"bathrooms"`
	SquareFeet *int     `json:"square_feet"`
	RentAmount *float64 `json:"rent_amount"`
	Status     *string  `json:"status"`
	Notes      *string  `json:"notes"`
}

// ApplyTo merges the provided fields into the unit.
func (u *UnitUpdate) ApplyTo(unit *Unit) {
	if u.Name != nil {
		unit.Name = *u.Name
	}
	if u.FloorLabel != nil {
		unit.FloorLabel = *u.FloorLabel
	}
	if u.Bedrooms != nil {
		unit.Bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		unit.Bathrooms = *u.Bathrooms
	}
	if u.SquareFeet != nil {
		unit.SquareFeet = *u.SquareFeet
	}
	if u.RentAmount != nil {
		unit.RentAmount = *u.RentAmount
	}
	if u.Status != nil {
		unit.Status = *u.Status
	}
	if u.Notes != nil {
		unit.Notes = *u.Notes
	}
}
