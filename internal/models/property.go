package models

import "gorm.io/gorm"

// Property types.
const (
	PropertyResidential = "residential"
	PropertyCommercial  = "commercial"
	PropertyMixedUse    = "mixed_use"
	PropertyLand        = "land"
)

type Property struct {
	gorm.Model
	Name         string `gorm:"size:255;not null"`
	Code         string `gorm:"size:50;uniqueIndex"`
	PropertyType string `gorm:"size:20;not null;default:'residential'"`
	AddressLine1 string `gorm:"size:255"`
	AddressLine2 string `gorm:"size:255"`
	City         string `gorm:"size:120"`
	Country      string `gorm:"size:120"`
	OwnerID      *uint
	ManagerID    *uint
	Notes        string `gorm:"type:text"`

	Units []Unit `gorm:"constraint:OnDelete:CASCADE"`
}

// VisibleTo applies the role scoping rule: owners see their own properties,
// managers see unassigned-or-own plus owned, every other role sees everything.
func (p *Property) VisibleTo(user *User) bool {
	switch user.Role {
	case RoleOwner:
		return p.OwnerID != nil && *p.OwnerID == user.ID
	case RoleManager:
		if p.ManagerID == nil || *p.ManagerID == user.ID {
			return true
		}
		return p.OwnerID != nil && *p.OwnerID == user.ID
	default:
		return true
	}
}

// PropertyUpdate carries the optional fields of a property patch.
type PropertyUpdate struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	PropertyType *string `json:"property_type"`
	AddressLine1 *string `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	OwnerID      *uint   `json:"owner_id"`
	ManagerID    *uint   `json:"manager_id"`
	Notes        *string `json:"notes"`
}

// ApplyTo merges the provided fields into the property.
func (u *PropertyUpdate) ApplyTo(p *Property) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Code != nil {
		p.Code = *u.Code
	}
	if u.PropertyType != nil {
		p.PropertyType = *u.PropertyType
	}
	if u.AddressLine1 != nil {
		p.AddressLine1 = *u.AddressLine1
	}
	if u.AddressLine2 != nil {
		p.AddressLine2 = *u.AddressLine2
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.Country != nil {
		p.Country = *u.Country
	}
	if u.OwnerID != nil {
		p.OwnerID = u.OwnerID
	}
	if u.ManagerID != nil {
		p.ManagerID = u.ManagerID
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
}
