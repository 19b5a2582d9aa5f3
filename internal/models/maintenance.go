package models

import (
	"time"

	"gorm.io/gorm"
)

// Maintenance priorities and statuses.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	MaintOpen       = "open"
	MaintInProgress = "in_progress"
	MaintClosed     = "closed"
)

type MaintenanceRequest struct {
	gorm.Model
	PropertyID   uint       `gorm:"not null;index"`
	UnitID       *uint      `gorm:"index"`
	TenantID     *uint      `gorm:"index"`
	Title        string     `gorm:"size:255;not null"`
	Description  string     `gorm:"type:text"`
	Priority     string     `gorm:"size:20;not null;default:'medium'"`
	Status       string     `gorm:"size:20;not null;default:'open'"`
	ReportedOn   time.Time  `gorm:"type:date;not null"`
	ResolvedOn   *time.Time `gorm:"type:date"`
	AssignedToID *uint
	Notes        string `gorm:"type:text"`
}

// MaintenanceUpdate carries the optional fields of a maintenance patch.
type MaintenanceUpdate struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Priority     *string    `json:"priority"`
	Status       *string    `json:"status"`
	ResolvedOn   *time.Time `json:"resolved_on"`
	AssignedToID *uint      `json:"assigned_to_id"`
	Notes        *string    `json:"notes"`
}

// ApplyTo merges the provided fields into the request.
func (u *MaintenanceUpdate) ApplyTo(r *MaintenanceRequest) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.ResolvedOn != nil {
		r.ResolvedOn = u.ResolvedOn
	}
	if u.AssignedToID != nil {
		r.AssignedToID = u.AssignedToID
	}
	if u.Notes != nil {
		r.Notes = *u.Notes
	}
}
