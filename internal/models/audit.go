package models

import "gorm.io/gorm"

// Audit actions.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionApprove  = "approve"
	ActionDecline  = "decline"
	ActionOverride = "override"
	ActionInvite   = "invite"
	ActionLogin    = "login"
	ActionOther    = "other"
)

// AuditLog is a generic append-only action ledger keyed by actor and entity.
type AuditLog struct {
	gorm.Model
	ActorID     *uint
	TenantID    *uint
	PropertyID  *uint
	UnitID      *uint
	Action      string `gorm:"size:20;not null"`
	EntityType  string `gorm:"size:120;not null"`
	EntityID    uint
	Description string `gorm:"type:text"`
}
