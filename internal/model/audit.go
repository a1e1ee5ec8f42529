package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionRegisterCompany = "REGISTER_COMPANY"
	ActionUpdateCompany   = "UPDATE_COMPANY"
	ActionSetCompanyState = "SET_COMPANY_STATUS"
	ActionAssignPlan      = "ASSIGN_MEMBERSHIP"

	ActionCreateListing = "CREATE_LISTING"
	ActionUpdateListing = "UPDATE_LISTING"
	ActionDeleteListing = "DELETE_LISTING"
	ActionToggleListing = "TOGGLE_LISTING"

	ActionCreateOffer  = "CREATE_OFFER"
	ActionRespondOffer = "RESPOND_OFFER"

	ActionCreateNote = "CREATE_COMPANY_NOTE"
	ActionUpdateNote = "UPDATE_COMPANY_NOTE"
	ActionDeleteNote = "DELETE_COMPANY_NOTE"

	ActionCreatePlan = "CREATE_MEMBERSHIP_PLAN"
	ActionUpdatePlan = "UPDATE_MEMBERSHIP_PLAN"
	ActionDeletePlan = "DELETE_MEMBERSHIP_PLAN"

	ActionCreateAnnouncement = "CREATE_ANNOUNCEMENT"
	ActionUpdateAnnouncement = "UPDATE_ANNOUNCEMENT"
	ActionDeleteAnnouncement = "DELETE_ANNOUNCEMENT"

	ActionCreateSlide = "CREATE_HERO_SLIDE"
	ActionUpdateSlide = "UPDATE_HERO_SLIDE"
	ActionDeleteSlide = "DELETE_HERO_SLIDE"

	ActionCreateContact = "CREATE_DIRECTORY_CONTACT"
	ActionUpdateContact = "UPDATE_DIRECTORY_CONTACT"
	ActionDeleteContact = "DELETE_DIRECTORY_CONTACT"
)

// AuditLog tracks who changed what and when.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil for system actions
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
