package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company moderation states.
const (
	CompanyPending   = "pending"
	CompanyApproved  = "approved"
	CompanySuspended = "suspended"
)

// Company is a freight company or carrier registered on the platform.
type Company struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	TaxNumber     string    `gorm:"type:varchar(20)" json:"tax_number"`
	TaxOffice     string    `gorm:"type:varchar(100)" json:"tax_office"`
	ContactPerson string    `gorm:"type:varchar(255)" json:"contact_person"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	Website       string    `gorm:"type:varchar(255)" json:"website"`
	Description   string    `gorm:"type:text" json:"description"`

	Country     string `gorm:"type:varchar(2)" json:"country"`
	City        string `gorm:"type:varchar(100);index" json:"city"`
	District    string `gorm:"type:varchar(100)" json:"district"`
	FullAddress string `gorm:"type:text" json:"full_address"`

	WorkingRoutes []string `gorm:"serializer:json;type:jsonb" json:"working_routes"`
	Status        string   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	MembershipPlanID    *uuid.UUID      `gorm:"type:uuid;index" json:"membership_plan_id"`
	MembershipPlan      *MembershipPlan `gorm:"foreignKey:MembershipPlanID" json:"membership_plan,omitempty"`
	MembershipExpiresAt *time.Time      `json:"membership_expires_at"`

	SearchText string         `gorm:"type:text" json:"-"` // folded name/city for search
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CompanyNote is an internal admin note attached to a company.
type CompanyNote struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	Company   *Company   `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  *uuid.UUID `gorm:"type:uuid" json:"author_id"`
	Author    *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
