package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipPlan is a paid tier a company can be assigned to.
type MembershipPlan struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"price"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'TRY'" json:"currency"`
	DurationDays int             `gorm:"not null;default:30" json:"duration_days"`
	ListingLimit int             `gorm:"not null;default:0" json:"listing_limit"` // 0 = unlimited
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	SortOrder    int             `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
