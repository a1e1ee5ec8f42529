package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer states.
const (
	OfferPending  = "pending"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
)

// PriceOffer is a quote one company sends another for a route, optionally against a listing.
type PriceOffer struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderCompanyID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_company_id"`
	SenderCompany     *Company   `gorm:"foreignKey:SenderCompanyID" json:"sender_company,omitempty"`
	ReceiverCompanyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"receiver_company_id"`
	ReceiverCompany   *Company   `gorm:"foreignKey:ReceiverCompanyID" json:"receiver_company,omitempty"`
	ListingID         *uuid.UUID `gorm:"type:uuid;index" json:"listing_id"`
	Listing           *Listing   `gorm:"foreignKey:ListingID" json:"listing,omitempty"`

	OriginCountry       string `gorm:"type:varchar(2)" json:"origin_country"`
	OriginCity          string `gorm:"type:varchar(100)" json:"origin_city"`
	OriginDistrict      string `gorm:"type:varchar(100)" json:"origin_district"`
	DestinationCountry  string `gorm:"type:varchar(2)" json:"destination_country"`
	DestinationCity     string `gorm:"type:varchar(100)" json:"destination_city"`
	DestinationDistrict string `gorm:"type:varchar(100)" json:"destination_district"`

	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'TRY'" json:"currency"`
	Note        string          `gorm:"type:text" json:"note"`
	Status      string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RespondedAt *time.Time      `json:"responded_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
