package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Listing is a freight advertisement ("nakliye ilanı"). Columns hold the fields every
// freight type shares; the type-specific fields live in Details as JSON.
type Listing struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Company     *Company  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	FreightType string    `gorm:"type:varchar(30);not null;index" json:"freight_type"`

	Title         string `gorm:"type:varchar(255);not null" json:"title"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
	MobilePhone   string `gorm:"type:varchar(30)" json:"mobile_phone"`
	Email         string `gorm:"type:varchar(255)" json:"email"`
	CompanyName   string `gorm:"type:varchar(255)" json:"company_name"`

	OriginCountry       string `gorm:"type:varchar(2)" json:"origin_country"`
	OriginCity          string `gorm:"type:varchar(100);index" json:"origin_city"`
	OriginDistrict      string `gorm:"type:varchar(100)" json:"origin_district"`
	DestinationCountry  string `gorm:"type:varchar(2)" json:"destination_country"`
	DestinationCity     string `gorm:"type:varchar(100);index" json:"destination_city"`
	DestinationDistrict string `gorm:"type:varchar(100)" json:"destination_district"`

	LoadingDate *time.Time `gorm:"type:date" json:"loading_date"`
	Description string     `gorm:"type:text" json:"description"`
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	Details     string     `gorm:"type:jsonb;not null;default:'{}'" json:"details"`

	SearchText string         `gorm:"type:text" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CommercialFreightDetails is the Details document of a "Ticari" listing.
type CommercialFreightDetails struct {
	CargoType        string   `json:"cargoType"`
	VehicleNeeded    string   `json:"vehicleNeeded"`
	LoadingType      string   `json:"loadingType"`
	CargoForm        string   `json:"cargoForm"`
	CargoWeight      Quantity `json:"cargoWeight"`
	CargoWeightUnit  string   `json:"cargoWeightUnit"`
	IsContinuousLoad bool     `json:"isContinuousLoad"`
}

// ResidentialMoveDetails is the Details document of an "Evden Eve" listing.
type ResidentialMoveDetails struct {
	ResidentialTransportType  string `json:"residentialTransportType"`
	ResidentialPlaceType      string `json:"residentialPlaceType"`
	ResidentialElevatorStatus string `json:"residentialElevatorStatus"`
	ResidentialFloorLevel     string `json:"residentialFloorLevel"`
}

// EmptyVehicleDetails is the Details document of a "Boş Araç" listing.
type EmptyVehicleDetails struct {
	EmptyVehicleType          string   `json:"emptyVehicleType"`
	ServiceType               string   `json:"serviceType"`
	VehicleStatedCapacity     Quantity `json:"vehicleStatedCapacity"`
	VehicleStatedCapacityUnit string   `json:"vehicleStatedCapacityUnit"`
}

// Quantity is a weight or capacity inside a Details document. It is written as a JSON
// number, unlike prices, and reads both numbers and quoted strings.
type Quantity struct {
	decimal.Decimal
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal.String()), nil
}
