package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is a platform news item shown on the public site.
type Announcement struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Content     string         `gorm:"type:text" json:"content"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedBy   *uuid.UUID     `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// HeroSlide is one banner of the home page carousel. Layout-specific fields are
// stored in Content as JSON.
type HeroSlide struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SlideType string    `gorm:"type:varchar(30);not null" json:"slide_type"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	SortOrder int       `gorm:"default:0;index" json:"order"`
	Content   string    `gorm:"type:jsonb;not null;default:'{}'" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DirectoryContact is an entry of the public logistics directory
// (ports, customs brokers, terminals and the like).
type DirectoryContact struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Category    string         `gorm:"type:varchar(100);index" json:"category"`
	Phone       string         `gorm:"type:varchar(30)" json:"phone"`
	Email       string         `gorm:"type:varchar(255)" json:"email"`
	Website     string         `gorm:"type:varchar(255)" json:"website"`
	Country     string         `gorm:"type:varchar(2)" json:"country"`
	City        string         `gorm:"type:varchar(100);index" json:"city"`
	District    string         `gorm:"type:varchar(100)" json:"district"`
	FullAddress string         `gorm:"type:text" json:"full_address"`
	Notes       string         `gorm:"type:text" json:"notes"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	SearchText  string         `gorm:"type:text" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
