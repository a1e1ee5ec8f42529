package repository

import (
	"context"

	"nakliye/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingFilter narrows a listing query. Zero values mean "any".
type ListingFilter struct {
	CompanyID       *uuid.UUID
	FreightType     string
	OriginCity      string
	DestinationCity string
	Search          string // LIKE pattern over search_text
	ActiveOnly      bool
	Page            int
	Limit           int
}

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	Update(ctx context.Context, listing *model.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]model.Listing, int64, error)
	CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return GetDB(ctx, r.db).Create(listing).Error
}

func (r *listingRepository) Update(ctx context.Context, listing *model.Listing) error {
	return GetDB(ctx, r.db).Omit("Company").Save(listing).Error
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Listing{}).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	if err := GetDB(ctx, r.db).Preload("Company").First(&listing, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]model.Listing, int64, error) {
	var listings []model.Listing
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.CompanyID != nil {
			db = db.Where("company_id = ?", *filter.CompanyID)
		}
		if filter.FreightType != "" {
			db = db.Where("freight_type = ?", filter.FreightType)
		}
		if filter.OriginCity != "" {
			db = db.Where("origin_city = ?", filter.OriginCity)
		}
		if filter.DestinationCity != "" {
			db = db.Where("destination_city = ?", filter.DestinationCity)
		}
		if filter.Search != "" {
			db = db.Where("search_text LIKE ?", filter.Search)
		}
		if filter.ActiveOnly {
			db = db.Where("is_active = ?", true)
		}
		return db
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Listing{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Scopes(scope).Preload("Company").Order("created_at DESC"), filter.Page, filter.Limit).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&model.Listing{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Count(&n).Error
	return n, err
}
