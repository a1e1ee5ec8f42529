package repository

import (
	"context"

	"nakliye/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferFilter narrows an offer query.
type OfferFilter struct {
	SenderCompanyID   *uuid.UUID
	ReceiverCompanyID *uuid.UUID
	ListingID         *uuid.UUID
	Status            string
	Page              int
	Limit             int
}

type OfferRepository interface {
	Create(ctx context.Context, offer *model.PriceOffer) error
	Update(ctx context.Context, offer *model.PriceOffer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PriceOffer, error)
	List(ctx context.Context, filter OfferFilter) ([]model.PriceOffer, int64, error)
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *model.PriceOffer) error {
	return GetDB(ctx, r.db).Create(offer).Error
}

func (r *offerRepository) Update(ctx context.Context, offer *model.PriceOffer) error {
	return GetDB(ctx, r.db).Omit("SenderCompany", "ReceiverCompany", "Listing").Save(offer).Error
}

func (r *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PriceOffer, error) {
	var offer model.PriceOffer
	if err := GetDB(ctx, r.db).
		Preload("SenderCompany").
		Preload("ReceiverCompany").
		First(&offer, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &offer, nil
}

func (r *offerRepository) List(ctx context.Context, filter OfferFilter) ([]model.PriceOffer, int64, error) {
	var offers []model.PriceOffer
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.SenderCompanyID != nil {
			db = db.Where("sender_company_id = ?", *filter.SenderCompanyID)
		}
		if filter.ReceiverCompanyID != nil {
			db = db.Where("receiver_company_id = ?", *filter.ReceiverCompanyID)
		}
		if filter.ListingID != nil {
			db = db.Where("listing_id = ?", *filter.ListingID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		return db
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.PriceOffer{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Scopes(scope).
		Preload("SenderCompany").
		Preload("ReceiverCompany").
		Order("created_at DESC"), filter.Page, filter.Limit).
		Find(&offers).Error; err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}
