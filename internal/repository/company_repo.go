package repository

import (
	"context"

	"nakliye/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyFilter narrows a company listing. Search is a LIKE pattern over the folded
// search column.
type CompanyFilter struct {
	Status string
	City   string
	Search string
	Page   int
	Limit  int
}

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	Update(ctx context.Context, company *model.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]model.Company, int64, error)

	CreateNote(ctx context.Context, note *model.CompanyNote) error
	UpdateNote(ctx context.Context, note *model.CompanyNote) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
	FindNote(ctx context.Context, id uuid.UUID) (*model.CompanyNote, error)
	ListNotes(ctx context.Context, companyID uuid.UUID) ([]model.CompanyNote, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Create(company).Error
}

func (r *companyRepository) Update(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Omit("MembershipPlan").Save(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).Preload("MembershipPlan").First(&company, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, filter CompanyFilter) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.City != "" {
			db = db.Where("city = ?", filter.City)
		}
		if filter.Search != "" {
			db = db.Where("search_text LIKE ?", filter.Search)
		}
		return db
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Company{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Scopes(scope).Preload("MembershipPlan").Order("name ASC"), filter.Page, filter.Limit).
		Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *companyRepository) CreateNote(ctx context.Context, note *model.CompanyNote) error {
	return GetDB(ctx, r.db).Create(note).Error
}

func (r *companyRepository) UpdateNote(ctx context.Context, note *model.CompanyNote) error {
	return GetDB(ctx, r.db).Omit("Company", "Author").Save(note).Error
}

func (r *companyRepository) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CompanyNote{}).Error
}

func (r *companyRepository) FindNote(ctx context.Context, id uuid.UUID) (*model.CompanyNote, error) {
	var note model.CompanyNote
	if err := GetDB(ctx, r.db).Preload("Author").First(&note, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &note, nil
}

func (r *companyRepository) ListNotes(ctx context.Context, companyID uuid.UUID) ([]model.CompanyNote, error) {
	var notes []model.CompanyNote
	if err := GetDB(ctx, r.db).Preload("Author").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
