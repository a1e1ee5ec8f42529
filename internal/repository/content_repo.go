package repository

import (
	"context"

	"nakliye/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipRepository stores membership plans.
type MembershipRepository interface {
	Create(ctx context.Context, plan *model.MembershipPlan) error
	Update(ctx context.Context, plan *model.MembershipPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MembershipPlan, error)
	List(ctx context.Context, activeOnly bool) ([]model.MembershipPlan, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, plan *model.MembershipPlan) error {
	return GetDB(ctx, r.db).Create(plan).Error
}

func (r *membershipRepository) Update(ctx context.Context, plan *model.MembershipPlan) error {
	return GetDB(ctx, r.db).Save(plan).Error
}

func (r *membershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MembershipPlan{}).Error
}

func (r *membershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MembershipPlan, error) {
	var plan model.MembershipPlan
	if err := GetDB(ctx, r.db).First(&plan, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &plan, nil
}

func (r *membershipRepository) List(ctx context.Context, activeOnly bool) ([]model.MembershipPlan, error) {
	var plans []model.MembershipPlan
	q := GetDB(ctx, r.db).Order("sort_order ASC, price ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// AnnouncementRepository stores announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	List(ctx context.Context, publishedOnly bool, page, limit int) ([]model.Announcement, int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return GetDB(ctx, r.db).Create(a).Error
}

func (r *announcementRepository) Update(ctx context.Context, a *model.Announcement) error {
	return GetDB(ctx, r.db).Save(a).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Announcement{}).Error
}

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	var a model.Announcement
	if err := GetDB(ctx, r.db).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context, publishedOnly bool, page, limit int) ([]model.Announcement, int64, error) {
	var items []model.Announcement
	var total int64

	db := GetDB(ctx, r.db)
	scope := func(q *gorm.DB) *gorm.DB {
		if publishedOnly {
			q = q.Where("is_published = ?", true)
		}
		return q
	}
	if err := db.Model(&model.Announcement{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Scopes(scope).Order("published_at DESC NULLS LAST, created_at DESC"), page, limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// HeroSlideRepository stores home page slides.
type HeroSlideRepository interface {
	Create(ctx context.Context, s *model.HeroSlide) error
	Update(ctx context.Context, s *model.HeroSlide) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.HeroSlide, error)
	List(ctx context.Context, activeOnly bool) ([]model.HeroSlide, error)
}

type heroSlideRepository struct {
	db *gorm.DB
}

func NewHeroSlideRepository(db *gorm.DB) HeroSlideRepository {
	return &heroSlideRepository{db: db}
}

func (r *heroSlideRepository) Create(ctx context.Context, s *model.HeroSlide) error {
	return GetDB(ctx, r.db).Create(s).Error
}

func (r *heroSlideRepository) Update(ctx context.Context, s *model.HeroSlide) error {
	return GetDB(ctx, r.db).Save(s).Error
}

func (r *heroSlideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.HeroSlide{}).Error
}

func (r *heroSlideRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.HeroSlide, error) {
	var s model.HeroSlide
	if err := GetDB(ctx, r.db).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *heroSlideRepository) List(ctx context.Context, activeOnly bool) ([]model.HeroSlide, error) {
	var slides []model.HeroSlide
	q := GetDB(ctx, r.db).Order("sort_order ASC, created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

// ContactFilter narrows a directory listing.
type ContactFilter struct {
	City       string
	Category   string
	Search     string
	ActiveOnly bool
	Page       int
	Limit      int
}

// ContactRepository stores directory contacts.
type ContactRepository interface {
	Create(ctx context.Context, c *model.DirectoryContact) error
	Update(ctx context.Context, c *model.DirectoryContact) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DirectoryContact, error)
	List(ctx context.Context, filter ContactFilter) ([]model.DirectoryContact, int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, c *model.DirectoryContact) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *contactRepository) Update(ctx context.Context, c *model.DirectoryContact) error {
	return GetDB(ctx, r.db).Save(c).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.DirectoryContact{}).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DirectoryContact, error) {
	var c model.DirectoryContact
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]model.DirectoryContact, int64, error) {
	var contacts []model.DirectoryContact
	var total int64

	scope := func(q *gorm.DB) *gorm.DB {
		if filter.City != "" {
			q = q.Where("city = ?", filter.City)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.Search != "" {
			q = q.Where("search_text LIKE ?", filter.Search)
		}
		if filter.ActiveOnly {
			q = q.Where("is_active = ?", true)
		}
		return q
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.DirectoryContact{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Scopes(scope).Order("city ASC, name ASC"), filter.Page, filter.Limit).
		Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}
