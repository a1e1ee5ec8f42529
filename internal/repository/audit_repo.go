package repository

import (
	"context"

	"nakliye/internal/model"

	"gorm.io/gorm"
)

// AuditFilter narrows an audit log listing.
type AuditFilter struct {
	Action   string
	EntityID string
	Page     int
	Limit    int
}

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filter AuditFilter) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Action != "" {
			db = db.Where("action = ?", filter.Action)
		}
		if filter.EntityID != "" {
			db = db.Where("entity_id = ?", filter.EntityID)
		}
		return db
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.AuditLog{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Scopes(scope).Preload("User").Order("created_at desc"), filter.Page, filter.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
