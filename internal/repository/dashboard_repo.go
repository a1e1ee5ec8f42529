package repository

import (
	"context"
	"fmt"

	"nakliye/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	CountBy(ctx context.Context, entity interface{}, column string) ([]model.GroupCount, error)
	Count(ctx context.Context, entity interface{}, where string, args ...interface{}) (int64, error)
	RecentAudit(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// CountBy groups the live rows of entity by column. Soft-deleted rows are skipped by
// gorm's default scope. Column names come from code, never from requests.
func (r *dashboardRepository) CountBy(ctx context.Context, entity interface{}, column string) ([]model.GroupCount, error) {
	var rows []model.GroupCount
	if err := GetDB(ctx, r.db).Model(entity).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}
	return rows, nil
}

func (r *dashboardRepository) Count(ctx context.Context, entity interface{}, where string, args ...interface{}) (int64, error) {
	var n int64
	q := GetDB(ctx, r.db).Model(entity)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

func (r *dashboardRepository) RecentAudit(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	if err := GetDB(ctx, r.db).Preload("User").Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
