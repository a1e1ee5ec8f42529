package service

import (
	"context"
	"fmt"

	"nakliye/internal/model"
	"nakliye/internal/repository"
)

const recentAuditEntries = 10

type DashboardService interface {
	GetDashboard(ctx context.Context) (model.DashboardStats, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// GetDashboard aggregates the admin overview counters.
func (s *dashboardService) GetDashboard(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	var err error

	if stats.CompaniesByStatus, err = s.repo.CountBy(ctx, &model.Company{}, "status"); err != nil {
		return stats, fmt.Errorf("companies by status: %w", err)
	}
	if stats.ListingsByType, err = s.repo.CountBy(ctx, &model.Listing{}, "freight_type"); err != nil {
		return stats, fmt.Errorf("listings by type: %w", err)
	}
	if stats.OffersByStatus, err = s.repo.CountBy(ctx, &model.PriceOffer{}, "status"); err != nil {
		return stats, fmt.Errorf("offers by status: %w", err)
	}
	if stats.ActiveListings, err = s.repo.Count(ctx, &model.Listing{}, "is_active = ?", true); err != nil {
		return stats, fmt.Errorf("active listings: %w", err)
	}
	if stats.PublishedSlides, err = s.repo.Count(ctx, &model.HeroSlide{}, "is_active = ?", true); err != nil {
		return stats, fmt.Errorf("active slides: %w", err)
	}
	if stats.DirectoryContacts, err = s.repo.Count(ctx, &model.DirectoryContact{}, ""); err != nil {
		return stats, fmt.Errorf("directory contacts: %w", err)
	}

	recent, err := s.repo.RecentAudit(ctx, recentAuditEntries)
	if err != nil {
		return stats, fmt.Errorf("recent audit: %w", err)
	}
	stats.RecentAuditEntries = recent
	return stats, nil
}
