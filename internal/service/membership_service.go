package service

import (
	"context"
	"fmt"
	"strings"

	"nakliye/internal/catalog"
	"nakliye/internal/model"
	"nakliye/internal/repository"

	"github.com/shopspring/decimal"
)

type MembershipPlanRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Currency     string          `json:"currency" binding:"required,len=3"`
	DurationDays int             `json:"duration_days" binding:"required,min=1"`
	ListingLimit int             `json:"listing_limit" binding:"min=0"`
	IsActive     *bool           `json:"is_active"`
	SortOrder    int             `json:"sort_order"`
}

type MembershipService interface {
	ListPlans(ctx context.Context, activeOnly bool) ([]model.MembershipPlan, error)
	CreatePlan(ctx context.Context, actor Actor, req MembershipPlanRequest) (*model.MembershipPlan, error)
	UpdatePlan(ctx context.Context, actor Actor, id string, req MembershipPlanRequest) (*model.MembershipPlan, error)
	DeletePlan(ctx context.Context, actor Actor, id string) error
}

type membershipService struct {
	repo      repository.MembershipRepository
	audit     auditWriter
	txManager repository.TransactionManager
	cat       *catalog.Catalog
}

func NewMembershipService(repo repository.MembershipRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager, cat *catalog.Catalog) MembershipService {
	return &membershipService{repo: repo, audit: auditWriter{repo: auditRepo}, txManager: txManager, cat: cat}
}

func (s *membershipService) ListPlans(ctx context.Context, activeOnly bool) ([]model.MembershipPlan, error) {
	plans, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}
	return plans, nil
}

func (s *membershipService) CreatePlan(ctx context.Context, actor Actor, req MembershipPlanRequest) (*model.MembershipPlan, error) {
	plan := &model.MembershipPlan{IsActive: true}
	if err := s.apply(plan, req); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, plan); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionCreatePlan, plan.ID.String(), plan.Name, req)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *membershipService) UpdatePlan(ctx context.Context, actor Actor, id string, req MembershipPlanRequest) (*model.MembershipPlan, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	plan, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return nil, repoErr(err)
	}
	if err := s.apply(plan, req); err != nil {
		return nil, err
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, plan); err != nil {
			return fmt.Errorf("failed to update plan: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionUpdatePlan, plan.ID.String(), plan.Name, req)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *membershipService) DeletePlan(ctx context.Context, actor Actor, id string) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}
	plan, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return repoErr(err)
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, plan.ID); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionDeletePlan, plan.ID.String(), plan.Name, nil)
	})
}

func (s *membershipService) apply(plan *model.MembershipPlan, req MembershipPlanRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return invalid("name", "cannot be empty")
	}
	if req.Price.IsNegative() {
		return invalid("price", "cannot be negative")
	}
	if req.DurationDays <= 0 {
		return invalid("duration_days", "must be at least 1")
	}
	if req.ListingLimit < 0 {
		return invalid("listing_limit", "cannot be negative")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !s.cat.HasOption(catalog.TableCurrencies, currency) {
		return fmt.Errorf("%w: currency %q", ErrInvalidOption, req.Currency)
	}

	plan.Name = name
	plan.Description = req.Description
	plan.Price = req.Price.Round(2)
	plan.Currency = currency
	plan.DurationDays = req.DurationDays
	plan.ListingLimit = req.ListingLimit
	plan.SortOrder = req.SortOrder
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	return nil
}
