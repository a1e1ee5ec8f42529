package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nakliye/internal/catalog"
	"nakliye/internal/location"
	"nakliye/internal/model"
	"nakliye/internal/repository"
	"nakliye/internal/textfold"

	"github.com/google/uuid"
)

// --- DTOs ---

// UpdateCompanyRequest patches a company profile. Nil fields are left untouched.
type UpdateCompanyRequest struct {
	Name          *string           `json:"name" binding:"omitempty,max=255"`
	TaxNumber     *string           `json:"tax_number" binding:"omitempty,max=20"`
	TaxOffice     *string           `json:"tax_office" binding:"omitempty,max=100"`
	ContactPerson *string           `json:"contact_person" binding:"omitempty,max=255"`
	Phone         *string           `json:"phone" binding:"omitempty,max=30"`
	Email         *string           `json:"email" binding:"omitempty,email"`
	Website       *string           `json:"website" binding:"omitempty,max=255"`
	Description   *string           `json:"description"`
	Address       *location.Address `json:"address"`
	FullAddress   *string           `json:"full_address"`
	WorkingRoutes *[]string         `json:"working_routes"`
}

type SetCompanyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved suspended"`
}

// AssignMembershipRequest assigns a plan; an empty PlanID removes the current one.
type AssignMembershipRequest struct {
	PlanID string `json:"plan_id"`
}

type CompanyQuery struct {
	Status string
	City   string
	Search string
	Page   int
	Limit  int
}

type MembershipSummary struct {
	PlanID       uuid.UUID  `json:"plan_id"`
	Name         string     `json:"name"`
	ListingLimit int        `json:"listing_limit"`
	ExpiresAt    *time.Time `json:"expires_at"`
	Expired      bool       `json:"expired"`
}

type CompanyResponse struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	TaxNumber     string             `json:"tax_number"`
	TaxOffice     string             `json:"tax_office"`
	ContactPerson string             `json:"contact_person"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	Website       string             `json:"website"`
	Description   string             `json:"description"`
	Address       location.Address   `json:"address"`
	FullAddress   string             `json:"full_address"`
	WorkingRoutes []string           `json:"working_routes"`
	Status        string             `json:"status"`
	Membership    *MembershipSummary `json:"membership,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// --- Interface ---

type CompanyService interface {
	ListPublic(ctx context.Context, q CompanyQuery) ([]CompanyResponse, int64, error)
	GetPublic(ctx context.Context, id string) (CompanyResponse, error)
	GetOwn(ctx context.Context, actor Actor) (CompanyResponse, error)
	UpdateOwn(ctx context.Context, actor Actor, req UpdateCompanyRequest) (CompanyResponse, error)

	ListCompanies(ctx context.Context, q CompanyQuery) ([]CompanyResponse, int64, error)
	GetCompany(ctx context.Context, id string) (CompanyResponse, error)
	UpdateCompany(ctx context.Context, actor Actor, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	SetStatus(ctx context.Context, actor Actor, id string, req SetCompanyStatusRequest) (CompanyResponse, error)
	AssignMembership(ctx context.Context, actor Actor, id string, req AssignMembershipRequest) (CompanyResponse, error)
}

// --- Implementation ---

type companyService struct {
	companyRepo repository.CompanyRepository
	planRepo    repository.MembershipRepository
	audit       auditWriter
	txManager   repository.TransactionManager
	cat         *catalog.Catalog
	now         func() time.Time
}

func NewCompanyService(
	companyRepo repository.CompanyRepository,
	planRepo repository.MembershipRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	cat *catalog.Catalog,
) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		planRepo:    planRepo,
		audit:       auditWriter{repo: auditRepo},
		txManager:   txManager,
		cat:         cat,
		now:         time.Now,
	}
}

func (s *companyService) ListPublic(ctx context.Context, q CompanyQuery) ([]CompanyResponse, int64, error) {
	q.Status = model.CompanyApproved
	return s.list(ctx, q)
}

func (s *companyService) GetPublic(ctx context.Context, id string) (CompanyResponse, error) {
	company, err := s.find(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	if company.Status != model.CompanyApproved {
		return CompanyResponse{}, ErrNotFound
	}
	return s.toResponse(company), nil
}

func (s *companyService) GetOwn(ctx context.Context, actor Actor) (CompanyResponse, error) {
	if actor.CompanyID == nil {
		return CompanyResponse{}, ErrForbidden
	}
	return s.GetCompany(ctx, actor.CompanyID.String())
}

func (s *companyService) UpdateOwn(ctx context.Context, actor Actor, req UpdateCompanyRequest) (CompanyResponse, error) {
	if actor.CompanyID == nil {
		return CompanyResponse{}, ErrForbidden
	}
	return s.UpdateCompany(ctx, actor, actor.CompanyID.String(), req)
}

func (s *companyService) ListCompanies(ctx context.Context, q CompanyQuery) ([]CompanyResponse, int64, error) {
	return s.list(ctx, q)
}

func (s *companyService) GetCompany(ctx context.Context, id string) (CompanyResponse, error) {
	company, err := s.find(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	return s.toResponse(company), nil
}

func (s *companyService) UpdateCompany(ctx context.Context, actor Actor, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	company, err := s.find(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	if !actor.IsAdmin() && !actor.ownsCompany(company.ID) {
		return CompanyResponse{}, ErrForbidden
	}

	var changed []string
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return CompanyResponse{}, invalid("name", "cannot be empty")
		}
		company.Name = name
		changed = append(changed, "name")
	}
	if req.TaxNumber != nil {
		company.TaxNumber = strings.TrimSpace(*req.TaxNumber)
		changed = append(changed, "tax_number")
	}
	if req.TaxOffice != nil {
		company.TaxOffice = strings.TrimSpace(*req.TaxOffice)
		changed = append(changed, "tax_office")
	}
	if req.ContactPerson != nil {
		company.ContactPerson = strings.TrimSpace(*req.ContactPerson)
		changed = append(changed, "contact_person")
	}
	if req.Phone != nil {
		company.Phone = strings.TrimSpace(*req.Phone)
		changed = append(changed, "phone")
	}
	if req.Email != nil {
		company.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		changed = append(changed, "email")
	}
	if req.Website != nil {
		company.Website = strings.TrimSpace(*req.Website)
		changed = append(changed, "website")
	}
	if req.Description != nil {
		company.Description = *req.Description
		changed = append(changed, "description")
	}
	if req.Address != nil {
		addr, err := resolveAddress(s.cat.Locations(), "address", *req.Address)
		if err != nil {
			return CompanyResponse{}, err
		}
		company.Country, company.City, company.District = addr.Country, addr.City, addr.District
		changed = append(changed, "address")
	}
	if req.FullAddress != nil {
		company.FullAddress = *req.FullAddress
		changed = append(changed, "full_address")
	}
	if req.WorkingRoutes != nil {
		routes, err := s.workingRoutes(*req.WorkingRoutes)
		if err != nil {
			return CompanyResponse{}, err
		}
		company.WorkingRoutes = routes
		changed = append(changed, "working_routes")
	}
	company.SearchText = textfold.Join(company.Name, company.City, company.District)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.Update(txCtx, company); err != nil {
			return fmt.Errorf("failed to update company: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionUpdateCompany, company.ID.String(), company.Name, map[string]interface{}{
			"fields": changed,
		})
	})
	if err != nil {
		return CompanyResponse{}, err
	}
	return s.toResponse(company), nil
}

func (s *companyService) SetStatus(ctx context.Context, actor Actor, id string, req SetCompanyStatusRequest) (CompanyResponse, error) {
	company, err := s.find(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	switch req.Status {
	case model.CompanyPending, model.CompanyApproved, model.CompanySuspended:
	default:
		return CompanyResponse{}, invalid("status", "must be one of: pending, approved, suspended")
	}
	if company.Status == req.Status {
		return s.toResponse(company), nil
	}

	previous := company.Status
	company.Status = req.Status
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.Update(txCtx, company); err != nil {
			return fmt.Errorf("failed to update company status: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionSetCompanyState, company.ID.String(), company.Name, map[string]interface{}{
			"from": previous,
			"to":   company.Status,
		})
	})
	if err != nil {
		return CompanyResponse{}, err
	}
	return s.toResponse(company), nil
}

// AssignMembership puts the company on a plan starting now.
func (s *companyService) AssignMembership(ctx context.Context, actor Actor, id string, req AssignMembershipRequest) (CompanyResponse, error) {
	company, err := s.find(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}

	details := map[string]interface{}{}
	if strings.TrimSpace(req.PlanID) == "" {
		details["previous_plan_id"] = company.MembershipPlanID
		company.MembershipPlanID = nil
		company.MembershipPlan = nil
		company.MembershipExpiresAt = nil
	} else {
		pid, err := parseID(req.PlanID)
		if err != nil {
			return CompanyResponse{}, err
		}
		plan, err := s.planRepo.FindByID(ctx, pid)
		if err != nil {
			return CompanyResponse{}, repoErr(err)
		}
		if !plan.IsActive {
			return CompanyResponse{}, fmt.Errorf("%w: plan %s is inactive", ErrInvalidState, plan.Name)
		}
		expires := s.now().AddDate(0, 0, plan.DurationDays)
		company.MembershipPlanID = &plan.ID
		company.MembershipPlan = plan
		company.MembershipExpiresAt = &expires
		details["plan_id"] = plan.ID
		details["plan"] = plan.Name
		details["expires_at"] = expires
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.Update(txCtx, company); err != nil {
			return fmt.Errorf("failed to assign membership: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionAssignPlan, company.ID.String(), company.Name, details)
	})
	if err != nil {
		return CompanyResponse{}, err
	}
	return s.toResponse(company), nil
}

// --- helpers ---

func (s *companyService) find(ctx context.Context, id string) (*model.Company, error) {
	cid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindByID(ctx, cid)
	if err != nil {
		return nil, repoErr(err)
	}
	return company, nil
}

func (s *companyService) list(ctx context.Context, q CompanyQuery) ([]CompanyResponse, int64, error) {
	companies, total, err := s.companyRepo.List(ctx, repository.CompanyFilter{
		Status: q.Status,
		City:   strings.TrimSpace(q.City),
		Search: textfold.Pattern(q.Search),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch companies: %w", err)
	}
	res := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		res = append(res, s.toResponse(&companies[i]))
	}
	return res, total, nil
}

// workingRoutes keeps listed routes only, deduplicated in submission order.
func (s *companyService) workingRoutes(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, r := range in {
		r = strings.TrimSpace(r)
		if !s.cat.HasOption(catalog.TableWorkingRoutes, r) {
			return nil, fmt.Errorf("%w: working_routes[%d] %q", ErrInvalidOption, i, r)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, nil
}

func (s *companyService) toResponse(c *model.Company) CompanyResponse {
	routes := c.WorkingRoutes
	if routes == nil {
		routes = []string{}
	}
	res := CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		TaxNumber:     c.TaxNumber,
		TaxOffice:     c.TaxOffice,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		Description:   c.Description,
		Address:       location.Address{Country: c.Country, City: c.City, District: c.District},
		FullAddress:   c.FullAddress,
		WorkingRoutes: routes,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.MembershipPlan != nil {
		res.Membership = &MembershipSummary{
			PlanID:       c.MembershipPlan.ID,
			Name:         c.MembershipPlan.Name,
			ListingLimit: c.MembershipPlan.ListingLimit,
			ExpiresAt:    c.MembershipExpiresAt,
			Expired:      c.MembershipExpiresAt != nil && !s.now().Before(*c.MembershipExpiresAt),
		}
	}
	return res
}
