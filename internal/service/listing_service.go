package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"nakliye/internal/catalog"
	"nakliye/internal/formshape"
	"nakliye/internal/location"
	"nakliye/internal/model"
	"nakliye/internal/repository"
	"nakliye/internal/textfold"

	"github.com/google/uuid"
)

// --- DTOs ---

type ListingRequest struct {
	FreightType   string                 `json:"freight_type" binding:"required"`
	Title         string                 `json:"title" binding:"required,max=255"`
	ContactPerson string                 `json:"contact_person" binding:"max=255"`
	MobilePhone   string                 `json:"mobile_phone" binding:"max=30"`
	Email         string                 `json:"email" binding:"omitempty,email"`
	CompanyName   string                 `json:"company_name" binding:"max=255"`
	Origin        location.Address       `json:"origin"`
	Destination   location.Address       `json:"destination"`
	LoadingDate   string                 `json:"loading_date"`
	Description   string                 `json:"description"`
	IsActive      *bool                  `json:"is_active"`
	Details       map[string]interface{} `json:"details"`
}

type ListingQuery struct {
	CompanyID       string
	FreightType     string
	OriginCity      string
	DestinationCity string
	Search          string
	Page            int
	Limit           int
}

type CompanySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

type ListingResponse struct {
	ID            uuid.UUID              `json:"id"`
	CompanyID     uuid.UUID              `json:"company_id"`
	Company       *CompanySummary        `json:"company,omitempty"`
	FreightType   string                 `json:"freight_type"`
	Title         string                 `json:"title"`
	ContactPerson string                 `json:"contact_person"`
	MobilePhone   string                 `json:"mobile_phone"`
	Email         string                 `json:"email"`
	CompanyName   string                 `json:"company_name"`
	Origin        location.Address       `json:"origin"`
	Destination   location.Address       `json:"destination"`
	LoadingDate   string                 `json:"loading_date"`
	Description   string                 `json:"description"`
	IsActive      bool                   `json:"is_active"`
	Details       map[string]interface{} `json:"details"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ListingFormResponse seeds the edit form of a listing.
type ListingFormResponse struct {
	ID          uuid.UUID         `json:"id"`
	FreightType string            `json:"freight_type"`
	KindKnown   bool              `json:"kind_known"`
	Fields      []formshape.Field `json:"fields"`
	State       formshape.State   `json:"state"`
	Cleared     []string          `json:"cleared"`
}

// --- Interface ---

type ListingService interface {
	CreateListing(ctx context.Context, actor Actor, req ListingRequest) (ListingResponse, error)
	UpdateListing(ctx context.Context, actor Actor, id string, req ListingRequest) (ListingResponse, error)
	DeleteListing(ctx context.Context, actor Actor, id string) error
	SetActive(ctx context.Context, actor Actor, id string, active bool) (ListingResponse, error)
	GetListing(ctx context.Context, id string) (ListingResponse, error)
	ListingForm(ctx context.Context, actor Actor, id string) (ListingFormResponse, error)
	ListPublic(ctx context.Context, q ListingQuery) ([]ListingResponse, int64, error)
	ListOwn(ctx context.Context, actor Actor, q ListingQuery) ([]ListingResponse, int64, error)
	ListAll(ctx context.Context, q ListingQuery) ([]ListingResponse, int64, error)
}

// --- Implementation ---

type listingService struct {
	listingRepo repository.ListingRepository
	companyRepo repository.CompanyRepository
	audit       auditWriter
	txManager   repository.TransactionManager
	resolver    *location.Resolver
	schema      *formshape.Schema
	events      EventPublisher
}

func NewListingService(
	listingRepo repository.ListingRepository,
	companyRepo repository.CompanyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	cat *catalog.Catalog,
	events EventPublisher,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		companyRepo: companyRepo,
		audit:       auditWriter{repo: auditRepo},
		txManager:   txManager,
		resolver:    cat.Locations(),
		schema:      cat.FreightSchema(),
		events:      publisherOrNop(events),
	}
}

func (s *listingService) CreateListing(ctx context.Context, actor Actor, req ListingRequest) (ListingResponse, error) {
	company, err := approvedCompany(ctx, s.companyRepo, actor)
	if err != nil {
		return ListingResponse{}, err
	}
	kind, err := s.kind(req.FreightType)
	if err != nil {
		return ListingResponse{}, err
	}

	listing := &model.Listing{CompanyID: company.ID, IsActive: true}
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}
	details := s.schema.Defaults(kind)
	for k, v := range req.Details {
		details[k] = v
	}
	if err := s.apply(listing, kind, req, details); err != nil {
		return ListingResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if listing.IsActive {
			if err := s.checkQuota(txCtx, company); err != nil {
				return err
			}
		}
		if err := s.listingRepo.Create(txCtx, listing); err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionCreateListing, listing.ID.String(), listing.Title, map[string]interface{}{
			"freight_type":     listing.FreightType,
			"origin_city":      listing.OriginCity,
			"destination_city": listing.DestinationCity,
		})
	})
	if err != nil {
		return ListingResponse{}, err
	}

	listing.Company = company
	res := s.toResponse(listing)
	s.events.Publish(EventListingCreated, res)
	return res, nil
}

// UpdateListing replaces the shared columns with the ones in req, so an empty field
// clears the stored value. Only Details is merged onto the stored document; on a freight
// type change the stored values go through OnKindChanged first. An omitted is_active
// keeps the current flag.
func (s *listingService) UpdateListing(ctx context.Context, actor Actor, id string, req ListingRequest) (ListingResponse, error) {
	listing, err := s.accessible(ctx, actor, id)
	if err != nil {
		return ListingResponse{}, err
	}
	kind, err := s.kind(req.FreightType)
	if err != nil {
		return ListingResponse{}, err
	}

	// next.Values carries the stored shared values too, but apply reads the shared
	// columns from req and projects only the type-specific keys
	stored := s.storedState(listing)
	next := s.schema.OnKindChanged(kind, stored)
	for k, v := range req.Details {
		next.Values[k] = v
	}

	wasActive := listing.IsActive
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}
	if err := s.apply(listing, kind, req, next.Values); err != nil {
		return ListingResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if listing.IsActive && !wasActive {
			company, err := s.companyRepo.FindByID(txCtx, listing.CompanyID)
			if err != nil {
				return repoErr(err)
			}
			if err := s.checkQuota(txCtx, company); err != nil {
				return err
			}
		}
		if err := s.listingRepo.Update(txCtx, listing); err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionUpdateListing, listing.ID.String(), listing.Title, map[string]interface{}{
			"freight_type":      listing.FreightType,
			"previous_type":     string(stored.Kind),
			"freight_type_swap": stored.Kind != kind,
		})
	})
	if err != nil {
		return ListingResponse{}, err
	}
	return s.toResponse(listing), nil
}

func (s *listingService) DeleteListing(ctx context.Context, actor Actor, id string) error {
	listing, err := s.accessible(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.listingRepo.Delete(txCtx, listing.ID); err != nil {
			return fmt.Errorf("failed to delete listing: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionDeleteListing, listing.ID.String(), listing.Title, map[string]interface{}{
			"company_id": listing.CompanyID.String(),
		})
	})
}

func (s *listingService) SetActive(ctx context.Context, actor Actor, id string, active bool) (ListingResponse, error) {
	listing, err := s.accessible(ctx, actor, id)
	if err != nil {
		return ListingResponse{}, err
	}
	if listing.IsActive == active {
		return s.toResponse(listing), nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if active {
			company, err := s.companyRepo.FindByID(txCtx, listing.CompanyID)
			if err != nil {
				return repoErr(err)
			}
			if err := s.checkQuota(txCtx, company); err != nil {
				return err
			}
		}
		listing.IsActive = active
		if err := s.listingRepo.Update(txCtx, listing); err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionToggleListing, listing.ID.String(), listing.Title, map[string]interface{}{
			"is_active": active,
		})
	})
	if err != nil {
		return ListingResponse{}, err
	}
	return s.toResponse(listing), nil
}

func (s *listingService) GetListing(ctx context.Context, id string) (ListingResponse, error) {
	lid, err := parseID(id)
	if err != nil {
		return ListingResponse{}, err
	}
	listing, err := s.listingRepo.FindByID(ctx, lid)
	if err != nil {
		return ListingResponse{}, repoErr(err)
	}
	if !listing.IsActive {
		return ListingResponse{}, ErrNotFound
	}
	return s.toResponse(listing), nil
}

// ListingForm re-hydrates the edit form. Stale persisted data is re-validated: the
// address triples are normalized, withdrawn options are reset and an unknown freight
// type degrades to the shared fields only.
func (s *listingService) ListingForm(ctx context.Context, actor Actor, id string) (ListingFormResponse, error) {
	listing, err := s.accessible(ctx, actor, id)
	if err != nil {
		return ListingFormResponse{}, err
	}

	origin := originOf(listing)
	destination := destinationOf(listing)
	pair := s.resolver.NormalizePair(location.Pair{Origin: origin, Destination: destination})
	cleared := append(changedParts("origin", origin, pair.Origin), changedParts("destination", destination, pair.Destination)...)

	kind := formshape.Kind(listing.FreightType)
	known := s.schema.Known(kind)

	values := s.schema.Defaults(kind)
	if known {
		for k, v := range s.schema.Project(formshape.State{Kind: kind, Values: decodeValues(listing.Details)}) {
			values[k] = v
		}
	} else {
		log.Printf("WARNING: listing %s has unknown freight type %q, serving shared fields only", listing.ID, listing.FreightType)
	}
	for k, v := range sharedListingValues(listing, pair) {
		values[k] = v
	}

	st := formshape.State{Kind: kind, Values: values}
	if known {
		cleared = append(cleared, staleChoices(s.schema, st, "details.")...)
	}

	fields := s.schema.FieldsFor(kind)
	if fields == nil {
		fields = []formshape.Field{}
	}
	if cleared == nil {
		cleared = []string{}
	}
	return ListingFormResponse{
		ID:          listing.ID,
		FreightType: listing.FreightType,
		KindKnown:   known,
		Fields:      fields,
		State:       st,
		Cleared:     cleared,
	}, nil
}

func (s *listingService) ListPublic(ctx context.Context, q ListingQuery) ([]ListingResponse, int64, error) {
	filter := s.filter(q)
	filter.ActiveOnly = true
	return s.list(ctx, filter)
}

func (s *listingService) ListOwn(ctx context.Context, actor Actor, q ListingQuery) ([]ListingResponse, int64, error) {
	if actor.CompanyID == nil {
		return nil, 0, ErrForbidden
	}
	filter := s.filter(q)
	filter.CompanyID = actor.CompanyID
	return s.list(ctx, filter)
}

func (s *listingService) ListAll(ctx context.Context, q ListingQuery) ([]ListingResponse, int64, error) {
	filter := s.filter(q)
	if q.CompanyID != "" {
		cid, err := parseID(q.CompanyID)
		if err != nil {
			return nil, 0, err
		}
		filter.CompanyID = &cid
	}
	return s.list(ctx, filter)
}

// --- helpers ---

func (s *listingService) kind(raw string) (formshape.Kind, error) {
	kind := formshape.Kind(strings.TrimSpace(raw))
	if !s.schema.Known(kind) {
		return "", fmt.Errorf("%w: freight type %q", ErrUnknownKind, raw)
	}
	return kind, nil
}

// apply validates req against kind and copies it onto listing. details holds the
// candidate type-specific values.
func (s *listingService) apply(listing *model.Listing, kind formshape.Kind, req ListingRequest, details map[string]interface{}) error {
	origin, err := resolveAddress(s.resolver, "origin", req.Origin)
	if err != nil {
		return err
	}
	destination, err := resolveAddress(s.resolver, "destination", req.Destination)
	if err != nil {
		return err
	}

	var loadingDate *time.Time
	if d := strings.TrimSpace(req.LoadingDate); d != "" {
		parsed, err := time.Parse(formshape.DateLayout, d)
		if err != nil {
			return invalid("loading_date", "expected YYYY-MM-DD")
		}
		loadingDate = &parsed
	}

	st := formshape.State{Kind: kind, Values: details}
	if st.Values == nil {
		st.Values = map[string]interface{}{}
	}
	if err := s.schema.Validate(st); err != nil {
		return err
	}
	doc, err := encodeDetails(kind, s.schema.Project(st))
	if err != nil {
		return err
	}

	listing.FreightType = string(kind)
	listing.Title = strings.TrimSpace(req.Title)
	listing.ContactPerson = strings.TrimSpace(req.ContactPerson)
	listing.MobilePhone = strings.TrimSpace(req.MobilePhone)
	listing.Email = strings.TrimSpace(req.Email)
	listing.CompanyName = strings.TrimSpace(req.CompanyName)
	listing.OriginCountry, listing.OriginCity, listing.OriginDistrict = origin.Country, origin.City, origin.District
	listing.DestinationCountry, listing.DestinationCity, listing.DestinationDistrict = destination.Country, destination.City, destination.District
	listing.LoadingDate = loadingDate
	listing.Description = req.Description
	listing.Details = doc
	listing.SearchText = textfold.Join(
		listing.Title, listing.CompanyName, listing.FreightType,
		listing.OriginCity, listing.OriginDistrict,
		listing.DestinationCity, listing.DestinationDistrict,
	)
	return nil
}

func (s *listingService) checkQuota(ctx context.Context, company *model.Company) error {
	if company.MembershipPlan == nil || company.MembershipPlan.ListingLimit <= 0 {
		return nil
	}
	n, err := s.listingRepo.CountActiveByCompany(ctx, company.ID)
	if err != nil {
		return fmt.Errorf("failed to count active listings: %w", err)
	}
	if n >= int64(company.MembershipPlan.ListingLimit) {
		return fmt.Errorf("%w (%d)", ErrListingQuotaExceeded, company.MembershipPlan.ListingLimit)
	}
	return nil
}

// accessible loads a listing the actor may manage: its own company's, or any for admins.
func (s *listingService) accessible(ctx context.Context, actor Actor, id string) (*model.Listing, error) {
	lid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	listing, err := s.listingRepo.FindByID(ctx, lid)
	if err != nil {
		return nil, repoErr(err)
	}
	if !actor.IsAdmin() && !actor.ownsCompany(listing.CompanyID) {
		return nil, ErrForbidden
	}
	return listing, nil
}

func (s *listingService) storedState(l *model.Listing) formshape.State {
	values := decodeValues(l.Details)
	for k, v := range sharedListingValues(l, location.Pair{Origin: originOf(l), Destination: destinationOf(l)}) {
		values[k] = v
	}
	return formshape.State{Kind: formshape.Kind(l.FreightType), Values: values}
}

func (s *listingService) filter(q ListingQuery) repository.ListingFilter {
	return repository.ListingFilter{
		FreightType:     strings.TrimSpace(q.FreightType),
		OriginCity:      strings.TrimSpace(q.OriginCity),
		DestinationCity: strings.TrimSpace(q.DestinationCity),
		Search:          textfold.Pattern(q.Search),
		Page:            q.Page,
		Limit:           q.Limit,
	}
}

func (s *listingService) list(ctx context.Context, filter repository.ListingFilter) ([]ListingResponse, int64, error) {
	listings, total, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	res := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		res = append(res, s.toResponse(&listings[i]))
	}
	return res, total, nil
}

func (s *listingService) toResponse(l *model.Listing) ListingResponse {
	kind := formshape.Kind(l.FreightType)
	details := map[string]interface{}{}
	if s.schema.Known(kind) {
		details = s.schema.Project(formshape.State{Kind: kind, Values: decodeValues(l.Details)})
	}
	res := ListingResponse{
		ID:            l.ID,
		CompanyID:     l.CompanyID,
		FreightType:   l.FreightType,
		Title:         l.Title,
		ContactPerson: l.ContactPerson,
		MobilePhone:   l.MobilePhone,
		Email:         l.Email,
		CompanyName:   l.CompanyName,
		Origin:        originOf(l),
		Destination:   destinationOf(l),
		LoadingDate:   formatDate(l.LoadingDate),
		Description:   l.Description,
		IsActive:      l.IsActive,
		Details:       details,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.Company != nil {
		res.Company = &CompanySummary{ID: l.Company.ID, Name: l.Company.Name, City: l.Company.City}
	}
	return res
}

func originOf(l *model.Listing) location.Address {
	return location.Address{Country: l.OriginCountry, City: l.OriginCity, District: l.OriginDistrict}
}

func destinationOf(l *model.Listing) location.Address {
	return location.Address{Country: l.DestinationCountry, City: l.DestinationCity, District: l.DestinationDistrict}
}

func sharedListingValues(l *model.Listing, p location.Pair) map[string]interface{} {
	return map[string]interface{}{
		catalog.KeyTitle:               l.Title,
		catalog.KeyContactPerson:       l.ContactPerson,
		catalog.KeyMobilePhone:         l.MobilePhone,
		catalog.KeyEmail:               l.Email,
		catalog.KeyCompanyName:         l.CompanyName,
		catalog.KeyOriginCountry:       p.Origin.Country,
		catalog.KeyOriginCity:          p.Origin.City,
		catalog.KeyOriginDistrict:      p.Origin.District,
		catalog.KeyDestinationCountry:  p.Destination.Country,
		catalog.KeyDestinationCity:     p.Destination.City,
		catalog.KeyDestinationDistrict: p.Destination.District,
		catalog.KeyLoadingDate:         formatDate(l.LoadingDate),
		catalog.KeyDescription:         l.Description,
		catalog.KeyIsActive:            l.IsActive,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(formshape.DateLayout)
}

// approvedCompany loads the actor's company and requires it to be approved.
func approvedCompany(ctx context.Context, repo repository.CompanyRepository, actor Actor) (*model.Company, error) {
	if actor.CompanyID == nil {
		return nil, ErrForbidden
	}
	company, err := repo.FindByID(ctx, *actor.CompanyID)
	if err != nil {
		return nil, repoErr(err)
	}
	if company.Status != model.CompanyApproved {
		return nil, ErrCompanyNotApproved
	}
	return company, nil
}
