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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateOfferRequest struct {
	ReceiverCompanyID string           `json:"receiver_company_id"`
	ListingID         string           `json:"listing_id"`
	Origin            location.Address `json:"origin"`
	Destination       location.Address `json:"destination"`
	Amount            decimal.Decimal  `json:"amount" swaggertype:"string"`
	Currency          string           `json:"currency" binding:"required,len=3"`
	Note              string           `json:"note" binding:"max=2000"`
}

type OfferQuery struct {
	Status    string
	ListingID string
	Page      int
	Limit     int
}

type OfferResponse struct {
	ID          uuid.UUID        `json:"id"`
	Sender      CompanySummary   `json:"sender"`
	Receiver    CompanySummary   `json:"receiver"`
	ListingID   *uuid.UUID       `json:"listing_id"`
	Origin      location.Address `json:"origin"`
	Destination location.Address `json:"destination"`
	Amount      decimal.Decimal  `json:"amount" swaggertype:"string"`
	Currency    string           `json:"currency"`
	Note        string           `json:"note"`
	Status      string           `json:"status"`
	RespondedAt *time.Time       `json:"responded_at"`
	CreatedAt   time.Time        `json:"created_at"`
}

// --- Interface ---

type OfferService interface {
	CreateOffer(ctx context.Context, actor Actor, req CreateOfferRequest) (OfferResponse, error)
	Respond(ctx context.Context, actor Actor, id string, accept bool) (OfferResponse, error)
	ListSent(ctx context.Context, actor Actor, q OfferQuery) ([]OfferResponse, int64, error)
	ListReceived(ctx context.Context, actor Actor, q OfferQuery) ([]OfferResponse, int64, error)
	ListAll(ctx context.Context, q OfferQuery) ([]OfferResponse, int64, error)
}

// --- Implementation ---

type offerService struct {
	offerRepo   repository.OfferRepository
	listingRepo repository.ListingRepository
	companyRepo repository.CompanyRepository
	audit       auditWriter
	txManager   repository.TransactionManager
	cat         *catalog.Catalog
	events      EventPublisher
	now         func() time.Time
}

func NewOfferService(
	offerRepo repository.OfferRepository,
	listingRepo repository.ListingRepository,
	companyRepo repository.CompanyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	cat *catalog.Catalog,
	events EventPublisher,
) OfferService {
	return &offerService{
		offerRepo:   offerRepo,
		listingRepo: listingRepo,
		companyRepo: companyRepo,
		audit:       auditWriter{repo: auditRepo},
		txManager:   txManager,
		cat:         cat,
		events:      publisherOrNop(events),
		now:         time.Now,
	}
}

// CreateOffer sends a price quote. When it targets a listing, the receiver is the
// listing's company and an empty route defaults to the listing's route.
func (s *offerService) CreateOffer(ctx context.Context, actor Actor, req CreateOfferRequest) (OfferResponse, error) {
	sender, err := approvedCompany(ctx, s.companyRepo, actor)
	if err != nil {
		return OfferResponse{}, err
	}

	origin, destination := req.Origin, req.Destination
	var receiverID uuid.UUID
	var listingID *uuid.UUID

	if strings.TrimSpace(req.ListingID) != "" {
		lid, err := parseID(req.ListingID)
		if err != nil {
			return OfferResponse{}, err
		}
		listing, err := s.listingRepo.FindByID(ctx, lid)
		if err != nil {
			return OfferResponse{}, repoErr(err)
		}
		if !listing.IsActive {
			return OfferResponse{}, fmt.Errorf("%w: listing is not active", ErrInvalidState)
		}
		receiverID = listing.CompanyID
		listingID = &listing.ID
		if isEmptyAddress(origin) {
			origin = originOf(listing)
		}
		if isEmptyAddress(destination) {
			destination = destinationOf(listing)
		}
	} else {
		if strings.TrimSpace(req.ReceiverCompanyID) == "" {
			return OfferResponse{}, invalid("receiver_company_id", "required")
		}
		if receiverID, err = parseID(req.ReceiverCompanyID); err != nil {
			return OfferResponse{}, err
		}
	}

	if receiverID == sender.ID {
		return OfferResponse{}, invalid("receiver_company_id", "cannot send an offer to your own company")
	}
	receiver, err := s.companyRepo.FindByID(ctx, receiverID)
	if err != nil {
		return OfferResponse{}, repoErr(err)
	}
	if receiver.Status != model.CompanyApproved {
		return OfferResponse{}, invalid("receiver_company_id", "company is not accepting offers")
	}

	if origin, err = resolveAddress(s.cat.Locations(), "origin", origin); err != nil {
		return OfferResponse{}, err
	}
	if destination, err = resolveAddress(s.cat.Locations(), "destination", destination); err != nil {
		return OfferResponse{}, err
	}

	if !req.Amount.IsPositive() {
		return OfferResponse{}, invalid("amount", "must be greater than zero")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !s.cat.HasOption(catalog.TableCurrencies, currency) {
		return OfferResponse{}, fmt.Errorf("%w: currency %q", ErrInvalidOption, req.Currency)
	}

	offer := &model.PriceOffer{
		SenderCompanyID:     sender.ID,
		ReceiverCompanyID:   receiver.ID,
		ListingID:           listingID,
		OriginCountry:       origin.Country,
		OriginCity:          origin.City,
		OriginDistrict:      origin.District,
		DestinationCountry:  destination.Country,
		DestinationCity:     destination.City,
		DestinationDistrict: destination.District,
		Amount:              req.Amount.Round(2),
		Currency:            currency,
		Note:                strings.TrimSpace(req.Note),
		Status:              model.OfferPending,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.offerRepo.Create(txCtx, offer); err != nil {
			return fmt.Errorf("failed to create offer: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionCreateOffer, offer.ID.String(), receiver.Name, map[string]interface{}{
			"amount":     offer.Amount.String(),
			"currency":   offer.Currency,
			"listing_id": offer.ListingID,
		})
	})
	if err != nil {
		return OfferResponse{}, err
	}

	offer.SenderCompany = sender
	offer.ReceiverCompany = receiver
	res := toOfferResponse(offer)
	s.events.Publish(EventOfferCreated, res)
	return res, nil
}

// Respond accepts or rejects a pending offer. Only the receiving company may answer.
func (s *offerService) Respond(ctx context.Context, actor Actor, id string, accept bool) (OfferResponse, error) {
	oid, err := parseID(id)
	if err != nil {
		return OfferResponse{}, err
	}
	offer, err := s.offerRepo.FindByID(ctx, oid)
	if err != nil {
		return OfferResponse{}, repoErr(err)
	}
	if !actor.ownsCompany(offer.ReceiverCompanyID) {
		return OfferResponse{}, ErrForbidden
	}
	if offer.Status != model.OfferPending {
		return OfferResponse{}, fmt.Errorf("%w: offer is already %s", ErrInvalidState, offer.Status)
	}

	now := s.now()
	offer.Status = model.OfferRejected
	if accept {
		offer.Status = model.OfferAccepted
	}
	offer.RespondedAt = &now

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.offerRepo.Update(txCtx, offer); err != nil {
			return fmt.Errorf("failed to update offer: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionRespondOffer, offer.ID.String(), "", map[string]interface{}{
			"status": offer.Status,
		})
	})
	if err != nil {
		return OfferResponse{}, err
	}
	return toOfferResponse(offer), nil
}

func (s *offerService) ListSent(ctx context.Context, actor Actor, q OfferQuery) ([]OfferResponse, int64, error) {
	if actor.CompanyID == nil {
		return nil, 0, ErrForbidden
	}
	filter, err := offerFilter(q)
	if err != nil {
		return nil, 0, err
	}
	filter.SenderCompanyID = actor.CompanyID
	return s.list(ctx, filter)
}

func (s *offerService) ListReceived(ctx context.Context, actor Actor, q OfferQuery) ([]OfferResponse, int64, error) {
	if actor.CompanyID == nil {
		return nil, 0, ErrForbidden
	}
	filter, err := offerFilter(q)
	if err != nil {
		return nil, 0, err
	}
	filter.ReceiverCompanyID = actor.CompanyID
	return s.list(ctx, filter)
}

func (s *offerService) ListAll(ctx context.Context, q OfferQuery) ([]OfferResponse, int64, error) {
	filter, err := offerFilter(q)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, filter)
}

func (s *offerService) list(ctx context.Context, filter repository.OfferFilter) ([]OfferResponse, int64, error) {
	offers, total, err := s.offerRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch offers: %w", err)
	}
	res := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		res = append(res, toOfferResponse(&offers[i]))
	}
	return res, total, nil
}

func offerFilter(q OfferQuery) (repository.OfferFilter, error) {
	filter := repository.OfferFilter{Status: q.Status, Page: q.Page, Limit: q.Limit}
	if q.ListingID != "" {
		lid, err := parseID(q.ListingID)
		if err != nil {
			return filter, err
		}
		filter.ListingID = &lid
	}
	return filter, nil
}

func isEmptyAddress(a location.Address) bool {
	return strings.TrimSpace(a.Country) == "" && strings.TrimSpace(a.City) == ""
}

func toOfferResponse(o *model.PriceOffer) OfferResponse {
	res := OfferResponse{
		ID:          o.ID,
		Sender:      CompanySummary{ID: o.SenderCompanyID},
		Receiver:    CompanySummary{ID: o.ReceiverCompanyID},
		ListingID:   o.ListingID,
		Origin:      location.Address{Country: o.OriginCountry, City: o.OriginCity, District: o.OriginDistrict},
		Destination: location.Address{Country: o.DestinationCountry, City: o.DestinationCity, District: o.DestinationDistrict},
		Amount:      o.Amount,
		Currency:    o.Currency,
		Note:        o.Note,
		Status:      o.Status,
		RespondedAt: o.RespondedAt,
		CreatedAt:   o.CreatedAt,
	}
	if o.SenderCompany != nil {
		res.Sender.Name, res.Sender.City = o.SenderCompany.Name, o.SenderCompany.City
	}
	if o.ReceiverCompany != nil {
		res.Receiver.Name, res.Receiver.City = o.ReceiverCompany.Name, o.ReceiverCompany.City
	}
	return res
}
