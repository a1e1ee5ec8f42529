package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"nakliye/internal/catalog"
	"nakliye/internal/model"
	"nakliye/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

// fakeTx runs fn directly; a failing fn leaves whatever the fakes already stored.
type fakeTx struct{ calls int }

func (f *fakeTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, e *model.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAudit) List(context.Context, repository.AuditFilter) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeAudit) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type recordedEvent struct {
	Event   string
	Payload interface{}
}

type fakeEvents struct{ events []recordedEvent }

func (f *fakeEvents) Publish(event string, payload interface{}) {
	f.events = append(f.events, recordedEvent{event, payload})
}

type fakeCompanies struct {
	byID  map[uuid.UUID]*model.Company
	notes map[uuid.UUID]*model.CompanyNote
}

func newFakeCompanies(companies ...*model.Company) *fakeCompanies {
	f := &fakeCompanies{byID: map[uuid.UUID]*model.Company{}, notes: map[uuid.UUID]*model.CompanyNote{}}
	for _, c := range companies {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCompanies) Create(_ context.Context, c *model.Company) error {
	c.ID = uuid.New()
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCompanies) Update(_ context.Context, c *model.Company) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCompanies) FindByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanies) List(_ context.Context, filter repository.CompanyFilter) ([]model.Company, int64, error) {
	var out []model.Company
	for _, c := range f.byID {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCompanies) CreateNote(_ context.Context, n *model.CompanyNote) error {
	n.ID = uuid.New()
	f.notes[n.ID] = n
	return nil
}

func (f *fakeCompanies) UpdateNote(_ context.Context, n *model.CompanyNote) error {
	f.notes[n.ID] = n
	return nil
}

func (f *fakeCompanies) DeleteNote(_ context.Context, id uuid.UUID) error {
	delete(f.notes, id)
	return nil
}

func (f *fakeCompanies) FindNote(_ context.Context, id uuid.UUID) (*model.CompanyNote, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return n, nil
}

func (f *fakeCompanies) ListNotes(_ context.Context, companyID uuid.UUID) ([]model.CompanyNote, error) {
	var out []model.CompanyNote
	for _, n := range f.notes {
		if n.CompanyID == companyID {
			out = append(out, *n)
		}
	}
	return out, nil
}

type fakeListings struct {
	byID       map[uuid.UUID]*model.Listing
	lastFilter repository.ListingFilter
}

func newFakeListings() *fakeListings {
	return &fakeListings{byID: map[uuid.UUID]*model.Listing{}}
}

func (f *fakeListings) Create(_ context.Context, l *model.Listing) error {
	l.ID = uuid.New()
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeListings) Update(_ context.Context, l *model.Listing) error {
	if _, ok := f.byID[l.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeListings) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeListings) FindByID(_ context.Context, id uuid.UUID) (*model.Listing, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListings) List(_ context.Context, filter repository.ListingFilter) ([]model.Listing, int64, error) {
	f.lastFilter = filter
	var out []model.Listing
	for _, l := range f.byID {
		if filter.ActiveOnly && !l.IsActive {
			continue
		}
		if filter.CompanyID != nil && l.CompanyID != *filter.CompanyID {
			continue
		}
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (f *fakeListings) CountActiveByCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range f.byID {
		if l.CompanyID == companyID && l.IsActive {
			n++
		}
	}
	return n, nil
}

// put stores a listing as-is, bypassing the service.
func (f *fakeListings) put(l *model.Listing) *model.Listing {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.byID[l.ID] = l
	return l
}

type fakeOffers struct {
	byID       map[uuid.UUID]*model.PriceOffer
	lastFilter repository.OfferFilter
}

func newFakeOffers() *fakeOffers {
	return &fakeOffers{byID: map[uuid.UUID]*model.PriceOffer{}}
}

func (f *fakeOffers) Create(_ context.Context, o *model.PriceOffer) error {
	o.ID = uuid.New()
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOffers) Update(_ context.Context, o *model.PriceOffer) error {
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOffers) FindByID(_ context.Context, id uuid.UUID) (*model.PriceOffer, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOffers) List(_ context.Context, filter repository.OfferFilter) ([]model.PriceOffer, int64, error) {
	f.lastFilter = filter
	var out []model.PriceOffer
	for _, o := range f.byID {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeUsers struct {
	byID    map[uuid.UUID]*model.User
	tokens  map[string]*model.RefreshToken
	revoked []uuid.UUID
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]*model.User{}, tokens: map[string]*model.RefreshToken{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) CreateRefreshToken(_ context.Context, t *model.RefreshToken) error {
	t.ID = uuid.New()
	f.tokens[t.TokenHash] = t
	return nil
}

func (f *fakeUsers) GetRefreshToken(_ context.Context, hash string) (*model.RefreshToken, error) {
	t, ok := f.tokens[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeUsers) RevokeRefreshToken(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, t := range f.tokens {
		if t.ID == id {
			t.RevokedAt = &at
		}
	}
	return nil
}

func (f *fakeUsers) RevokeUserTokens(_ context.Context, userID uuid.UUID, at time.Time) error {
	f.revoked = append(f.revoked, userID)
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &at
		}
	}
	return nil
}

type fakeSlides struct {
	byID map[uuid.UUID]*model.HeroSlide
}

func newFakeSlides() *fakeSlides {
	return &fakeSlides{byID: map[uuid.UUID]*model.HeroSlide{}}
}

func (f *fakeSlides) Create(_ context.Context, s *model.HeroSlide) error {
	s.ID = uuid.New()
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSlides) Update(_ context.Context, s *model.HeroSlide) error {
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSlides) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeSlides) FindByID(_ context.Context, id uuid.UUID) (*model.HeroSlide, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlides) List(_ context.Context, activeOnly bool) ([]model.HeroSlide, error) {
	var out []model.HeroSlide
	for _, s := range f.byID {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSlides) put(s *model.HeroSlide) *model.HeroSlide {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.byID[s.ID] = s
	return s
}

func companyActor(companyID uuid.UUID) Actor {
	id := companyID
	return Actor{UserID: uuid.New(), Role: "company", CompanyID: &id}
}

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Role: "admin"}
}
