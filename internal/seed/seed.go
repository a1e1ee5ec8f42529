// Package seed populates a fresh database with the platform admin and the editorial
// content the public pages expect. Every step is idempotent.
package seed

import (
	"context"
	"fmt"

	"nakliye/internal/catalog"
	"nakliye/internal/location"
	"nakliye/internal/service"
	"nakliye/internal/token"

	"github.com/shopspring/decimal"
)

// Admin is the bootstrap administrator account.
type Admin struct {
	Email    string
	Password string
	FullName string
}

// Step is one unit of seeding. Run reports how many rows it created.
type Step struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// Seeder writes seed rows through the regular services so validation and audit apply.
type Seeder struct {
	auth     service.AuthService
	plans    service.MembershipService
	slides   service.HeroSlideService
	contacts service.ContactService
	actor    service.Actor
}

func New(
	auth service.AuthService,
	plans service.MembershipService,
	slides service.HeroSlideService,
	contacts service.ContactService,
) *Seeder {
	return &Seeder{
		auth:     auth,
		plans:    plans,
		slides:   slides,
		contacts: contacts,
		actor:    service.Actor{Role: token.RoleAdmin},
	}
}

// Steps returns the seeding plan in execution order.
func (s *Seeder) Steps(admin Admin) []Step {
	return []Step{
		{Name: "admin", Run: func(ctx context.Context) (int, error) { return s.seedAdmin(ctx, admin) }},
		{Name: "membership plans", Run: s.seedPlans},
		{Name: "hero slides", Run: s.seedSlides},
		{Name: "directory", Run: s.seedContacts},
	}
}

func (s *Seeder) seedAdmin(ctx context.Context, admin Admin) (int, error) {
	created, err := s.auth.EnsureAdmin(ctx, admin.Email, admin.Password, admin.FullName)
	if err != nil {
		return 0, fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		return 1, nil
	}
	return 0, nil
}

var defaultPlans = []service.MembershipPlanRequest{
	{Name: "Temel", Description: "Yeni başlayan firmalar için", Price: decimal.NewFromInt(0), Currency: "TRY", DurationDays: 30, ListingLimit: 3, SortOrder: 1},
	{Name: "Standart", Description: "Düzenli ilan veren firmalar için", Price: decimal.NewFromInt(1500), Currency: "TRY", DurationDays: 30, ListingLimit: 25, SortOrder: 2},
	{Name: "Premium", Description: "Sınırsız ilan", Price: decimal.NewFromInt(12000), Currency: "TRY", DurationDays: 365, ListingLimit: 0, SortOrder: 3},
}

func (s *Seeder) seedPlans(ctx context.Context) (int, error) {
	existing, err := s.plans.ListPlans(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, req := range defaultPlans {
		if _, err := s.plans.CreatePlan(ctx, s.actor, req); err != nil {
			return i, fmt.Errorf("plan %s: %w", req.Name, err)
		}
	}
	return len(defaultPlans), nil
}

var defaultSlides = []service.HeroSlideRequest{
	{SlideType: string(catalog.SlideCentered), Order: position(1), Values: map[string]interface{}{
		catalog.KeySlideTitle: "Yükünüz için doğru aracı bulun",
		"subtitle":            "Türkiye'nin her yerinden nakliye ilanları",
		"buttonText":          "İlanlara göz at",
		"buttonLink":          "/listings",
		"backgroundImageUrl":  "/images/hero/road.jpg",
	}},
	{SlideType: string(catalog.SlideWithInput), Order: position(2), Values: map[string]interface{}{
		catalog.KeySlideTitle: "Nereye taşıyorsunuz?",
		"inputPlaceholder":    "Şehir ara",
		"buttonText":          "Ara",
	}},
	{SlideType: string(catalog.SlideSplit), Order: position(3), Values: map[string]interface{}{
		catalog.KeySlideTitle: "Boş aracınızı ilan edin",
		"imageUrl":            "/images/hero/truck.jpg",
		"buttonText":          "Firma kaydı",
		"buttonLink":          "/register",
	}},
}

func position(n int) *int { return &n }

func (s *Seeder) seedSlides(ctx context.Context) (int, error) {
	existing, err := s.slides.ListSlides(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, req := range defaultSlides {
		if _, err := s.slides.CreateSlide(ctx, s.actor, req); err != nil {
			return i, fmt.Errorf("slide %s: %w", req.SlideType, err)
		}
	}
	return len(defaultSlides), nil
}

var defaultContacts = []service.ContactRequest{
	{Name: "Tuzla Lojistik Merkezi", Category: "Lojistik Merkezi", Phone: "+90 216 000 00 00",
		Address: location.Address{Country: location.CountryTurkey, City: "İstanbul", District: "Tuzla"}},
	{Name: "Mersin Limanı", Category: "Liman",
		Address: location.Address{Country: location.CountryTurkey, City: "Mersin", District: "Akdeniz"}},
	{Name: "Torbalı Kamyon Parkı", Category: "Park Alanı",
		Address: location.Address{Country: location.CountryTurkey, City: "İzmir", District: "Torbalı"}},
}

func (s *Seeder) seedContacts(ctx context.Context) (int, error) {
	_, total, err := s.contacts.ListContacts(ctx, service.ContactQuery{Page: 1, Limit: 1}, false)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}
	for i, req := range defaultContacts {
		if _, err := s.contacts.CreateContact(ctx, s.actor, req); err != nil {
			return i, fmt.Errorf("contact %s: %w", req.Name, err)
		}
	}
	return len(defaultContacts), nil
}
