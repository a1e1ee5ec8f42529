package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nakliye/internal/location"
	"nakliye/internal/model"
	"nakliye/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakePlans struct {
	byID map[uuid.UUID]*model.MembershipPlan
}

func (f *fakePlans) Create(_ context.Context, p *model.MembershipPlan) error {
	p.ID = uuid.New()
	f.byID[p.ID] = p
	return nil
}

func (f *fakePlans) Update(_ context.Context, p *model.MembershipPlan) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakePlans) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakePlans) FindByID(_ context.Context, id uuid.UUID) (*model.MembershipPlan, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePlans) List(context.Context, bool) ([]model.MembershipPlan, error) {
	var out []model.MembershipPlan
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func newCompanyFixture(t *testing.T, companies ...*model.Company) (CompanyService, *fakeCompanies, *fakePlans, *fakeAudit) {
	t.Helper()
	repo := newFakeCompanies(companies...)
	plans := &fakePlans{byID: map[uuid.UUID]*model.MembershipPlan{}}
	audit := &fakeAudit{}
	return NewCompanyService(repo, plans, audit, &fakeTx{}, testCatalog(t)), repo, plans, audit
}

func strPtr(s string) *string { return &s }

func TestUpdateOwnCompany(t *testing.T) {
	company := &model.Company{ID: uuid.New(), Name: "Trakya Nakliye", Status: model.CompanyApproved, Country: "TR", City: "Bayburt"}
	svc, repo, _, audit := newCompanyFixture(t, company)

	routes := []string{"Avrupa", "Balkanlar", "Avrupa"}
	res, err := svc.UpdateOwn(context.Background(), companyActor(company.ID), UpdateCompanyRequest{
		Name:          strPtr("  Trakya Uluslararası Nakliye "),
		Address:       &location.Address{Country: "TR", City: "İstanbul", District: "Kadıköy"},
		WorkingRoutes: &routes,
	})
	require.NoError(t, err)
	require.Equal(t, "Trakya Uluslararası Nakliye", res.Name)
	require.Equal(t, location.Address{Country: "TR", City: "İstanbul", District: "Kadıköy"}, res.Address)
	require.Equal(t, []string{"Avrupa", "Balkanlar"}, res.WorkingRoutes)
	require.Contains(t, repo.byID[company.ID].SearchText, "istanbul")
	require.Contains(t, audit.entries[0].Details, `"working_routes"`)
}

func TestUpdateCompanyRejects(t *testing.T) {
	company := &model.Company{ID: uuid.New(), Name: "Trakya Nakliye", Status: model.CompanyApproved}
	svc, _, _, _ := newCompanyFixture(t, company)
	ctx := context.Background()

	_, err := svc.UpdateCompany(ctx, companyActor(uuid.New()), company.ID.String(), UpdateCompanyRequest{Name: strPtr("x")})
	require.ErrorIs(t, err, ErrForbidden)

	bad := []string{"Mars"}
	_, err = svc.UpdateOwn(ctx, companyActor(company.ID), UpdateCompanyRequest{WorkingRoutes: &bad})
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = svc.UpdateOwn(ctx, companyActor(company.ID), UpdateCompanyRequest{Name: strPtr("  ")})
	var v *ValidationError
	require.True(t, errors.As(err, &v))
	require.Equal(t, "name", v.Field)

	_, err = svc.UpdateOwn(ctx, adminActor(), UpdateCompanyRequest{})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGetPublicHidesUnapproved(t *testing.T) {
	pending := &model.Company{ID: uuid.New(), Name: "Yeni Firma", Status: model.CompanyPending}
	svc, _, _, _ := newCompanyFixture(t, pending)

	_, err := svc.GetPublic(context.Background(), pending.ID.String())
	require.ErrorIs(t, err, ErrNotFound)

	res, err := svc.SetStatus(context.Background(), adminActor(), pending.ID.String(), SetCompanyStatusRequest{Status: model.CompanyApproved})
	require.NoError(t, err)
	require.Equal(t, model.CompanyApproved, res.Status)

	_, err = svc.GetPublic(context.Background(), pending.ID.String())
	require.NoError(t, err)
}

func TestAssignMembership(t *testing.T) {
	company := &model.Company{ID: uuid.New(), Name: "Trakya Nakliye", Status: model.CompanyApproved}
	svc, repo, plans, audit := newCompanyFixture(t, company)
	ctx := context.Background()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	svc.(*companyService).now = func() time.Time { return now }

	gold := &model.MembershipPlan{ID: uuid.New(), Name: "Altın", DurationDays: 30, ListingLimit: 50, IsActive: true}
	retired := &model.MembershipPlan{ID: uuid.New(), Name: "Eski", DurationDays: 30, IsActive: false}
	plans.byID[gold.ID] = gold
	plans.byID[retired.ID] = retired

	res, err := svc.AssignMembership(ctx, adminActor(), company.ID.String(), AssignMembershipRequest{PlanID: gold.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, res.Membership)
	require.Equal(t, "Altın", res.Membership.Name)
	require.Equal(t, now.AddDate(0, 0, 30), *res.Membership.ExpiresAt)
	require.False(t, res.Membership.Expired)
	require.Equal(t, gold.ID, *repo.byID[company.ID].MembershipPlanID)

	svc.(*companyService).now = func() time.Time { return now.AddDate(0, 0, 31) }
	res, err = svc.GetCompany(ctx, company.ID.String())
	require.NoError(t, err)
	require.True(t, res.Membership.Expired)

	_, err = svc.AssignMembership(ctx, adminActor(), company.ID.String(), AssignMembershipRequest{PlanID: retired.ID.String()})
	require.ErrorIs(t, err, ErrInvalidState)

	res, err = svc.AssignMembership(ctx, adminActor(), company.ID.String(), AssignMembershipRequest{})
	require.NoError(t, err)
	require.Nil(t, res.Membership)
	require.Nil(t, repo.byID[company.ID].MembershipPlanID)
	require.Equal(t, []string{model.ActionAssignPlan, model.ActionAssignPlan}, audit.actions())
}
