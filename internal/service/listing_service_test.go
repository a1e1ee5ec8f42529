package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"nakliye/internal/catalog"
	"nakliye/internal/formshape"
	"nakliye/internal/location"
	"nakliye/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type listingFixture struct {
	svc       ListingService
	listings  *fakeListings
	companies *fakeCompanies
	audit     *fakeAudit
	events    *fakeEvents
	company   *model.Company
}

func newListingFixture(t *testing.T, plan *model.MembershipPlan) listingFixture {
	t.Helper()
	company := &model.Company{ID: uuid.New(), Name: "Anadolu Lojistik", City: "Kocaeli", Status: model.CompanyApproved, MembershipPlan: plan}
	f := listingFixture{
		listings:  newFakeListings(),
		companies: newFakeCompanies(company),
		audit:     &fakeAudit{},
		events:    &fakeEvents{},
		company:   company,
	}
	f.svc = NewListingService(f.listings, f.companies, f.audit, &fakeTx{}, testCatalog(t), f.events)
	return f
}

func commercialRequest() ListingRequest {
	return ListingRequest{
		FreightType: string(catalog.FreightCommercial),
		Title:       "Gebze - Bayburt paletli yük",
		Origin:      location.Address{Country: "TR", City: "Kocaeli", District: "Gebze"},
		Destination: location.Address{Country: "TR", City: "Bayburt", District: "Merkez"},
		LoadingDate: "2026-11-02",
		Details: map[string]interface{}{
			"cargoType":     "Tekstil",
			"vehicleNeeded": "Tır",
			"loadingType":   "Komple",
			"cargoForm":     "Paletli",
			"cargoWeight":   12,
		},
	}
}

func TestCreateListingStoresTypedDetails(t *testing.T) {
	f := newListingFixture(t, nil)
	actor := companyActor(f.company.ID)

	res, err := f.svc.CreateListing(context.Background(), actor, commercialRequest())
	require.NoError(t, err)
	require.True(t, res.IsActive)
	require.Equal(t, "Gebze", res.Origin.District)
	require.Equal(t, "Merkez", res.Destination.District)
	require.Equal(t, "2026-11-02", res.LoadingDate)
	require.Equal(t, "ton", res.Details["cargoWeightUnit"])
	require.Equal(t, false, res.Details["isContinuousLoad"])
	require.NotNil(t, res.Company)
	require.Equal(t, "Anadolu Lojistik", res.Company.Name)

	stored := f.listings.byID[res.ID]
	require.JSONEq(t, `{"cargoType":"Tekstil","vehicleNeeded":"Tır","loadingType":"Komple","cargoForm":"Paletli",
		"cargoWeight":12,"cargoWeightUnit":"ton","isContinuousLoad":false}`, stored.Details)
	require.Contains(t, stored.SearchText, "gebze")

	require.Equal(t, []string{model.ActionCreateListing}, f.audit.actions())
	require.Len(t, f.events.events, 1)
	require.Equal(t, EventListingCreated, f.events.events[0].Event)
}

func TestCreateListingValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(r *ListingRequest)
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown freight type",
			edit: func(r *ListingRequest) { r.FreightType = "Kargo" },
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrUnknownKind)
			},
		},
		{
			name: "missing type specific field",
			edit: func(r *ListingRequest) { delete(r.Details, "cargoForm") },
			check: func(t *testing.T, err error) {
				var missing *formshape.MissingFieldError
				require.True(t, errors.As(err, &missing))
				require.Equal(t, "cargoForm", missing.Field)
			},
		},
		{
			name: "non positive weight",
			edit: func(r *ListingRequest) { r.Details["cargoWeight"] = 0 },
			check: func(t *testing.T, err error) {
				var missing *formshape.MissingFieldError
				require.True(t, errors.As(err, &missing))
				require.Equal(t, "cargoWeight", missing.Field)
			},
		},
		{
			name: "unlisted option",
			edit: func(r *ListingRequest) { r.Details["vehicleNeeded"] = "Uçak" },
			check: func(t *testing.T, err error) {
				var bad *formshape.InvalidFieldError
				require.True(t, errors.As(err, &bad))
				require.Equal(t, "vehicleNeeded", bad.Field)
			},
		},
		{
			name: "enumerated city requires district",
			edit: func(r *ListingRequest) { r.Origin.District = "" },
			check: func(t *testing.T, err error) {
				var v *ValidationError
				require.True(t, errors.As(err, &v))
				require.Equal(t, "origin.district", v.Field)
			},
		},
		{
			name: "district from another city",
			edit: func(r *ListingRequest) { r.Origin.District = "Kadıköy" },
			check: func(t *testing.T, err error) {
				var v *ValidationError
				require.True(t, errors.As(err, &v))
				require.Equal(t, "origin.district", v.Field)
			},
		},
		{
			name: "bad date",
			edit: func(r *ListingRequest) { r.LoadingDate = "02.11.2026" },
			check: func(t *testing.T, err error) {
				var v *ValidationError
				require.True(t, errors.As(err, &v))
				require.Equal(t, "loading_date", v.Field)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t, nil)
			req := commercialRequest()
			tt.edit(&req)
			_, err := f.svc.CreateListing(context.Background(), companyActor(f.company.ID), req)
			require.Error(t, err)
			tt.check(t, err)
			require.Empty(t, f.listings.byID)
		})
	}
}

func TestCreateListingForeignAddressIsFreeText(t *testing.T) {
	f := newListingFixture(t, nil)
	req := commercialRequest()
	req.Destination = location.Address{Country: "DE", City: "Köln", District: "Ehrenfeld"}

	res, err := f.svc.CreateListing(context.Background(), companyActor(f.company.ID), req)
	require.NoError(t, err)
	require.Equal(t, location.Address{Country: "DE", City: "Köln", District: "Ehrenfeld"}, res.Destination)
}

func TestCreateListingRequiresApprovedCompany(t *testing.T) {
	f := newListingFixture(t, nil)
	f.company.Status = model.CompanyPending

	_, err := f.svc.CreateListing(context.Background(), companyActor(f.company.ID), commercialRequest())
	require.ErrorIs(t, err, ErrCompanyNotApproved)

	_, err = f.svc.CreateListing(context.Background(), adminActor(), commercialRequest())
	require.ErrorIs(t, err, ErrForbidden)
}

func TestListingQuota(t *testing.T) {
	f := newListingFixture(t, &model.MembershipPlan{ID: uuid.New(), Name: "Başlangıç", ListingLimit: 1})
	actor := companyActor(f.company.ID)
	ctx := context.Background()

	first, err := f.svc.CreateListing(ctx, actor, commercialRequest())
	require.NoError(t, err)

	_, err = f.svc.CreateListing(ctx, actor, commercialRequest())
	require.ErrorIs(t, err, ErrListingQuotaExceeded)

	inactive := commercialRequest()
	off := false
	inactive.IsActive = &off
	second, err := f.svc.CreateListing(ctx, actor, inactive)
	require.NoError(t, err)
	require.False(t, second.IsActive)

	_, err = f.svc.SetActive(ctx, actor, second.ID.String(), true)
	require.ErrorIs(t, err, ErrListingQuotaExceeded)

	_, err = f.svc.SetActive(ctx, actor, first.ID.String(), false)
	require.NoError(t, err)
	res, err := f.svc.SetActive(ctx, actor, second.ID.String(), true)
	require.NoError(t, err)
	require.True(t, res.IsActive)
}

func TestUpdateListingFreightTypeSwitch(t *testing.T) {
	f := newListingFixture(t, nil)
	actor := companyActor(f.company.ID)
	ctx := context.Background()

	created, err := f.svc.CreateListing(ctx, actor, commercialRequest())
	require.NoError(t, err)

	req := commercialRequest()
	req.FreightType = string(catalog.FreightEmptyTruck)
	req.Details = map[string]interface{}{
		"emptyVehicleType":      "Kamyon",
		"serviceType":           "Yurt İçi",
		"vehicleStatedCapacity": 18,
	}
	updated, err := f.svc.UpdateListing(ctx, actor, created.ID.String(), req)
	require.NoError(t, err)
	require.Equal(t, string(catalog.FreightEmptyTruck), updated.FreightType)
	require.Equal(t, "ton", updated.Details["vehicleStatedCapacityUnit"])
	require.NotContains(t, updated.Details, "cargoType")
	require.Equal(t, req.Title, updated.Title)

	entry := f.audit.entries[len(f.audit.entries)-1]
	require.Equal(t, model.ActionUpdateListing, entry.Action)
	require.Contains(t, entry.Details, `"freight_type_swap":true`)
}

func TestUpdateListingMergesDetails(t *testing.T) {
	f := newListingFixture(t, nil)
	actor := companyActor(f.company.ID)
	ctx := context.Background()

	created, err := f.svc.CreateListing(ctx, actor, commercialRequest())
	require.NoError(t, err)

	req := commercialRequest()
	req.Details = map[string]interface{}{"cargoWeight": 20}
	updated, err := f.svc.UpdateListing(ctx, actor, created.ID.String(), req)
	require.NoError(t, err)
	require.Equal(t, "Tekstil", updated.Details["cargoType"])
	require.Equal(t, json.Number("20"), updated.Details["cargoWeight"])
}

func TestUpdateListingReplacesSharedColumns(t *testing.T) {
	f := newListingFixture(t, nil)
	actor := companyActor(f.company.ID)
	ctx := context.Background()

	req := commercialRequest()
	req.ContactPerson = "Ayşe Yılmaz"
	req.Description = "Hafta içi yükleme"
	created, err := f.svc.CreateListing(ctx, actor, req)
	require.NoError(t, err)

	tests := []struct {
		name          string
		freightType   formshape.Kind
		details       map[string]interface{}
		wantDetailKey string
	}{
		{"same freight type", catalog.FreightCommercial, map[string]interface{}{"cargoWeight": 14}, "cargoType"},
		{"freight type switch", catalog.FreightEmptyTruck, map[string]interface{}{
			"emptyVehicleType":      "Kamyon",
			"serviceType":           "Yurt İçi",
			"vehicleStatedCapacity": 18,
		}, "emptyVehicleType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := commercialRequest()
			update.FreightType = string(tt.freightType)
			update.Details = tt.details

			updated, err := f.svc.UpdateListing(ctx, actor, created.ID.String(), update)
			require.NoError(t, err)
			require.Empty(t, updated.ContactPerson)
			require.Empty(t, updated.Description)
			require.True(t, updated.IsActive, "omitted is_active keeps the stored flag")
			require.Contains(t, updated.Details, tt.wantDetailKey)
			require.NotContains(t, updated.Details, "description")
		})
	}
}

func TestListingDetailsQuantitiesAreNumbers(t *testing.T) {
	tests := []struct {
		name   string
		kind   formshape.Kind
		values map[string]interface{}
		key    string
		want   string
	}{
		{"int weight", catalog.FreightCommercial, map[string]interface{}{"cargoWeight": 12}, "cargoWeight", "12"},
		{"legacy quoted weight", catalog.FreightCommercial, decodeValues(`{"cargoWeight":"12.5"}`), "cargoWeight", "12.5"},
		{"json number capacity", catalog.FreightEmptyTruck, map[string]interface{}{"vehicleStatedCapacity": json.Number("18")}, "vehicleStatedCapacity", "18"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := encodeDetails(tt.kind, tt.values)
			require.NoError(t, err)

			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(doc), &raw))
			require.Equal(t, tt.want, string(raw[tt.key]))
			require.Equal(t, json.Number(tt.want), decodeValues(doc)[tt.key])
		})
	}
}

func TestListingResponseRendersWeightAsNumber(t *testing.T) {
	f := newListingFixture(t, nil)
	res, err := f.svc.CreateListing(context.Background(), companyActor(f.company.ID), commercialRequest())
	require.NoError(t, err)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	var out struct {
		Details map[string]interface{} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, float64(12), out.Details["cargoWeight"])
}

func TestListingOwnership(t *testing.T) {
	f := newListingFixture(t, nil)
	ctx := context.Background()
	created, err := f.svc.CreateListing(ctx, companyActor(f.company.ID), commercialRequest())
	require.NoError(t, err)

	stranger := companyActor(uuid.New())
	_, err = f.svc.UpdateListing(ctx, stranger, created.ID.String(), commercialRequest())
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, f.svc.DeleteListing(ctx, stranger, created.ID.String()), ErrForbidden)

	require.NoError(t, f.svc.DeleteListing(ctx, adminActor(), created.ID.String()))
	_, err = f.svc.GetListing(ctx, created.ID.String())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.GetListing(ctx, "not-a-uuid")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestGetListingHidesInactive(t *testing.T) {
	f := newListingFixture(t, nil)
	l := f.listings.put(&model.Listing{CompanyID: f.company.ID, FreightType: string(catalog.FreightCommercial), IsActive: false})

	_, err := f.svc.GetListing(context.Background(), l.ID.String())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListingFormNormalizesStaleData(t *testing.T) {
	f := newListingFixture(t, nil)
	l := f.listings.put(&model.Listing{
		CompanyID:           f.company.ID,
		FreightType:         string(catalog.FreightResidential),
		Title:               "Ev taşıma",
		OriginCountry:       "TR",
		OriginCity:          "Ankara",
		OriginDistrict:      "Kadıköy",
		DestinationCountry:  "TR",
		DestinationCity:     "Atlantis",
		DestinationDistrict: "Merkez",
		IsActive:            true,
		Details: `{"residentialTransportType":"Şehirler Arası","residentialPlaceType":"Köşk",
			"residentialElevatorStatus":"Var","residentialFloorLevel":"2. Kat","cargoType":"Gıda"}`,
	})

	form, err := f.svc.ListingForm(context.Background(), companyActor(f.company.ID), l.ID.String())
	require.NoError(t, err)
	require.True(t, form.KindKnown)
	require.Equal(t, "Ankara", form.State.Values[catalog.KeyOriginCity])
	require.Equal(t, "", form.State.Values[catalog.KeyOriginDistrict])
	require.Equal(t, "", form.State.Values[catalog.KeyDestinationCity])
	require.Equal(t, "", form.State.Values[catalog.KeyDestinationDistrict])
	require.Equal(t, "", form.State.Values["residentialPlaceType"])
	require.Equal(t, "Var", form.State.Values["residentialElevatorStatus"])
	require.NotContains(t, form.State.Values, "cargoType")
	require.ElementsMatch(t, []string{
		"origin.district",
		"destination.city",
		"destination.district",
		"details.residentialPlaceType",
	}, form.Cleared)
}

func TestListingFormUnknownFreightType(t *testing.T) {
	f := newListingFixture(t, nil)
	l := f.listings.put(&model.Listing{
		CompanyID:     f.company.ID,
		FreightType:   "Konteyner",
		Title:         "Eski ilan",
		OriginCountry: "TR",
		OriginCity:    "Ankara",
		IsActive:      true,
		Details:       `{"containerSize":"40ft"}`,
	})

	form, err := f.svc.ListingForm(context.Background(), adminActor(), l.ID.String())
	require.NoError(t, err)
	require.False(t, form.KindKnown)
	require.Empty(t, form.Fields)
	require.Equal(t, "Eski ilan", form.State.Values[catalog.KeyTitle])
	require.NotContains(t, form.State.Values, "containerSize")

	res, err := f.svc.GetListing(context.Background(), l.ID.String())
	require.NoError(t, err)
	require.Empty(t, res.Details)
}

func TestListingFormCorruptDetails(t *testing.T) {
	f := newListingFixture(t, nil)
	l := f.listings.put(&model.Listing{
		CompanyID:   f.company.ID,
		FreightType: string(catalog.FreightEmptyTruck),
		IsActive:    true,
		Details:     `{not json`,
	})

	form, err := f.svc.ListingForm(context.Background(), adminActor(), l.ID.String())
	require.NoError(t, err)
	require.Equal(t, "ton", form.State.Values["vehicleStatedCapacityUnit"])
	require.Nil(t, form.State.Values["vehicleStatedCapacity"])
}

func TestListPublicFoldsSearch(t *testing.T) {
	f := newListingFixture(t, nil)

	_, _, err := f.svc.ListPublic(context.Background(), ListingQuery{Search: "  İZMİR ", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.True(t, f.listings.lastFilter.ActiveOnly)
	require.Equal(t, "%izmir%", f.listings.lastFilter.Search)

	_, _, err = f.svc.ListOwn(context.Background(), adminActor(), ListingQuery{})
	require.ErrorIs(t, err, ErrForbidden)
}
