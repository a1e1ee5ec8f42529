package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"nakliye/internal/catalog"
	"nakliye/internal/formshape"
	"nakliye/internal/location"
	"nakliye/internal/middleware"
	"nakliye/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newReferenceRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	r, _ := newTestRouter(t, func(api *gin.RouterGroup, _ *middleware.Auth) {
		NewReferenceHandler(service.NewReferenceService(cat)).RegisterRoutes(api)
	})
	return r
}

func TestReferenceCities(t *testing.T) {
	r := newReferenceRouter(t)

	rec, env := do(t, r, http.MethodGet, "/api/reference/cities?country=TR", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tr location.CityChoices
	require.NoError(t, json.Unmarshal(env.Data, &tr))
	require.False(t, tr.FreeText)
	require.Len(t, tr.Cities, 81)

	_, env = do(t, r, http.MethodGet, "/api/reference/cities?country=DE", nil, "")
	var de location.CityChoices
	require.NoError(t, json.Unmarshal(env.Data, &de))
	require.True(t, de.FreeText)
	require.Empty(t, de.Cities)
}

func TestReferenceDistrictsFreeText(t *testing.T) {
	r := newReferenceRouter(t)

	_, env := do(t, r, http.MethodGet, "/api/reference/districts?country=TR&city=Bayburt", nil, "")
	require.JSONEq(t, `[]`, string(env.Data))
}

func TestReferenceUnknownOptionTable(t *testing.T) {
	r := newReferenceRouter(t)

	rec, _ := do(t, r, http.MethodGet, "/api/reference/options/planets", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestKindChangeKeepsSharedValues(t *testing.T) {
	r := newReferenceRouter(t)

	body := service.KindChangeRequest{
		Kind: string(catalog.FreightEmptyTruck),
		State: formshape.State{Kind: catalog.FreightCommercial, Values: map[string]any{
			catalog.KeyTitle:      "Gebze - İzmir",
			catalog.KeyOriginCity: "Kocaeli",
			"cargoType":           "Paletli",
			"cargoWeight":         12,
		}},
	}
	rec, env := do(t, r, http.MethodPost, "/api/forms/freight/kind-change", body, "")
	require.Equal(t, http.StatusOK, rec.Code, env.Error)

	var st formshape.State
	require.NoError(t, json.Unmarshal(env.Data, &st))
	require.Equal(t, catalog.FreightEmptyTruck, st.Kind)
	require.Equal(t, "Gebze - İzmir", st.Values[catalog.KeyTitle])
	require.Equal(t, "Kocaeli", st.Values[catalog.KeyOriginCity])
	require.Equal(t, "ton", st.Values["vehicleStatedCapacityUnit"])
	require.NotContains(t, st.Values, "cargoType")
	require.NotContains(t, st.Values, "cargoWeight")
}

func TestKindChangeRejectsUnknownKind(t *testing.T) {
	r := newReferenceRouter(t)

	rec, _ := do(t, r, http.MethodPost, "/api/forms/freight/kind-change", service.KindChangeRequest{Kind: "Kargo"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/api/forms/invoice/kind-change", service.KindChangeRequest{Kind: "Ticari"}, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateReportsFirstMissingField(t *testing.T) {
	r := newReferenceRouter(t)

	body := service.ValidateFormRequest{State: formshape.State{Kind: catalog.FreightEmptyTruck, Values: map[string]any{
		"emptyVehicleType":          "Tır",
		"serviceType":               "Yurt İçi",
		"vehicleStatedCapacityUnit": "ton",
	}}}
	rec, env := do(t, r, http.MethodPost, "/api/forms/freight/validate", body, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res ValidationResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.False(t, res.Valid)
	require.Equal(t, "vehicleStatedCapacity", res.Field)
	require.Equal(t, "required", res.Reason)

	body.State.Values["vehicleStatedCapacity"] = 24
	_, env = do(t, r, http.MethodPost, "/api/forms/freight/validate", body, "")
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.True(t, res.Valid)
}

func TestAddressCascade(t *testing.T) {
	r := newReferenceRouter(t)
	start := location.Address{Country: "TR", City: "İstanbul", District: "Kadıköy"}

	_, env := do(t, r, http.MethodPost, "/api/address/city-change", service.CityChangeRequest{City: "Ankara", Address: start}, "")
	var got location.Address
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, location.Address{Country: "TR", City: "Ankara"}, got)

	_, env = do(t, r, http.MethodPost, "/api/address/city-change", service.CityChangeRequest{City: "İstanbul", Address: start}, "")
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, start, got)

	_, env = do(t, r, http.MethodPost, "/api/address/country-change", service.CountryChangeRequest{Country: "DE", Address: start}, "")
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, location.Address{Country: "DE"}, got)

	rec, _ := do(t, r, http.MethodPost, "/api/address/country-change", service.CountryChangeRequest{Country: "XX", Address: start}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNormalizeAddress(t *testing.T) {
	r := newReferenceRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/address/normalize", location.Address{Country: "TR", City: "Ankara", District: "Kadıköy"}, "")
	var res service.NormalizeAddressResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Equal(t, location.Address{Country: "TR", City: "Ankara"}, res.Address)
	require.Equal(t, []string{"address.district"}, res.Cleared)
}
