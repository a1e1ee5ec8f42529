package handler

import (
	"errors"
	"net/http"

	"nakliye/internal/formshape"
	"nakliye/internal/location"
	"nakliye/internal/service"
	"nakliye/pkg/response"

	"github.com/gin-gonic/gin"
)

// ValidationResult is the outcome of a dry-run form validation.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type ReferenceHandler struct {
	referenceService service.ReferenceService
}

func NewReferenceHandler(referenceService service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	ref := router.Group("/reference")
	{
		ref.GET("/countries", h.Countries)
		ref.GET("/cities", h.Cities)
		ref.GET("/districts", h.Districts)
		ref.GET("/options", h.Options)
		ref.GET("/options/:table", h.Option)
	}

	forms := router.Group("/forms")
	{
		forms.GET("/:form", h.Form)
		forms.GET("/:form/kinds/:kind/fields", h.Fields)
		forms.POST("/:form/kind-change", h.ChangeKind)
		forms.POST("/:form/validate", h.Validate)
	}

	addr := router.Group("/address")
	{
		addr.POST("/country-change", h.CountryChanged)
		addr.POST("/city-change", h.CityChanged)
		addr.POST("/normalize", h.Normalize)
	}
}

// Countries lists the selectable countries
// @Summary      List countries
// @Tags         reference
// @Produce      json
// @Success      200  {object}  response.Response{data=[]location.Country}
// @Router       /api/reference/countries [get]
func (h *ReferenceHandler) Countries(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.Countries()))
}

// Cities lists the cities of a country
// @Summary      List cities
// @Description  Turkey has an enumerated list; other countries are free text
// @Tags         reference
// @Produce      json
// @Param        country  query     string  true  "ISO country code"
// @Success      200      {object}  response.Response{data=location.CityChoices}
// @Router       /api/reference/cities [get]
func (h *ReferenceHandler) Cities(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.Cities(c.Query("country"))))
}

// Districts lists the districts of a city
// @Summary      List districts
// @Description  An empty list means the district is free text
// @Tags         reference
// @Produce      json
// @Param        country  query     string  true  "ISO country code"
// @Param        city     query     string  true  "City name"
// @Success      200      {object}  response.Response{data=[]string}
// @Router       /api/reference/districts [get]
func (h *ReferenceHandler) Districts(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.Districts(c.Query("country"), c.Query("city"))))
}

// Options returns every option table
// @Summary      List option tables
// @Tags         reference
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/reference/options [get]
func (h *ReferenceHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.Options()))
}

// Option returns one option table
// @Summary      Get option table
// @Tags         reference
// @Produce      json
// @Param        table  path      string  true  "Table name, e.g. cargo_types"
// @Success      200    {object}  response.Response{data=[]formshape.Option}
// @Failure      404    {object}  response.Response
// @Router       /api/reference/options/{table} [get]
func (h *ReferenceHandler) Option(c *gin.Context) {
	opts, err := h.referenceService.Option(c.Param("table"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, opts))
}

// Form describes a discriminated form
// @Summary      Describe form
// @Tags         forms
// @Produce      json
// @Param        form  path      string  true  "freight or hero-slide"
// @Success      200   {object}  response.Response{data=service.FormDescriptor}
// @Failure      404   {object}  response.Response
// @Router       /api/forms/{form} [get]
func (h *ReferenceHandler) Form(c *gin.Context) {
	desc, err := h.referenceService.Form(c.Param("form"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, desc))
}

// Fields lists the fields of one kind
// @Summary      Fields of a kind
// @Tags         forms
// @Produce      json
// @Param        form  path      string  true  "freight or hero-slide"
// @Param        kind  path      string  true  "Kind, e.g. Ticari"
// @Success      200   {object}  response.Response{data=service.KindDescriptor}
// @Failure      400   {object}  response.Response
// @Router       /api/forms/{form}/kinds/{kind}/fields [get]
func (h *ReferenceHandler) Fields(c *gin.Context) {
	desc, err := h.referenceService.Fields(c.Param("form"), c.Param("kind"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, desc))
}

// ChangeKind rebuilds a form state for a newly selected kind
// @Summary      Switch kind
// @Description  Resets kind-specific values to defaults and keeps the shared ones
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form     path      string                     true  "freight or hero-slide"
// @Param        payload  body      service.KindChangeRequest  true  "New kind and current state"
// @Success      200      {object}  response.Response{data=formshape.State}
// @Failure      400      {object}  response.Response
// @Router       /api/forms/{form}/kind-change [post]
func (h *ReferenceHandler) ChangeKind(c *gin.Context) {
	var req service.KindChangeRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.referenceService.ChangeKind(c.Param("form"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, st))
}

// Validate dry-runs the form validation
// @Summary      Validate form state
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form     path      string                       true  "freight or hero-slide"
// @Param        payload  body      service.ValidateFormRequest  true  "State to check"
// @Success      200      {object}  response.Response{data=ValidationResult}
// @Failure      400      {object}  response.Response
// @Router       /api/forms/{form}/validate [post]
func (h *ReferenceHandler) Validate(c *gin.Context) {
	var req service.ValidateFormRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.referenceService.ValidateForm(c.Param("form"), req.State)

	var missing *formshape.MissingFieldError
	var invalid *formshape.InvalidFieldError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response.Success(http.StatusOK, ValidationResult{Valid: true}))
	case errors.As(err, &missing):
		c.JSON(http.StatusOK, response.Success(http.StatusOK, ValidationResult{Field: missing.Field, Reason: "required"}))
	case errors.As(err, &invalid):
		c.JSON(http.StatusOK, response.Success(http.StatusOK, ValidationResult{Field: invalid.Field, Reason: invalid.Reason}))
	default:
		writeServiceError(c, err)
	}
}

// CountryChanged applies a country selection to an address
// @Summary      Country changed
// @Description  City and district are cleared
// @Tags         address
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CountryChangeRequest  true  "New country and current address"
// @Success      200      {object}  response.Response{data=location.Address}
// @Failure      400      {object}  response.Response
// @Router       /api/address/country-change [post]
func (h *ReferenceHandler) CountryChanged(c *gin.Context) {
	var req service.CountryChangeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.CountryChanged(req)))
}

// CityChanged applies a city selection to an address
// @Summary      City changed
// @Description  The district is cleared unless the same city is selected again
// @Tags         address
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CityChangeRequest  true  "New city and current address"
// @Success      200      {object}  response.Response{data=location.Address}
// @Failure      400      {object}  response.Response
// @Router       /api/address/city-change [post]
func (h *ReferenceHandler) CityChanged(c *gin.Context) {
	var req service.CityChangeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.CityChanged(req)))
}

// Normalize clears the address levels that no longer match the catalog
// @Summary      Normalize address
// @Tags         address
// @Accept       json
// @Produce      json
// @Param        payload  body      location.Address  true  "Address"
// @Success      200      {object}  response.Response{data=service.NormalizeAddressResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/address/normalize [post]
func (h *ReferenceHandler) Normalize(c *gin.Context) {
	var req location.Address
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.NormalizeAddress(req)))
}
