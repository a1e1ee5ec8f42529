package handler

import (
	"net/http"

	"nakliye/internal/middleware"
	"nakliye/internal/service"
	"nakliye/internal/token"
	"nakliye/pkg/pagination"
	"nakliye/pkg/response"

	"github.com/gin-gonic/gin"
)

// ActiveRequest toggles the visibility of a resource.
type ActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type ListingHandler struct {
	listingService service.ListingService
	auth           *middleware.Auth
}

func NewListingHandler(listingService service.ListingService, auth *middleware.Auth) *ListingHandler {
	return &ListingHandler{listingService: listingService, auth: auth}
}

func (h *ListingHandler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/listings")
	{
		public.GET("", h.ListPublic)
		public.GET("/:id", h.GetListing)
		public.GET("/:id/form", h.auth.RequireRole(token.RoleAdmin, token.RoleCompany), h.GetListingForm)
	}

	own := router.Group("/my/listings")
	own.Use(h.auth.RequireRole(token.RoleCompany))
	{
		own.GET("", h.ListOwn)
		own.POST("", h.CreateListing)
		own.PUT("/:id", h.UpdateListing)
		own.PATCH("/:id/active", h.SetActive)
		own.DELETE("/:id", h.DeleteListing)
	}

	admin := router.Group("/admin/listings")
	admin.Use(h.auth.RequireRole(token.RoleAdmin))
	{
		admin.GET("", h.ListAll)
		admin.PATCH("/:id/active", h.SetActive)
		admin.DELETE("/:id", h.DeleteListing)
	}
}

func listingQuery(c *gin.Context) service.ListingQuery {
	p := pagination.Parse(c)
	return service.ListingQuery{
		CompanyID:       c.Query("company_id"),
		FreightType:     c.Query("freight_type"),
		OriginCity:      c.Query("origin_city"),
		DestinationCity: c.Query("destination_city"),
		Search:          c.Query("search"),
		Page:            p.Page,
		Limit:           p.Limit,
	}
}

func writeListingPage(c *gin.Context, q service.ListingQuery, listings []service.ListingResponse, total int64, err error) {
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, listings, q.Page, q.Limit, total))
}

// ListPublic returns active listings
// @Summary      List listings
// @Tags         listings
// @Produce      json
// @Param        page              query     int     false  "Page number (default: 1)"
// @Param        limit             query     int     false  "Items per page (default: 20)"
// @Param        freight_type      query     string  false  "Ticari, Evden Eve or Boş Araç"
// @Param        origin_city       query     string  false  "Origin city"
// @Param        destination_city  query     string  false  "Destination city"
// @Param        search            query     string  false  "Search title, company and cities"
// @Success      200               {object}  response.Response{data=[]service.ListingResponse}
// @Router       /api/listings [get]
func (h *ListingHandler) ListPublic(c *gin.Context) {
	q := listingQuery(c)
	listings, total, err := h.listingService.ListPublic(c.Request.Context(), q)
	writeListingPage(c, q, listings, total, err)
}

// GetListing returns one active listing
// @Summary      Get listing
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  response.Response{data=service.ListingResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.listingService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listing))
}

// GetListingForm returns the edit form state of a listing
// @Summary      Listing edit form
// @Description  Re-validates stored data: stale address levels and options are cleared and reported
// @Tags         listings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  response.Response{data=service.ListingFormResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/listings/{id}/form [get]
func (h *ListingHandler) GetListingForm(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	form, err := h.listingService.ListingForm(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, form))
}

// ListOwn returns the listings of the caller's company
// @Summary      My listings
// @Tags         listings
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default: 1)"
// @Param        limit  query     int  false  "Items per page (default: 20)"
// @Success      200    {object}  response.Response{data=[]service.ListingResponse}
// @Router       /api/my/listings [get]
func (h *ListingHandler) ListOwn(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	q := listingQuery(c)
	listings, total, err := h.listingService.ListOwn(c.Request.Context(), actor, q)
	writeListingPage(c, q, listings, total, err)
}

// ListAll returns every listing for moderation
// @Summary      All listings
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default: 1)"
// @Param        limit       query     int     false  "Items per page (default: 20)"
// @Param        company_id  query     string  false  "Filter by company"
// @Success      200         {object}  response.Response{data=[]service.ListingResponse}
// @Router       /api/admin/listings [get]
func (h *ListingHandler) ListAll(c *gin.Context) {
	q := listingQuery(c)
	listings, total, err := h.listingService.ListAll(c.Request.Context(), q)
	writeListingPage(c, q, listings, total, err)
}

// CreateListing publishes a freight listing
// @Summary      Create listing
// @Tags         listings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ListingRequest  true  "Listing payload"
// @Success      201      {object}  response.Response{data=service.ListingResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/my/listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.ListingRequest
	if !bindJSON(c, &req) {
		return
	}
	listing, err := h.listingService.CreateListing(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, listing))
}

// UpdateListing replaces a listing
// @Summary      Update listing
// @Description  Changing the freight type drops the previous type's fields
// @Tags         listings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Listing ID"
// @Param        payload  body      service.ListingRequest  true  "Listing payload"
// @Success      200      {object}  response.Response{data=service.ListingResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/my/listings/{id} [put]
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.ListingRequest
	if !bindJSON(c, &req) {
		return
	}
	listing, err := h.listingService.UpdateListing(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listing))
}

// SetActive publishes or hides a listing
// @Summary      Toggle listing
// @Tags         listings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Listing ID"
// @Param        payload  body      ActiveRequest  true  "Visibility"
// @Success      200      {object}  response.Response{data=service.ListingResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/my/listings/{id}/active [patch]
func (h *ListingHandler) SetActive(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req ActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	listing, err := h.listingService.SetActive(c.Request.Context(), actor, c.Param("id"), *req.IsActive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listing))
}

// DeleteListing removes a listing (soft delete)
// @Summary      Delete listing
// @Tags         listings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/my/listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.listingService.DeleteListing(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Listing deleted successfully"))
}
