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

type OfferHandler struct {
	offerService service.OfferService
	auth         *middleware.Auth
}

func NewOfferHandler(offerService service.OfferService, auth *middleware.Auth) *OfferHandler {
	return &OfferHandler{offerService: offerService, auth: auth}
}

func (h *OfferHandler) RegisterRoutes(router *gin.RouterGroup) {
	offers := router.Group("/offers")
	offers.Use(h.auth.RequireRole(token.RoleCompany))
	{
		offers.POST("", h.CreateOffer)
		offers.GET("/sent", h.ListSent)
		offers.GET("/received", h.ListReceived)
		offers.PATCH("/:id/accept", h.Accept)
		offers.PATCH("/:id/reject", h.Reject)
	}

	router.GET("/admin/offers", h.auth.RequireRole(token.RoleAdmin), h.ListAll)
}

func offerQuery(c *gin.Context) service.OfferQuery {
	p := pagination.Parse(c)
	return service.OfferQuery{
		Status:    c.Query("status"),
		ListingID: c.Query("listing_id"),
		Page:      p.Page,
		Limit:     p.Limit,
	}
}

// CreateOffer sends a price offer
// @Summary      Send offer
// @Description  With listing_id the receiver and an empty route are taken from the listing
// @Tags         offers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOfferRequest  true  "Offer payload"
// @Success      201      {object}  response.Response{data=service.OfferResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/offers [post]
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.CreateOfferRequest
	if !bindJSON(c, &req) {
		return
	}
	offer, err := h.offerService.CreateOffer(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, offer))
}

// ListSent returns the offers sent by the caller's company
// @Summary      Sent offers
// @Tags         offers
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "pending, accepted or rejected"
// @Success      200     {object}  response.Response{data=[]service.OfferResponse}
// @Router       /api/offers/sent [get]
func (h *OfferHandler) ListSent(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	q := offerQuery(c)
	offers, total, err := h.offerService.ListSent(c.Request.Context(), actor, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, offers, q.Page, q.Limit, total))
}

// ListReceived returns the offers received by the caller's company
// @Summary      Received offers
// @Tags         offers
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "pending, accepted or rejected"
// @Success      200     {object}  response.Response{data=[]service.OfferResponse}
// @Router       /api/offers/received [get]
func (h *OfferHandler) ListReceived(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	q := offerQuery(c)
	offers, total, err := h.offerService.ListReceived(c.Request.Context(), actor, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, offers, q.Page, q.Limit, total))
}

// ListAll returns every offer
// @Summary      All offers
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.OfferResponse}
// @Router       /api/admin/offers [get]
func (h *OfferHandler) ListAll(c *gin.Context) {
	q := offerQuery(c)
	offers, total, err := h.offerService.ListAll(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, offers, q.Page, q.Limit, total))
}

// Accept accepts a pending offer
// @Summary      Accept offer
// @Tags         offers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Offer ID"
// @Success      200  {object}  response.Response{data=service.OfferResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/offers/{id}/accept [patch]
func (h *OfferHandler) Accept(c *gin.Context) {
	h.respond(c, true)
}

// Reject rejects a pending offer
// @Summary      Reject offer
// @Tags         offers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Offer ID"
// @Success      200  {object}  response.Response{data=service.OfferResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/offers/{id}/reject [patch]
func (h *OfferHandler) Reject(c *gin.Context) {
	h.respond(c, false)
}

func (h *OfferHandler) respond(c *gin.Context, accept bool) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	offer, err := h.offerService.Respond(c.Request.Context(), actor, c.Param("id"), accept)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, offer))
}
