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

// ContentHandler serves the editorial surfaces: membership plans, announcements,
// hero slides and the logistics directory.
type ContentHandler struct {
	memberships   service.MembershipService
	announcements service.AnnouncementService
	slides        service.HeroSlideService
	contacts      service.ContactService
	auth          *middleware.Auth
}

func NewContentHandler(
	memberships service.MembershipService,
	announcements service.AnnouncementService,
	slides service.HeroSlideService,
	contacts service.ContactService,
	auth *middleware.Auth,
) *ContentHandler {
	return &ContentHandler{
		memberships:   memberships,
		announcements: announcements,
		slides:        slides,
		contacts:      contacts,
		auth:          auth,
	}
}

func (h *ContentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/memberships", h.ListPlans)
	router.GET("/announcements", h.ListAnnouncements)
	router.GET("/announcements/:id", h.GetAnnouncement)
	router.GET("/hero-slides", h.ListSlides)
	router.GET("/directory", h.ListContacts)

	admin := router.Group("/admin")
	admin.Use(h.auth.RequireRole(token.RoleAdmin))
	{
		admin.GET("/memberships", h.ListAllPlans)
		admin.POST("/memberships", h.CreatePlan)
		admin.PUT("/memberships/:id", h.UpdatePlan)
		admin.DELETE("/memberships/:id", h.DeletePlan)

		admin.GET("/announcements", h.ListAllAnnouncements)
		admin.POST("/announcements", h.CreateAnnouncement)
		admin.PUT("/announcements/:id", h.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", h.DeleteAnnouncement)

		admin.GET("/hero-slides", h.ListAllSlides)
		admin.GET("/hero-slides/:id/form", h.GetSlideForm)
		admin.POST("/hero-slides", h.CreateSlide)
		admin.PUT("/hero-slides/:id", h.UpdateSlide)
		admin.DELETE("/hero-slides/:id", h.DeleteSlide)

		admin.GET("/directory", h.ListAllContacts)
		admin.POST("/directory", h.CreateContact)
		admin.PUT("/directory/:id", h.UpdateContact)
		admin.DELETE("/directory/:id", h.DeleteContact)
	}
}

// ListPlans returns the active membership plans
// @Summary      Membership plans
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.MembershipPlan}
// @Router       /api/memberships [get]
func (h *ContentHandler) ListPlans(c *gin.Context) {
	h.listPlans(c, true)
}

// ListAllPlans returns every membership plan
// @Summary      All membership plans
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.MembershipPlan}
// @Router       /api/admin/memberships [get]
func (h *ContentHandler) ListAllPlans(c *gin.Context) {
	h.listPlans(c, false)
}

func (h *ContentHandler) listPlans(c *gin.Context, activeOnly bool) {
	plans, err := h.memberships.ListPlans(c.Request.Context(), activeOnly)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, plans))
}

// CreatePlan adds a membership plan
// @Summary      Create membership plan
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.MembershipPlanRequest  true  "Plan"
// @Success      201      {object}  response.Response{data=model.MembershipPlan}
// @Router       /api/admin/memberships [post]
func (h *ContentHandler) CreatePlan(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.MembershipPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.memberships.CreatePlan(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, plan))
}

// UpdatePlan replaces a membership plan
// @Summary      Update membership plan
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Plan ID"
// @Param        payload  body      service.MembershipPlanRequest  true  "Plan"
// @Success      200      {object}  response.Response{data=model.MembershipPlan}
// @Router       /api/admin/memberships/{id} [put]
func (h *ContentHandler) UpdatePlan(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.MembershipPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.memberships.UpdatePlan(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}

// DeletePlan removes a membership plan
// @Summary      Delete membership plan
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Plan ID"
// @Success      200  {object}  response.Response
// @Router       /api/admin/memberships/{id} [delete]
func (h *ContentHandler) DeletePlan(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.memberships.DeletePlan(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Membership plan deleted successfully"))
}

// ListAnnouncements returns published announcements
// @Summary      Announcements
// @Tags         content
// @Produce      json
// @Param        page   query     int  false  "Page number (default: 1)"
// @Param        limit  query     int  false  "Items per page (default: 20)"
// @Success      200    {object}  response.Response{data=[]model.Announcement}
// @Router       /api/announcements [get]
func (h *ContentHandler) ListAnnouncements(c *gin.Context) {
	h.listAnnouncements(c, true)
}

// ListAllAnnouncements returns announcements including drafts
// @Summary      All announcements
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Announcement}
// @Router       /api/admin/announcements [get]
func (h *ContentHandler) ListAllAnnouncements(c *gin.Context) {
	h.listAnnouncements(c, false)
}

func (h *ContentHandler) listAnnouncements(c *gin.Context, publishedOnly bool) {
	p := pagination.Parse(c)
	items, total, err := h.announcements.ListAnnouncements(c.Request.Context(), publishedOnly, p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, items, p.Page, p.Limit, total))
}

// GetAnnouncement returns a published announcement
// @Summary      Get announcement
// @Tags         content
// @Produce      json
// @Param        id   path      string  true  "Announcement ID"
// @Success      200  {object}  response.Response{data=model.Announcement}
// @Failure      404  {object}  response.Response
// @Router       /api/announcements/{id} [get]
func (h *ContentHandler) GetAnnouncement(c *gin.Context) {
	a, err := h.announcements.GetAnnouncement(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, a))
}

// CreateAnnouncement adds an announcement
// @Summary      Create announcement
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AnnouncementRequest  true  "Announcement"
// @Success      201      {object}  response.Response{data=model.Announcement}
// @Router       /api/admin/announcements [post]
func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.announcements.CreateAnnouncement(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, a))
}

// UpdateAnnouncement replaces an announcement
// @Summary      Update announcement
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Announcement ID"
// @Param        payload  body      service.AnnouncementRequest  true  "Announcement"
// @Success      200      {object}  response.Response{data=model.Announcement}
// @Router       /api/admin/announcements/{id} [put]
func (h *ContentHandler) UpdateAnnouncement(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.announcements.UpdateAnnouncement(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, a))
}

// DeleteAnnouncement removes an announcement
// @Summary      Delete announcement
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Announcement ID"
// @Success      200  {object}  response.Response
// @Router       /api/admin/announcements/{id} [delete]
func (h *ContentHandler) DeleteAnnouncement(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.announcements.DeleteAnnouncement(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Announcement deleted successfully"))
}

// ListSlides returns the active hero slides in display order
// @Summary      Hero slides
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.HeroSlideResponse}
// @Router       /api/hero-slides [get]
func (h *ContentHandler) ListSlides(c *gin.Context) {
	h.listSlides(c, true)
}

// ListAllSlides returns every hero slide
// @Summary      All hero slides
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.HeroSlideResponse}
// @Router       /api/admin/hero-slides [get]
func (h *ContentHandler) ListAllSlides(c *gin.Context) {
	h.listSlides(c, false)
}

func (h *ContentHandler) listSlides(c *gin.Context, activeOnly bool) {
	slides, err := h.slides.ListSlides(c.Request.Context(), activeOnly)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, slides))
}

// GetSlideForm hydrates the edit form of a hero slide
// @Summary      Hero slide form
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Slide ID"
// @Success      200  {object}  response.Response{data=service.HeroSlideFormResponse}
// @Router       /api/admin/hero-slides/{id}/form [get]
func (h *ContentHandler) GetSlideForm(c *gin.Context) {
	form, err := h.slides.GetSlideForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, form))
}

// CreateSlide adds a hero slide
// @Summary      Create hero slide
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.HeroSlideRequest  true  "Slide"
// @Success      201      {object}  response.Response{data=service.HeroSlideResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/hero-slides [post]
func (h *ContentHandler) CreateSlide(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.HeroSlideRequest
	if !bindJSON(c, &req) {
		return
	}
	slide, err := h.slides.CreateSlide(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, slide))
}

// UpdateSlide edits a hero slide, switching layout if requested
// @Summary      Update hero slide
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Slide ID"
// @Param        payload  body      service.HeroSlideRequest  true  "Slide"
// @Success      200      {object}  response.Response{data=service.HeroSlideResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/hero-slides/{id} [put]
func (h *ContentHandler) UpdateSlide(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.HeroSlideRequest
	if !bindJSON(c, &req) {
		return
	}
	slide, err := h.slides.UpdateSlide(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, slide))
}

// DeleteSlide removes a hero slide
// @Summary      Delete hero slide
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Slide ID"
// @Success      200  {object}  response.Response
// @Router       /api/admin/hero-slides/{id} [delete]
func (h *ContentHandler) DeleteSlide(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.slides.DeleteSlide(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Hero slide deleted successfully"))
}

func contactQuery(c *gin.Context) service.ContactQuery {
	p := pagination.Parse(c)
	return service.ContactQuery{
		City:     c.Query("city"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     p.Page,
		Limit:    p.Limit,
	}
}

// ListContacts searches the public logistics directory
// @Summary      Directory
// @Tags         content
// @Produce      json
// @Param        city      query     string  false  "City"
// @Param        category  query     string  false  "Category"
// @Param        search    query     string  false  "Search name and address"
// @Success      200       {object}  response.Response{data=[]model.DirectoryContact}
// @Router       /api/directory [get]
func (h *ContentHandler) ListContacts(c *gin.Context) {
	h.listContacts(c, true)
}

// ListAllContacts returns every directory contact
// @Summary      All directory contacts
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.DirectoryContact}
// @Router       /api/admin/directory [get]
func (h *ContentHandler) ListAllContacts(c *gin.Context) {
	h.listContacts(c, false)
}

func (h *ContentHandler) listContacts(c *gin.Context, activeOnly bool) {
	q := contactQuery(c)
	contacts, total, err := h.contacts.ListContacts(c.Request.Context(), q, activeOnly)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, contacts, q.Page, q.Limit, total))
}

// CreateContact adds a directory contact
// @Summary      Create directory contact
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ContactRequest  true  "Contact"
// @Success      201      {object}  response.Response{data=model.DirectoryContact}
// @Router       /api/admin/directory [post]
func (h *ContentHandler) CreateContact(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := h.contacts.CreateContact(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, contact))
}

// UpdateContact replaces a directory contact
// @Summary      Update directory contact
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Contact ID"
// @Param        payload  body      service.ContactRequest  true  "Contact"
// @Success      200      {object}  response.Response{data=model.DirectoryContact}
// @Router       /api/admin/directory/{id} [put]
func (h *ContentHandler) UpdateContact(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := h.contacts.UpdateContact(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, contact))
}

// DeleteContact removes a directory contact
// @Summary      Delete directory contact
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  response.Response
// @Router       /api/admin/directory/{id} [delete]
func (h *ContentHandler) DeleteContact(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.contacts.DeleteContact(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Contact deleted successfully"))
}
