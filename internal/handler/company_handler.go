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

type CompanyHandler struct {
	companyService service.CompanyService
	noteService    service.NoteService
	auth           *middleware.Auth
}

func NewCompanyHandler(companyService service.CompanyService, noteService service.NoteService, auth *middleware.Auth) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, noteService: noteService, auth: auth}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/companies")
	{
		public.GET("", h.ListPublic)
		public.GET("/:id", h.GetPublic)
	}

	own := router.Group("/my/company")
	own.Use(h.auth.RequireRole(token.RoleCompany))
	{
		own.GET("", h.GetOwn)
		own.PUT("", h.UpdateOwn)
	}

	admin := router.Group("/admin")
	admin.Use(h.auth.RequireRole(token.RoleAdmin))
	{
		admin.GET("/companies", h.ListCompanies)
		admin.GET("/companies/:id", h.GetCompany)
		admin.PUT("/companies/:id", h.UpdateCompany)
		admin.PATCH("/companies/:id/status", h.SetStatus)
		admin.PATCH("/companies/:id/membership", h.AssignMembership)
		admin.GET("/companies/:id/notes", h.ListNotes)
		admin.POST("/companies/:id/notes", h.CreateNote)
		admin.PUT("/notes/:id", h.UpdateNote)
		admin.DELETE("/notes/:id", h.DeleteNote)
	}
}

func companyQuery(c *gin.Context) service.CompanyQuery {
	p := pagination.Parse(c)
	return service.CompanyQuery{
		Status: c.Query("status"),
		City:   c.Query("city"),
		Search: c.Query("search"),
		Page:   p.Page,
		Limit:  p.Limit,
	}
}

// ListPublic returns approved companies
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        city    query     string  false  "City"
// @Param        search  query     string  false  "Search name and city"
// @Success      200     {object}  response.Response{data=[]service.CompanyResponse}
// @Router       /api/companies [get]
func (h *CompanyHandler) ListPublic(c *gin.Context) {
	q := companyQuery(c)
	companies, total, err := h.companyService.ListPublic(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, companies, q.Page, q.Limit, total))
}

// GetPublic returns an approved company
// @Summary      Get company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response{data=service.CompanyResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetPublic(c *gin.Context) {
	company, err := h.companyService.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// GetOwn returns the caller's company profile
// @Summary      My company
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.CompanyResponse}
// @Router       /api/my/company [get]
func (h *CompanyHandler) GetOwn(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	company, err := h.companyService.GetOwn(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// UpdateOwn patches the caller's company profile
// @Summary      Update my company
// @Tags         companies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpdateCompanyRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.CompanyResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/my/company [put]
func (h *CompanyHandler) UpdateOwn(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.UpdateOwn(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// ListCompanies returns every company for moderation
// @Summary      All companies
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "pending, approved or suspended"
// @Success      200     {object}  response.Response{data=[]service.CompanyResponse}
// @Router       /api/admin/companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	q := companyQuery(c)
	companies, total, err := h.companyService.ListCompanies(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, companies, q.Page, q.Limit, total))
}

// GetCompany returns any company
// @Summary      Get company (admin)
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response{data=service.CompanyResponse}
// @Router       /api/admin/companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// UpdateCompany patches any company
// @Summary      Update company (admin)
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Company ID"
// @Param        payload  body      service.UpdateCompanyRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.CompanyResponse}
// @Router       /api/admin/companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.UpdateCompany(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// SetStatus moderates a company
// @Summary      Set company status
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Company ID"
// @Param        payload  body      service.SetCompanyStatusRequest  true  "New status"
// @Success      200      {object}  response.Response{data=service.CompanyResponse}
// @Router       /api/admin/companies/{id}/status [patch]
func (h *CompanyHandler) SetStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.SetCompanyStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.SetStatus(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// AssignMembership puts a company on a membership plan
// @Summary      Assign membership
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Company ID"
// @Param        payload  body      service.AssignMembershipRequest  true  "Plan, empty to remove"
// @Success      200      {object}  response.Response{data=service.CompanyResponse}
// @Router       /api/admin/companies/{id}/membership [patch]
func (h *CompanyHandler) AssignMembership(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.AssignMembershipRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.AssignMembership(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// ListNotes returns the admin notes of a company
// @Summary      Company notes
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response{data=[]service.NoteResponse}
// @Router       /api/admin/companies/{id}/notes [get]
func (h *CompanyHandler) ListNotes(c *gin.Context) {
	notes, err := h.noteService.ListNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, notes))
}

// CreateNote adds an admin note to a company
// @Summary      Add company note
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Company ID"
// @Param        payload  body      service.NoteRequest  true  "Note"
// @Success      201      {object}  response.Response{data=service.NoteResponse}
// @Router       /api/admin/companies/{id}/notes [post]
func (h *CompanyHandler) CreateNote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.NoteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.noteService.CreateNote(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, note))
}

// UpdateNote edits an admin note
// @Summary      Update company note
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Note ID"
// @Param        payload  body      service.NoteRequest  true  "Note"
// @Success      200      {object}  response.Response{data=service.NoteResponse}
// @Router       /api/admin/notes/{id} [put]
func (h *CompanyHandler) UpdateNote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req service.NoteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.noteService.UpdateNote(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, note))
}

// DeleteNote removes an admin note
// @Summary      Delete company note
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  response.Response
// @Router       /api/admin/notes/{id} [delete]
func (h *CompanyHandler) DeleteNote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.noteService.DeleteNote(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Note deleted successfully"))
}
