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

// AdminHandler serves the read-only admin views: the dashboard and the audit trail.
type AdminHandler struct {
	auditService     service.AuditService
	dashboardService service.DashboardService
	auth             *middleware.Auth
}

const auditPageSize = 50

func NewAdminHandler(auditService service.AuditService, dashboardService service.DashboardService, auth *middleware.Auth) *AdminHandler {
	return &AdminHandler{auditService: auditService, dashboardService: dashboardService, auth: auth}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/admin")
	group.Use(h.auth.RequireRole(token.RoleAdmin))
	{
		group.GET("/audit-logs", h.GetAuditLogs)
		group.GET("/dashboard", h.GetDashboard)
	}
}

// GetAuditLogs returns the audit trail, newest first
// @Summary      Get audit logs
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 50)"
// @Param        action     query     string  false  "Action filter"
// @Param        entity_id  query     string  false  "Entity filter"
// @Success      200        {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/admin/audit-logs [get]
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.ParseWithDefault(c, auditPageSize)
	q := service.AuditQuery{
		Action:   c.Query("action"),
		EntityID: c.Query("entity_id"),
		Page:     p.Page,
		Limit:    p.Limit,
	}

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, q.Page, q.Limit, total))
}

// GetDashboard returns headline counts for the admin panel
// @Summary      Admin dashboard
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.DashboardStats}
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
