package handler

import (
	"net/http"

	"nakliye/internal/middleware"
	"nakliye/internal/service"
	"nakliye/internal/token"
	"nakliye/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	auth        *middleware.Auth
}

func NewAuthHandler(authService service.AuthService, auth *middleware.Auth) *AuthHandler {
	return &AuthHandler{authService: authService, auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.POST("/refresh", h.Refresh)
		group.POST("/logout", h.Logout)
		group.GET("/me", h.auth.RequireRole(token.RoleAdmin, token.RoleCompany), h.Me)
	}
}

// Register signs up a company and its first user
// @Summary      Register company
// @Description  Creates a pending company with its first user and signs the user in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration payload"
// @Success      201      {object}  response.Response{data=service.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.auth.SetTokenCookies(c, res.AccessToken, res.RefreshToken)
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// Login authenticates a user
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.AuthResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.auth.SetTokenCookies(c, res.AccessToken, res.RefreshToken)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Refresh rotates the refresh token
// @Summary      Refresh token
// @Description  Reads the refresh token from the cookie, falling back to the body
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RefreshRequest  false  "Refresh token"
// @Success      200      {object}  response.Response{data=service.AuthResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw := refreshTokenFrom(c)
	res, err := h.authService.Refresh(c.Request.Context(), raw)
	if err != nil {
		h.auth.ClearTokenCookies(c)
		writeServiceError(c, err)
		return
	}
	h.auth.SetTokenCookies(c, res.AccessToken, res.RefreshToken)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Logout revokes the refresh token and clears auth cookies
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), refreshTokenFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	h.auth.ClearTokenCookies(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Logged out successfully"))
}

// Me returns the signed-in user
// @Summary      Current user
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

func refreshTokenFrom(c *gin.Context) string {
	if raw, err := c.Cookie(middleware.RefreshCookie); err == nil && raw != "" {
		return raw
	}
	var req service.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}
