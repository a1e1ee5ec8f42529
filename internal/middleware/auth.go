package middleware

import (
	"net/http"
	"strings"
	"time"

	"nakliye/internal/token"
	"nakliye/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	claimsKey = "claims"
)

// Auth verifies access tokens and manages the session cookies.
type Auth struct {
	tokens     *token.Manager
	refreshTTL time.Duration
	// cross-origin deployments need SameSite=None and Secure cookies
	crossSite bool
}

func NewAuth(tokens *token.Manager, refreshTTL time.Duration, crossSite bool) *Auth {
	return &Auth{tokens: tokens, refreshTTL: refreshTTL, crossSite: crossSite}
}

func (a *Auth) cookieMode() (http.SameSite, bool) {
	if a.crossSite {
		return http.SameSiteNoneMode, true
	}
	return http.SameSiteLaxMode, false
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func (a *Auth) SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	sameSite, secure := a.cookieMode()
	c.SetSameSite(sameSite)
	c.SetCookie(AccessCookie, accessToken, int(a.tokens.TTL().Seconds()), "/", "", secure, true)
	c.SetCookie(RefreshCookie, refreshToken, int(a.refreshTTL.Seconds()), "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func (a *Auth) ClearTokenCookies(c *gin.Context) {
	sameSite, secure := a.cookieMode()
	c.SetSameSite(sameSite)
	c.SetCookie(AccessCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", secure, true)
}

// RequireRole validates the access token and checks that its role is one of allowedRoles
func (a *Auth) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try cookie first, fallback to Authorization header
		raw, err := c.Cookie(AccessCookie)
		if err != nil || raw == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			raw = parts[1]
		}

		claims, err := a.tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		allowed := false
		for _, role := range allowedRoles {
			if claims.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireRole.
func ClaimsFrom(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}
