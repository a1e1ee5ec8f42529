package handler

import (
	"errors"
	"log"
	"net/http"

	"nakliye/internal/formshape"
	"nakliye/internal/middleware"
	"nakliye/internal/service"
	"nakliye/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var missing *formshape.MissingFieldError
	var invalidField *formshape.InvalidFieldError
	var validation *service.ValidationError

	switch {
	case errors.As(err, &missing), errors.As(err, &invalidField), errors.As(err, &validation),
		errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrUnknownKind), errors.Is(err, service.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrCompanyNotApproved):
		return http.StatusForbidden
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrListingQuotaExceeded), errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func writeServiceError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "Internal server error"
	}
	c.JSON(status, response.Error(status, msg))
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return false
	}
	return true
}

// currentActor resolves the caller from the claims set by the auth middleware.
func currentActor(c *gin.Context) (service.Actor, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
		return service.Actor{}, false
	}
	actor, err := service.ActorFromClaims(claims)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return service.Actor{}, false
	}
	return actor, true
}
