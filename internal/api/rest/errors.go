package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoshitoke/nft141d/internal/api/apierrors"
	"github.com/yoshitoke/nft141d/internal/domain"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondForbidden responds with a forbidden error
func respondForbidden(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusForbidden, apierrors.NewForbiddenError(message, details...))
}

// respondInternalError responds with an internal server error
func respondInternalError(c *gin.Context, err error, message string, details ...string) {
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message, details...))
}

// respondDomainError maps known domain errors to HTTP status codes and falls
// back to an internal error for everything else
func respondDomainError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrVaultNotFound):
		respondNotFound(c, message, err.Error())
	case errors.Is(err, domain.ErrOriginAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyInitialized),
		errors.Is(err, domain.ErrNotInitialized):
		c.JSON(http.StatusConflict, apierrors.NewConflictError(message, err.Error()))
	case errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrSupplyUnderflow):
		c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		respondForbidden(c, message, err.Error())
	case errors.Is(err, domain.ErrCallFailed):
		c.JSON(http.StatusBadGateway, apierrors.NewUpstreamFailedError(message, err.Error()))
	case errors.Is(err, domain.ErrCallPending):
		c.JSON(http.StatusGatewayTimeout, apierrors.NewUpstreamPendingError(message, err.Error()))
	default:
		respondInternalError(c, err, message)
	}
}
