package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openretailbank/corebank/internal/apperrors"
)

// errorMapping pairs a domain sentinel with its HTTP status and stable
// machine-readable code. Order matters only for readability; sentinels are
// disjoint.
var errorMappings = []struct {
	sentinel error
	status   int
	code     string
}{
	{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
	{apperrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{apperrors.ErrInvalidTransfer, http.StatusBadRequest, "INVALID_TRANSFER"},
	{apperrors.ErrDestinationInvalid, http.StatusBadRequest, "DESTINATION_INVALID"},
	{apperrors.ErrDuplicate, http.StatusConflict, "DUPLICATE_REFERENCE"},
	{apperrors.ErrConflict, http.StatusConflict, "STATE_CONFLICT"},
	{apperrors.ErrAlreadyFinalized, http.StatusConflict, "ALREADY_FINALIZED"},
	{apperrors.ErrAccountInactive, http.StatusUnprocessableEntity, "ACCOUNT_INACTIVE"},
	{apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
	{apperrors.ErrLimitExceeded, http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"},
	{apperrors.ErrVelocityExceeded, http.StatusUnprocessableEntity, "VELOCITY_EXCEEDED"},
	{apperrors.ErrUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
}

// respondWithError maps a service error to its HTTP status and stable code.
// Domain sentinels pass their message through; anything unrecognized becomes
// an opaque 500.
func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			c.JSON(m.status, gin.H{"code": m.code, "error": err.Error()})
			return
		}
	}

	logger.Error("Unhandled service error", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "error": "Internal server error"})
}
