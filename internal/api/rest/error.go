package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/wishbox/wishbox/internal/api/shared/errors"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// respondWithAPIError sends a standardized error response
func respondWithAPIError(c *gin.Context, statusCode int, apiErr *apierrors.APIError) {
	c.JSON(statusCode, errorResponse{Error: apiErr})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithAPIError(c, http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithAPIError(c, http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithAPIError(c, http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithAPIError(c, http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondDomainError maps a ledger failure onto its HTTP shape. Each distinct
// precondition failure keeps its own code so clients can branch on it; the
// numeric boundaries ride in the fields map.
func respondDomainError(c *gin.Context, err error) {
	var goalErr *domain.GoalReachedError
	var exceedsErr *domain.ExceedsRemainingError
	var balanceErr *domain.InsufficientBalanceError

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		respondWithAPIError(c, http.StatusUnprocessableEntity, &apierrors.APIError{
			Code:    apierrors.ErrCodeInvalidAmount,
			Message: "Contribution amount is below the minimum",
			Fields:  map[string]interface{}{"min_amount_cents": domain.MinContributionCents},
		})
	case errors.Is(err, domain.ErrNotAllowed):
		respondWithAPIError(c, http.StatusUnprocessableEntity, &apierrors.APIError{
			Code:    apierrors.ErrCodeNotAllowed,
			Message: "Item does not accept contributions",
		})
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(c, "Not found")
	case errors.Is(err, domain.ErrConflict):
		respondWithAPIError(c, http.StatusConflict, apierrors.NewConflictError("Already reserved"))
	case errors.Is(err, domain.ErrForbidden):
		respondWithAPIError(c, http.StatusForbidden, apierrors.NewForbiddenError("Reservation held by another viewer"))
	case errors.As(err, &goalErr):
		respondWithAPIError(c, http.StatusConflict, &apierrors.APIError{
			Code:    apierrors.ErrCodeGoalReached,
			Message: "Funding goal already reached",
			Fields: map[string]interface{}{
				"price_cents":     goalErr.PriceCents,
				"collected_cents": goalErr.CollectedCents,
			},
		})
	case errors.As(err, &exceedsErr):
		respondWithAPIError(c, http.StatusConflict, &apierrors.APIError{
			Code:    apierrors.ErrCodeExceedsRemaining,
			Message: "Contribution exceeds the remaining amount",
			Fields:  map[string]interface{}{"remaining_cents": exceedsErr.RemainingCents},
		})
	case errors.As(err, &balanceErr):
		respondWithAPIError(c, http.StatusUnprocessableEntity, &apierrors.APIError{
			Code:    apierrors.ErrCodeInsufficientBalance,
			Message: "Balance is too low for this contribution",
			Fields: map[string]interface{}{
				"balance_cents": balanceErr.BalanceCents,
				"charged_cents": balanceErr.ChargedCents,
			},
		})
	case errors.Is(err, domain.ErrConversionFailed):
		respondWithAPIError(c, http.StatusBadGateway, &apierrors.APIError{
			Code:    apierrors.ErrCodeConversionFailed,
			Message: "Currency conversion is temporarily unavailable",
		})
	default:
		respondInternalError(c, err, "Internal server error")
	}
}
