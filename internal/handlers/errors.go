package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps an application error onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrLinkage):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInsufficientStock), errors.Is(err, apperrors.ErrBudgetExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrConcurrencyTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorDetails exposes the numeric context of ledger rejections.
func errorDetails(err error) gin.H {
	var stockErr *apperrors.InsufficientStockError
	if errors.As(err, &stockErr) {
		return gin.H{
			"materialID": stockErr.MaterialID,
			"unit":       stockErr.Unit,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		}
	}
	var budgetErr *apperrors.BudgetExceededError
	if errors.As(err, &budgetErr) {
		return gin.H{
			"projectID": budgetErr.ProjectID,
			"amount":    budgetErr.Amount,
			"remaining": budgetErr.Remaining,
		}
	}
	return nil
}

// respondError writes err as {"error": kind, "message": ..., "details": ...}.
// Internal errors are logged and replaced by fallback so nothing leaks to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	body := gin.H{"error": apperrors.Kind(err)}

	switch {
	case status == http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()))
		body["message"] = fallback
	case status == http.StatusServiceUnavailable:
		logger.Warn("Balance lock not acquired", slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
		body["message"] = err.Error()
	default:
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
		body["message"] = err.Error()
	}

	if details := errorDetails(err); details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "Invalid request format: " + err.Error()})
}
