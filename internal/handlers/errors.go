package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondServiceError translates a service error into an HTTP response.
// Sentinels map to their canonical status codes; an AppError carries its own
// code; anything else is a 500 with the detail kept out of the body.
func respondServiceError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrInvalidCode):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid code"})
	case errors.Is(err, apperrors.ErrCodeAlreadyAccepted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Code already accepted"})
	case errors.Is(err, apperrors.ErrCodeRevoked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Code revoked"})
	case errors.Is(err, apperrors.ErrModeSwitchInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Mode switch already in progress"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Already exists"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
