package handlers

import (
	"errors"
	"net/http"

	"campusvenue/services/booking"
	"campusvenue/services/scheduling"
	"campusvenue/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var bookingErrorStatus = map[string]int{
	booking.ErrLocationRequired.Code: http.StatusBadRequest,
	booking.ErrInvalidStatus.Code:    http.StatusBadRequest,
	booking.ErrBookingNotFound.Code:  http.StatusNotFound,
	booking.ErrBlackoutNotFound.Code: http.StatusNotFound,
	booking.ErrLockNotAcquired.Code:  http.StatusLocked,
	booking.ErrBlackoutDate.Code:     http.StatusUnprocessableEntity,
	"status_locked":                  http.StatusConflict,
}

// respondError maps a service error onto the HTTP status and error body clients rely on.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		conflict *booking.ConflictError
		parseErr *scheduling.ParseError
		bookErr  *booking.BookingError
	)
	switch {
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "booking_conflict", err.Error(), conflict.Summaries())
	case errors.As(err, &parseErr):
		utils.JSONError(c, http.StatusBadRequest, "unreadable_"+string(parseErr.Field), err.Error(),
			gin.H{"field": parseErr.Field, "input": parseErr.Input})
	case errors.As(err, &bookErr):
		status, ok := bookingErrorStatus[bookErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, bookErr.Code, bookErr.Message, nil)
	default:
		if logger == nil {
			logger = utils.GetLogger()
		}
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Something went wrong, please try again", nil)
	}
}

func invalidPayload(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid_payload", "Invalid request payload", err.Error())
}
