package handlers

import (
	"net/http"
	"strconv"

	"campusvenue/utils"

	"github.com/gin-gonic/gin"
)

// SuggestionsHandler returns open windows at a venue. With ?date= it lists
// that day in full, otherwise the soonest open day within ?maxDays=.
func (h *BookingHandler) SuggestionsHandler(c *gin.Context) {
	maxDays := 0
	if raw := c.Query("maxDays"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid_max_days", "maxDays must be a positive integer", raw)
			return
		}
		maxDays = n
	}

	resp, err := h.Service.Suggest(c.Request.Context(), c.Param("location"), c.Query("date"), maxDays)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
