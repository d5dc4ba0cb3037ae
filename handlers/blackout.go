package handlers

import (
	"net/http"

	"campusvenue/models"

	"github.com/gin-gonic/gin"
)

func (h *BookingHandler) ListBlackoutsHandler(c *gin.Context) {
	blackouts, err := h.Service.ListBlackouts(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blackouts": blackouts})
}

func (h *BookingHandler) AddBlackoutHandler(c *gin.Context) {
	var req models.BlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	blackout, err := h.Service.AddBlackout(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, blackout)
}

func (h *BookingHandler) RemoveBlackoutHandler(c *gin.Context) {
	if err := h.Service.RemoveBlackout(c.Request.Context(), c.Param("date")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
