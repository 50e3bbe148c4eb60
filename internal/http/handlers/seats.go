package handlers

import (
	"net/http"

	"smartparking/internal/services"

	"github.com/gin-gonic/gin"
)

// GetSeats answers GET /api/seats?location=&zone=&time_slot=&vehicle_type=&date=
func (h *Handlers) GetSeats(c *gin.Context) {
	q := services.SeatQuery{
		LocationID:  c.Query("location"),
		ZoneID:      c.Query("zone"),
		TimeWindow:  c.Query("time_slot"),
		VehicleType: c.Query("vehicle_type"),
		Date:        c.Query("date"),
	}
	seats, err := h.Availability.Seats(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seats": seats})
}

// GetAvailability summarises free seat-windows per location for ?date=,
// defaulting to today.
func (h *Handlers) GetAvailability(c *gin.Context) {
	summary, err := h.Availability.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
