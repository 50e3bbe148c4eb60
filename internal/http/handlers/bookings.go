package handlers

import (
	"net/http"
	"strings"

	"smartparking/internal/domain/models"
	"smartparking/internal/services"

	"github.com/gin-gonic/gin"
)

type cancelRequest struct {
	CustomerID    string `json:"customer_id"`
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicle_number"`
}

type cancelResponse struct {
	Message       string `json:"message"`
	CustomerID    string `json:"customer_id"`
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicle_number"`
	Status        string `json:"status"`
}

func (h *Handlers) CreateBooking(c *gin.Context) {
	var req services.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.bookings(c).Book(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":         "Booking confirmed",
		"customer_id":     b.CustomerID,
		"booking_details": b,
	})
}

// CancelBooking cancels by customer id. Supplying name or vehicle_number
// switches to the older matching contract.
func (h *Handlers) CancelBooking(c *gin.Context) {
	var req cancelRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.bookings(c)
	var (
		b   models.Booking
		err error
	)
	if strings.TrimSpace(req.Name) != "" || strings.TrimSpace(req.VehicleNumber) != "" {
		b, err = svc.CancelMatching(c.Request.Context(), req.CustomerID, req.Name, req.VehicleNumber)
	} else {
		b, err = svc.Cancel(c.Request.Context(), req.CustomerID)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelResponse{
		Message:       "Booking cancelled",
		CustomerID:    b.CustomerID,
		Name:          b.Name,
		VehicleNumber: b.VehicleNumber,
		Status:        string(b.Status),
	})
}

func (h *Handlers) GetBooking(c *gin.Context) {
	b, err := h.bookings(c).Lookup(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
