package handlers

import (
	"smartparking/internal/catalog"
	"smartparking/internal/realtime"
	"smartparking/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers carries the services behind the HTTP routes. Services are values;
// each request gets its own copy tagged with the request id.
type Handlers struct {
	Catalog      *catalog.Catalog
	Bookings     services.BookingService
	Availability services.AvailabilityService
	Receipts     services.ReceiptService
	Hub          *realtime.Hub
}

func (h *Handlers) bookings(c *gin.Context) services.BookingService {
	svc := h.Bookings
	svc.RequestID = requestID(c)
	return svc
}
