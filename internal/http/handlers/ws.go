package handlers

import (
	"net/http"

	"smartparking/internal/realtime"
	"smartparking/internal/utils"

	"github.com/gin-gonic/gin"
)

// SeatEvents upgrades to a websocket that streams booking events, optionally
// narrowed by ?location=&zone=&date=.
func (h *Handlers) SeatEvents(c *gin.Context) {
	if h.Hub == nil {
		respondError(c, http.StatusServiceUnavailable, "unavailable", "live updates are disabled", nil)
		return
	}
	f := realtime.Filter{
		LocationID:  c.Query("location"),
		ZoneID:      c.Query("zone"),
		BookingDate: c.Query("date"),
	}
	if err := h.Hub.ServeWS(c.Writer, c.Request, f); err != nil {
		// the upgrader has already written the error response
		utils.LogError(requestID(c), "realtime", "upgrade", err)
	}
}
