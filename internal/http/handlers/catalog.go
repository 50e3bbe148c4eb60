package handlers

import (
	"net/http"

	"smartparking/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.ListLocations())
}

func (h *Handlers) ListZones(c *gin.Context) {
	zones, err := h.Catalog.ListZones(c.Param("location"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// ListTimings returns the window labels of a zone in day order.
func (h *Handlers) ListTimings(c *gin.Context) {
	windows, err := h.Catalog.WindowsFor(c.Param("location"), c.Param("zone"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog.Labels(windows))
}
