package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetReceiptPDF streams the booking receipt as a download.
func (h *Handlers) GetReceiptPDF(c *gin.Context) {
	pdf, filename, err := h.Receipts.Generate(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
