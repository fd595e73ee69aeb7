package handlers

import (
	"net/http"

	"transitlog/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Reports services.ReportService
}

// GET /api/reports/summary.pdf
func (h ReportHandler) Summary(c *gin.Context) {
	pdfBytes, filename, err := h.Reports.GenerateSummary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
