package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/dto"
	"github.com/SscSPs/fee_ledger/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/financial", h.getFinancialReport)
	}
}

// getFinancialReport godoc
// @Summary Generate financial report
// @Description Summarises invoices issued and payments recorded in a date window, read from one consistent snapshot.
// @Description Invoice statuses are derived as of the snapshot instant returned in asOf.
// @Tags reports
// @Produce json
// @Param fromDate query string true "Start date (YYYY-MM-DD), inclusive"
// @Param toDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/financial [get]
func (h *reportingHandler) getFinancialReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parseDateWindow(c, logger)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("fromDate", c.Query("fromDate")),
		slog.String("toDate", c.Query("toDate")),
	)
	logger.Info("Received request to generate financial report")

	report, err := h.reportingService.FinancialReport(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "generate financial report")
		return
	}

	logger.Info("Financial report generated successfully",
		slog.Int("invoice_count", report.InvoiceCount),
		slog.Int("payment_count", report.PaymentCount))
	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(report))
}
