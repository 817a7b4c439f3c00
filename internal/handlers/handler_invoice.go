package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/dto"
	"github.com/SscSPs/fee_ledger/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	clock          func() time.Time
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade, clock func() time.Time) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
		clock:          clock,
	}
}

// registerInvoiceRoutes registers routes related to invoices and student balances.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, clock func() time.Time) {
	h := newInvoiceHandler(invoiceService, clock)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
	}

	students := rg.Group("/students/:studentRef")
	{
		students.GET("/invoices", h.listStudentInvoices)
		students.GET("/balance", h.getStudentBalance)
	}
}

// createInvoice godoc
// @Summary Create an ad-hoc invoice
// @Description Issues an invoice for a student, numbered in its issue month
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 409 {object} map[string]string "Invoice number contention"
// @Failure 503 {object} map[string]string "Invoice number allocator unavailable"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("student_ref", req.StudentRef))
	logger.Info("Received request to create invoice", slog.String("amount", req.Amount.String()), slog.String("due_date", req.DueDate))

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, h.clock()))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Description Retrieves an invoice with its paid amount, balance due and credit
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.clock()))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoices by stored status (token paginated), by billing period (year and month),
// @Description or by issue date window (fromDate and toDate). Exactly one filter family is used.
// @Tags invoices
// @Produce  json
// @Param   status query string false "Stored status" Enums(unpaid, paid, overdue)
// @Param   limit query int false "Page size for status listing" default(20)
// @Param   nextToken query string false "Continuation token from a previous page"
// @Param   year query int false "Billing period year"
// @Param   month query int false "Billing period month"
// @Param   fromDate query string false "Issued on or after (YYYY-MM-DD)"
// @Param   toDate query string false "Issued on or before (YYYY-MM-DD)"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case c.Query("year") != "" || c.Query("month") != "":
		h.listInvoicesByPeriod(c, logger)
	case c.Query("fromDate") != "" || c.Query("toDate") != "":
		h.listInvoicesIssuedBetween(c, logger)
	default:
		h.listInvoicesByStatus(c, logger)
	}
}

func (h *invoiceHandler) listInvoicesByStatus(c *gin.Context, logger *slog.Logger) {
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("status", string(params.Status)))
	resp, err := h.invoiceService.ListInvoicesByStatus(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list invoices")
		return
	}
	logger.Info("Invoices listed successfully", slog.Int("count", len(resp.Invoices)))
	c.JSON(http.StatusOK, resp)
}

func (h *invoiceHandler) listInvoicesByPeriod(c *gin.Context, logger *slog.Logger) {
	year, yerr := strconv.Atoi(c.Query("year"))
	month, merr := strconv.Atoi(c.Query("month"))
	if yerr != nil || merr != nil {
		logger.Warn("Invalid billing period in query", slog.String("year", c.Query("year")), slog.String("month", c.Query("month")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must both be integers"})
		return
	}
	period := domain.BillingPeriod{Year: year, Month: time.Month(month)}

	logger = logger.With(slog.String("period", period.String()))
	invoices, err := h.invoiceService.ListInvoicesByPeriod(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, logger, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceResponses(invoices, h.clock())})
}

func (h *invoiceHandler) listInvoicesIssuedBetween(c *gin.Context, logger *slog.Logger) {
	from, to, ok := parseDateWindow(c, logger)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListInvoicesIssuedBetween(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceResponses(invoices, h.clock())})
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Removes an invoice that has no payments
// @Tags invoices
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice has payments"
// @Failure 500 {object} map[string]string "Failed to delete invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID, userID); err != nil {
		respondServiceError(c, logger, err, "delete invoice")
		return
	}
	logger.Info("Invoice deleted successfully")
	c.Status(http.StatusNoContent)
}

// listStudentInvoices godoc
// @Summary List a student's invoices
// @Description Retrieves every invoice billed to a student, newest first
// @Tags students
// @Produce  json
// @Param   studentRef path string true "Student reference"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /students/{studentRef}/invoices [get]
func (h *invoiceHandler) listStudentInvoices(c *gin.Context) {
	studentRef := c.Param("studentRef")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("student_ref", studentRef))

	invoices, err := h.invoiceService.ListInvoicesByStudent(c.Request.Context(), studentRef)
	if err != nil {
		respondServiceError(c, logger, err, "list student invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceResponses(invoices, h.clock())})
}

// getStudentBalance godoc
// @Summary Get a student's balance
// @Description Sums the outstanding amount and the overpayment credit over a student's invoices
// @Tags students
// @Produce  json
// @Param   studentRef path string true "Student reference"
// @Success 200 {object} dto.StudentBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /students/{studentRef}/balance [get]
func (h *invoiceHandler) getStudentBalance(c *gin.Context) {
	studentRef := c.Param("studentRef")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("student_ref", studentRef))

	balance, err := h.invoiceService.GetStudentBalance(c.Request.Context(), studentRef)
	if err != nil {
		respondServiceError(c, logger, err, "compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentBalanceResponse(balance))
}

// parseDateWindow reads fromDate and toDate (YYYY-MM-DD, both required) as an inclusive window:
// to is extended to the last instant of its day. It writes the 400 response itself.
func parseDateWindow(c *gin.Context, logger *slog.Logger) (time.Time, time.Time, bool) {
	fromStr, toStr := c.Query("fromDate"), c.Query("toDate")
	from, err := time.Parse(dto.DateLayout, fromStr)
	if err != nil {
		logger.Warn("Invalid from date format", slog.String("fromDate", fromStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dto.DateLayout, toStr)
	if err != nil {
		logger.Warn("Invalid to date format", slog.String("toDate", toStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if from.After(to) {
		logger.Warn("Invalid date range", slog.String("fromDate", fromStr), slog.String("toDate", toStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate must be before or equal to toDate"})
		return time.Time{}, time.Time{}, false
	}
	return from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), true
}
