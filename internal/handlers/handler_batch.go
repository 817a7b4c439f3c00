package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/dto"
	"github.com/SscSPs/fee_ledger/internal/middleware"
)

// batchHandler exposes the billing cycle and overdue sweep jobs.
type batchHandler struct {
	cycleService portssvc.BillingCycleSvc
	sweepService portssvc.OverdueSweepSvc
}

func registerBatchRoutes(rg *gin.RouterGroup, cycleService portssvc.BillingCycleSvc, sweepService portssvc.OverdueSweepSvc) {
	h := &batchHandler{
		cycleService: cycleService,
		sweepService: sweepService,
	}

	rg.POST("/billing-cycles", h.generateCycle)
	rg.POST("/overdue-sweeps", h.sweepOverdue)
}

// generateCycle godoc
// @Summary Generate a billing cycle
// @Description Bills every active student once for the period. Students already billed are skipped,
// @Description so the call can be repeated. A cancelled run answers 503 with the partial result.
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   cycle body dto.GenerateCycleRequest true "Cycle details"
// @Success 200 {object} dto.CycleResultResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} dto.CycleResultResponse "Cancelled; partial result"
// @Failure 500 {object} map[string]string "Failed to generate billing cycle"
// @Security BearerAuth
// @Router /billing-cycles [post]
func (h *batchHandler) generateCycle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateCycle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period := req.Period()
	logger = logger.With(slog.String("period", period.String()))
	logger.Info("Received request to generate billing cycle", slog.String("amount", req.Amount.String()))

	result, err := h.cycleService.GenerateCycle(c.Request.Context(), period, req.Amount, req.Description, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCancelled) && result != nil {
			logger.Warn("Billing cycle cancelled", slog.Int("created", len(result.Created)), slog.Int("not_attempted", result.NotAttempted))
			c.JSON(http.StatusServiceUnavailable, dto.ToCycleResultResponse(result))
			return
		}
		respondServiceError(c, logger, err, "generate billing cycle")
		return
	}

	logger.Info("Billing cycle generated",
		slog.Int("eligible", result.Eligible),
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, dto.ToCycleResultResponse(result))
}

// sweepOverdue godoc
// @Summary Run the overdue sweep
// @Description Moves unpaid invoices past their due date to overdue and sends one reminder per transition.
// @Description Safe to run concurrently with the scheduled sweep. A cancelled run answers 503 with the partial result.
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   sweep body dto.SweepRequest false "Optional evaluation instant"
// @Success 200 {object} dto.SweepResultResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} dto.SweepResultResponse "Cancelled; partial result"
// @Failure 500 {object} map[string]string "Failed to sweep overdue invoices"
// @Security BearerAuth
// @Router /overdue-sweeps [post]
func (h *batchHandler) sweepOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SweepRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for SweepOverdue", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	var now time.Time
	if req.Now != nil {
		now = req.Now.UTC()
	}

	result, err := h.sweepService.SweepOverdue(c.Request.Context(), now)
	if err != nil {
		if errors.Is(err, apperrors.ErrCancelled) && result != nil {
			logger.Warn("Overdue sweep cancelled", slog.Int("transitioned", len(result.Transitioned)))
			c.JSON(http.StatusServiceUnavailable, dto.ToSweepResultResponse(result))
			return
		}
		respondServiceError(c, logger, err, "sweep overdue invoices")
		return
	}

	logger.Info("Overdue sweep finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("transitioned", len(result.Transitioned)),
		slog.Int("reminders_sent", result.RemindersSent))
	c.JSON(http.StatusOK, dto.ToSweepResultResponse(result))
}
