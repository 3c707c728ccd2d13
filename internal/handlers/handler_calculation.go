package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	portssvc "github.com/xbordertools/profit_calc_app/internal/core/ports/services"
	"github.com/xbordertools/profit_calc_app/internal/dto"
	"github.com/xbordertools/profit_calc_app/internal/middleware"
)

// calculationHandler handles HTTP requests for profit calculations and their
// stored history.
type calculationHandler struct {
	calculator    portssvc.CalculatorSvc
	history       portssvc.CalculationHistorySvcFacade
	defaultTarget decimal.Decimal
}

// newCalculationHandler creates a new calculationHandler.
func newCalculationHandler(calc portssvc.CalculatorSvc, history portssvc.CalculationHistorySvcFacade, defaultTarget decimal.Decimal) *calculationHandler {
	return &calculationHandler{
		calculator:    calc,
		history:       history,
		defaultTarget: defaultTarget,
	}
}

// registerCalculationRoutes registers routes related to profit calculations.
func registerCalculationRoutes(rg *gin.RouterGroup, calc portssvc.CalculatorSvc, history portssvc.CalculationHistorySvcFacade, defaultTarget decimal.Decimal) {
	h := newCalculationHandler(calc, history, defaultTarget)

	calculations := rg.Group("/calculations")
	{
		calculations.POST("", h.calculateProfit)
		calculations.POST("/batch", h.batchCalculateProfit)
		calculations.GET("", h.listCalculations)
		calculations.GET("/:id", h.getCalculation)
		calculations.POST("/:id/save", h.markSaved)
		calculations.DELETE("/:id", h.deleteCalculation)
	}
}

// calculateProfit godoc
// @Summary Calculate profit for a cross-border sale
// @Description Runs the full calculation pipeline and persists the snapshot; unsaved snapshots are purged after the retention window
// @Tags calculations
// @Accept  json
// @Produce  json
// @Param   calculation body dto.CalculateProfitRequest true "Purchase and selling data"
// @Success 201 {object} dto.CalculationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to calculate"
// @Router /calculations [post]
func (h *calculationHandler) calculateProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CalculateProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CalculateProfit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	target := h.defaultTarget
	if req.TargetProfitRate != nil {
		target = *req.TargetProfitRate
	}

	result, err := h.calculator.CalculateProfit(c.Request.Context(), req.PurchaseData.ToDomainPurchaseData(), req.SellingData.ToDomainSellingData(), target)
	if err != nil {
		h.respondCalculationError(c, logger, err, "Failed to calculate profit")
		return
	}

	saved, err := h.history.SaveCalculation(c.Request.Context(), req.Name, *result, req.Save)
	if err != nil {
		logger.Error("Failed to persist calculation snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist calculation"})
		return
	}

	logger.Info("Calculation completed", slog.String("calculation_id", saved.CalculationID), slog.Bool("saved", saved.IsSaved))
	c.JSON(http.StatusCreated, dto.ToCalculationResponse(saved))
}

// batchCalculateProfit godoc
// @Summary Calculate profit for multiple scenarios
// @Description Runs each item independently; per-item failures do not abort the batch
// @Tags calculations
// @Accept  json
// @Produce  json
// @Param   batch body dto.BatchCalculateProfitRequest true "Calculation items"
// @Success 200 {array} dto.BatchCalculationItemResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /calculations/batch [post]
func (h *calculationHandler) batchCalculateProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchCalculateProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BatchCalculateProfit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	results := h.calculator.BatchCalculateProfit(c.Request.Context(), req.Items)
	logger.Info("Batch calculation completed", slog.Int("items", len(results)))
	c.JSON(http.StatusOK, results)
}

// listCalculations godoc
// @Summary List stored calculations
// @Description Retrieves stored calculation snapshots, newest first
// @Tags calculations
// @Produce  json
// @Param   limit query int false "Maximum results" default(50)
// @Param   offset query int false "Results to skip" default(0)
// @Success 200 {array} dto.CalculationResponse
// @Failure 500 {object} map[string]string "Failed to list calculations"
// @Router /calculations [get]
func (h *calculationHandler) listCalculations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	calcs, err := h.history.ListCalculations(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list calculations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list calculations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCalculationResponse(calcs))
}

// getCalculation godoc
// @Summary Get a stored calculation
// @Description Retrieves a single calculation snapshot by its ID
// @Tags calculations
// @Produce  json
// @Param   id path string true "Calculation ID"
// @Success 200 {object} dto.CalculationResponse
// @Failure 404 {object} map[string]string "Calculation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve calculation"
// @Router /calculations/{id} [get]
func (h *calculationHandler) getCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	calculationID := c.Param("id")

	calc, err := h.history.GetCalculation(c.Request.Context(), calculationID)
	if err != nil {
		h.respondCalculationError(c, logger, err, "Failed to retrieve calculation")
		return
	}

	c.JSON(http.StatusOK, dto.ToCalculationResponse(calc))
}

// markSaved godoc
// @Summary Mark a calculation as saved
// @Description Flags the snapshot so the retention purge skips it
// @Tags calculations
// @Produce  json
// @Param   id path string true "Calculation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Calculation not found"
// @Failure 500 {object} map[string]string "Failed to update calculation"
// @Router /calculations/{id}/save [post]
func (h *calculationHandler) markSaved(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	calculationID := c.Param("id")

	if err := h.history.MarkCalculationSaved(c.Request.Context(), calculationID); err != nil {
		h.respondCalculationError(c, logger, err, "Failed to update calculation")
		return
	}

	logger.Info("Calculation marked saved", slog.String("calculation_id", calculationID))
	c.JSON(http.StatusOK, gin.H{"message": "Calculation saved"})
}

// deleteCalculation godoc
// @Summary Delete a stored calculation
// @Description Removes the snapshot permanently
// @Tags calculations
// @Param   id path string true "Calculation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Calculation not found"
// @Failure 500 {object} map[string]string "Failed to delete calculation"
// @Router /calculations/{id} [delete]
func (h *calculationHandler) deleteCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	calculationID := c.Param("id")

	if err := h.history.DeleteCalculation(c.Request.Context(), calculationID); err != nil {
		h.respondCalculationError(c, logger, err, "Failed to delete calculation")
		return
	}

	logger.Info("Calculation deleted", slog.String("calculation_id", calculationID))
	c.Status(http.StatusNoContent)
}

// respondCalculationError maps calculation service errors onto HTTP statuses.
func (h *calculationHandler) respondCalculationError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateNotFound):
		logger.Warn("Rate not found for calculation", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Calculation not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
