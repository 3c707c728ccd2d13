package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	portssvc "github.com/xbordertools/profit_calc_app/internal/core/ports/services"
	"github.com/xbordertools/profit_calc_app/internal/dto"
	"github.com/xbordertools/profit_calc_app/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
	refresher   portssvc.RateRefresherSvc
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade, refresher portssvc.RateRefresherSvc) *rateHandler {
	return &rateHandler{
		rateService: rs,
		refresher:   refresher,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, refresher portssvc.RateRefresherSvc) {
	h := newRateHandler(rateService, refresher)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/convert", h.convert)
		rates.GET("/:from/:to", h.getRate)
		rates.POST("", h.setRate)
		rates.POST("/refresh", h.refreshRates)
		rates.DELETE("/:from/:to", h.deactivateRate)
	}
}

// listRates godoc
// @Summary List all active exchange rates
// @Description Retrieves every active rate pair keyed "FROM_TO" with its source and freshness
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} map[string]dto.RateInfo
// @Failure 500 {object} map[string]string "Failed to retrieve rates"
// @Router /exchange-rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.GetAllRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rates"})
		return
	}

	c.JSON(http.StatusOK, rates)
}

// getRate godoc
// @Summary Get the exchange rate between two currencies
// @Description Resolves the rate from one currency to another, falling back to the inverse pair's reciprocal
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "Source currency code" MinLength(3) MaxLength(3)
// @Param   to path string true "Target currency code" MinLength(3) MaxLength(3)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Unsupported currency"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Router /exchange-rates/{from}/{to} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := domain.CurrencyCode(strings.ToUpper(c.Param("from")))
	to := domain.CurrencyCode(strings.ToUpper(c.Param("to")))

	rate, err := h.rateService.GetRate(c.Request.Context(), from, to)
	if err != nil {
		h.respondRateError(c, logger, err, "Failed to retrieve rate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fromCurrencyCode": from,
		"toCurrencyCode":   to,
		"rate":             rate,
	})
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts amount using the resolved rate, rounding the result to two decimal places
// @Tags exchange-rates
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Router /exchange-rates/convert [get]
func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: must be a decimal number"})
		return
	}
	from := domain.CurrencyCode(strings.ToUpper(c.Query("from")))
	to := domain.CurrencyCode(strings.ToUpper(c.Query("to")))

	converted, err := h.rateService.Convert(c.Request.Context(), amount, from, to)
	if err != nil {
		h.respondRateError(c, logger, err, "Failed to convert amount")
		return
	}

	rate, err := h.rateService.GetRate(c.Request.Context(), from, to)
	if err != nil {
		h.respondRateError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:           amount,
		FromCurrencyCode: string(from),
		ToCurrencyCode:   string(to),
		Rate:             rate,
		ConvertedAmount:  converted,
	})
}

// setRate godoc
// @Summary Create or update an exchange rate
// @Description Upserts the (from, to) pair; reverse lookups resolve by inversion so the reciprocal is never stored
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SetRateRequest true "Rate details"
// @Success 200 {object} dto.RatePairResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to set rate"
// @Router /exchange-rates [post]
func (h *rateHandler) setRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	pair, err := h.rateService.SetRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set rate"})
		}
		return
	}

	logger.Info("Exchange rate set", slog.String("pair", pair.PairKey()))
	c.JSON(http.StatusOK, dto.ToRatePairResponse(pair))
}

// refreshRates godoc
// @Summary Trigger an immediate rate refresh
// @Description Fetches the freshest rate set from the providers and upserts every pair
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Refresh failed"
// @Router /exchange-rates/refresh [post]
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.refresher.RefreshRates(c.Request.Context()); err != nil {
		logger.Error("Manual rate refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
		return
	}

	logger.Info("Manual rate refresh completed")
	c.JSON(http.StatusOK, gin.H{"message": "Rates refreshed"})
}

// deactivateRate godoc
// @Summary Deactivate an exchange rate
// @Description Logically retires the (from, to) pair so lookups no longer resolve it
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "Source currency code"
// @Param   to path string true "Target currency code"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unsupported currency"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to deactivate rate"
// @Router /exchange-rates/{from}/{to} [delete]
func (h *rateHandler) deactivateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := domain.CurrencyCode(strings.ToUpper(c.Param("from")))
	to := domain.CurrencyCode(strings.ToUpper(c.Param("to")))

	if err := h.rateService.DeactivateRate(c.Request.Context(), from, to); err != nil {
		h.respondRateError(c, logger, err, "Failed to deactivate rate")
		return
	}

	logger.Info("Exchange rate deactivated", slog.String("from", string(from)), slog.String("to", string(to)))
	c.Status(http.StatusNoContent)
}

// respondRateError maps rate service errors onto HTTP statuses.
func (h *rateHandler) respondRateError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateNotFound), errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Rate not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
