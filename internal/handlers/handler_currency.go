package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/dto"
)

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup) {
	currencies := rg.Group("/currencies")
	{
		currencies.GET("", listCurrencies)
	}
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Retrieves the fixed catalog of currencies accepted for rates and calculations
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Router /currencies [get]
func listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(domain.SupportedCurrencies))
}
