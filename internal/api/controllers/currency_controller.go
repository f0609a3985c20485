package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tripdeck/internal/models/response_models"
	"tripdeck/internal/services"
	"tripdeck/pkg/utils"
)

type CurrencyController struct {
	currencyService services.CurrencyServiceInterface
}

func NewCurrencyController(currencyService services.CurrencyServiceInterface) *CurrencyController {
	return &CurrencyController{
		currencyService: currencyService,
	}
}

// GetRates godoc
// @Summary Current rate table
// @Description Base-currency units per one unit of each currency; source is live, cache or fallback
// @Tags Currency
// @Produce json
// @Success 200 {object} response_models.RateTableResponse
// @Security BearerAuth
// @Router /currency/rates [get]
func (cc *CurrencyController) GetRates(c *gin.Context) {
	utils.RespondSuccess(c, cc.currencyService.Rates(c.Request.Context()), "Rates fetched successfully")
}

// GetRate godoc
// @Summary Rate for one currency
// @Tags Currency
// @Produce json
// @Param code path string true "ISO currency code"
// @Success 200 {object} response_models.RateResponse
// @Security BearerAuth
// @Router /currency/rate/{code} [get]
func (cc *CurrencyController) GetRate(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	rate := cc.currencyService.Rate(c.Request.Context(), code)

	utils.RespondSuccess(c, response_models.RateResponse{
		Currency: code,
		Base:     cc.currencyService.Base(),
		Rate:     rate,
	}, "Rate fetched successfully")
}
