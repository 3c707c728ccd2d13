package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

// registerValidators installs custom binding validators on gin's validator
// engine. Safe to call more than once.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return domain.IsSupportedCurrency(domain.CurrencyCode(fl.Field().String()))
	})
}
