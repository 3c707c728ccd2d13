package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

// SetRateRequest defines the structure for creating or updating an exchange rate.
type SetRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
	Rate             decimal.Decimal `json:"rate" binding:"required"` // positivity enforced by the service
	Source           string          `json:"source" binding:"omitempty,oneof=manual api default"`
}

// RatePairResponse defines the structure for API responses containing rate pair details.
type RatePairResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`
	IsActive         bool            `json:"isActive"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// RateInfo is a single entry of the "FROM_TO" keyed rate map.
type RateInfo struct {
	Rate          decimal.Decimal `json:"rate"`
	Source        string          `json:"source"`
	LastUpdatedAt time.Time       `json:"lastUpdated"`
}

// ConvertResponse is the result of a currency conversion.
type ConvertResponse struct {
	Amount           decimal.Decimal `json:"amount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
}

// ToRatePairResponse converts a domain.RatePair to RatePairResponse DTO
func ToRatePairResponse(pair *domain.RatePair) RatePairResponse {
	return RatePairResponse{
		FromCurrencyCode: string(pair.FromCurrencyCode),
		ToCurrencyCode:   string(pair.ToCurrencyCode),
		Rate:             pair.Rate,
		Source:           string(pair.Source),
		IsActive:         pair.IsActive,
		LastUpdatedAt:    pair.LastUpdatedAt,
	}
}
