package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePair mirrors a row of the exchange_rates table. The pair of currency
// codes is unique; rows are retired by clearing is_active, never deleted.
type RatePair struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"` // manual|api|default
	IsActive         bool            `json:"isActive"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	AuditFields
}
