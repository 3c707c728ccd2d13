package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a rate value came from.
type RateSource string

const (
	RateSourceManual  RateSource = "manual"
	RateSourceAPI     RateSource = "api"
	RateSourceDefault RateSource = "default"
)

// DefaultMaxRateAge is the staleness threshold applied when callers do not
// supply one.
const DefaultMaxRateAge = 60 * time.Minute

// RatePair stores the conversion rate between two currencies. A pair is unique
// on (FromCurrencyCode, ToCurrencyCode); updates upsert rather than duplicate,
// and pairs are retired by clearing IsActive rather than deleted.
type RatePair struct {
	FromCurrencyCode CurrencyCode    `json:"fromCurrencyCode"`
	ToCurrencyCode   CurrencyCode    `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"` // always > 0
	Source           RateSource      `json:"source"`
	IsActive         bool            `json:"isActive"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	AuditFields
}

// PairKey returns the canonical "FROM_TO" key for the pair.
func (p RatePair) PairKey() string {
	return PairKey(p.FromCurrencyCode, p.ToCurrencyCode)
}

// IsStale reports whether the pair's last update is older than maxAge.
// Staleness is a refresh-urgency signal only; reads return the best available
// value regardless.
func (p RatePair) IsStale(maxAge time.Duration) bool {
	if maxAge <= 0 {
		maxAge = DefaultMaxRateAge
	}
	return time.Since(p.LastUpdatedAt) > maxAge
}

// PairKey builds the canonical "FROM_TO" key used by the rate map endpoints and
// the provider pair maps.
func PairKey(from, to CurrencyCode) string {
	return fmt.Sprintf("%s_%s", from, to)
}

// SplitPairKey parses a canonical "FROM_TO" key back into its currency codes.
func SplitPairKey(key string) (from, to CurrencyCode, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '_' {
			return CurrencyCode(key[:i]), CurrencyCode(key[i+1:]), i == 3 && len(key) == 7
		}
	}
	return "", "", false
}
