package exchange

import "github.com/shopspring/decimal"

// defaultRateTable is the static fallback used when every provider fails and
// for first-start seeding. Values are reviewed manually; freshness is traded
// for availability here.
var defaultRateTable = map[string]float64{
	"CNY_USD": 0.138,
	"USD_CNY": 7.25,
	"CNY_EUR": 0.128,
	"EUR_CNY": 7.80,
	"CNY_GBP": 0.111,
	"GBP_CNY": 9.00,
	"CNY_JPY": 20.0,
	"JPY_CNY": 0.05,
	"USD_EUR": 0.925,
	"EUR_USD": 1.081,
	"USD_GBP": 0.804,
	"GBP_USD": 1.244,
	"USD_JPY": 145.0,
	"JPY_USD": 0.0069,
	"EUR_GBP": 0.869,
	"GBP_EUR": 1.151,
	"EUR_JPY": 156.7,
	"JPY_EUR": 0.0064,
	"GBP_JPY": 180.3,
	"JPY_GBP": 0.0055,
}

// DefaultRates returns a fresh copy of the static default table. Always
// non-empty, which is what guarantees a refresh cycle can never come up with
// nothing to write.
func DefaultRates() map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal, len(defaultRateTable))
	for pair, value := range defaultRateTable {
		rates[pair] = decimal.NewFromFloat(value)
	}
	return rates
}
