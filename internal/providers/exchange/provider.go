// Package exchange fetches currency rates from external providers and
// normalizes every response into the canonical "FROM_TO" pair map consumed by
// the refresh service. Each provider owns its response schema and parser.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

// Provider is a single external rate source.
type Provider interface {
	Name() string

	// Available reports whether the provider can be queried at all;
	// providers that need a credential return false when it is absent, so
	// the fetcher skips them instead of failing.
	Available() bool

	// Fetch retrieves and parses the provider response into a canonical
	// pair map. An empty map without error is treated as a miss.
	Fetch(ctx context.Context) (map[string]decimal.Decimal, error)
}

// crossTargets are the non-USD currencies requested from USD-based providers.
var crossTargets = []domain.CurrencyCode{domain.CNY, domain.EUR, domain.GBP, domain.JPY}

// expandUSDRates normalizes a USD-based rate set into the canonical pair map:
// forward USD_X pairs, reciprocal X_USD pairs, and CNY cross pairs derived as
// CNY_X = USD_X / USD_CNY. Pairs whose legs are missing are omitted silently;
// the stored value for that pair simply stays as it was.
func expandUSDRates(usdRates map[string]float64) map[string]decimal.Decimal {
	pairs := make(map[string]decimal.Decimal)
	for _, code := range crossTargets {
		value, ok := usdRates[string(code)]
		if !ok || value <= 0 {
			continue
		}
		rate := decimal.NewFromFloat(value)
		pairs[domain.PairKey(domain.USD, code)] = rate
		pairs[domain.PairKey(code, domain.USD)] = decimal.NewFromInt(1).Div(rate)
	}

	usdToCny, ok := pairs[domain.PairKey(domain.USD, domain.CNY)]
	if !ok {
		return pairs
	}
	for _, code := range crossTargets {
		if code == domain.CNY {
			continue
		}
		usdToX, ok := pairs[domain.PairKey(domain.USD, code)]
		if !ok {
			continue
		}
		pairs[domain.PairKey(domain.CNY, code)] = usdToX.Div(usdToCny)
	}
	return pairs
}

// getJSON issues a GET with the request context and decodes the JSON body
// into v. Non-2xx statuses are returned as errors with a body excerpt.
func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrProviderFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: unexpected status %d: %s", apperrors.ErrProviderFetch, resp.StatusCode, excerpt)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
