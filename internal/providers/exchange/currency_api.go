package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const defaultCurrencyAPIBaseURL = "https://api.currencyapi.com/v3/latest"

// CurrencyAPIProvider queries currencyapi.com. It requires an API key and is
// skipped entirely when none is configured.
type CurrencyAPIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// currencyAPIResponse is the v3 "latest" response shape; each currency entry
// wraps its value.
type currencyAPIResponse struct {
	Data map[string]struct {
		Code  string  `json:"code"`
		Value float64 `json:"value"`
	} `json:"data"`
}

// NewCurrencyAPIProvider creates a new CurrencyAPIProvider. An empty baseURL
// selects the public endpoint.
func NewCurrencyAPIProvider(apiKey, baseURL string, client *http.Client) *CurrencyAPIProvider {
	if baseURL == "" {
		baseURL = defaultCurrencyAPIBaseURL
	}
	return &CurrencyAPIProvider{apiKey: apiKey, baseURL: baseURL, client: client}
}

func (p *CurrencyAPIProvider) Name() string { return "CurrencyAPI" }

// Available reports whether an API key is configured.
func (p *CurrencyAPIProvider) Available() bool { return p.apiKey != "" }

// Fetch retrieves the USD-based rate sheet and normalizes it.
func (p *CurrencyAPIProvider) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := url.Values{}
	query.Set("apikey", p.apiKey)
	query.Set("base_currency", "USD")
	query.Set("currencies", "CNY,EUR,GBP,JPY")

	var resp currencyAPIResponse
	if err := getJSON(ctx, p.client, p.baseURL+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	return p.parse(resp)
}

func (p *CurrencyAPIProvider) parse(resp currencyAPIResponse) (map[string]decimal.Decimal, error) {
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("response contains no rates")
	}
	usdRates := make(map[string]float64, len(resp.Data))
	for code, entry := range resp.Data {
		usdRates[code] = entry.Value
	}
	return expandUSDRates(usdRates), nil
}
