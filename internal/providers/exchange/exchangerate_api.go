package exchange

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

const defaultExchangeRateAPIURL = "https://api.exchangerate-api.com/v4/latest/USD"

// ExchangeRateAPIProvider queries exchangerate-api.com. The open endpoint
// needs no credential, which makes this the first provider in the chain.
type ExchangeRateAPIProvider struct {
	url    string
	client *http.Client
}

// exchangeRateAPIResponse is the v4 "latest" response shape.
type exchangeRateAPIResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// NewExchangeRateAPIProvider creates a new ExchangeRateAPIProvider. An empty
// url selects the public USD endpoint.
func NewExchangeRateAPIProvider(url string, client *http.Client) *ExchangeRateAPIProvider {
	if url == "" {
		url = defaultExchangeRateAPIURL
	}
	return &ExchangeRateAPIProvider{url: url, client: client}
}

func (p *ExchangeRateAPIProvider) Name() string { return "ExchangeRate-API" }

// Available always reports true; the endpoint is keyless.
func (p *ExchangeRateAPIProvider) Available() bool { return true }

// Fetch retrieves the USD-based rate sheet and normalizes it.
func (p *ExchangeRateAPIProvider) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	var resp exchangeRateAPIResponse
	if err := getJSON(ctx, p.client, p.url, &resp); err != nil {
		return nil, err
	}
	return p.parse(resp)
}

func (p *ExchangeRateAPIProvider) parse(resp exchangeRateAPIResponse) (map[string]decimal.Decimal, error) {
	if len(resp.Rates) == 0 {
		return nil, fmt.Errorf("response contains no rates")
	}
	return expandUSDRates(resp.Rates), nil
}
