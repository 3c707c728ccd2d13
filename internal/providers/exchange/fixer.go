package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const defaultFixerBaseURL = "https://api.fixer.io/latest"

// FixerProvider queries fixer.io. It requires an access key and is skipped
// entirely when none is configured.
type FixerProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// fixerResponse is the fixer.io "latest" response shape.
type fixerResponse struct {
	Success bool               `json:"success"`
	Base    string             `json:"base"`
	Rates   map[string]float64 `json:"rates"`
	Error   struct {
		Code int    `json:"code"`
		Type string `json:"type"`
	} `json:"error"`
}

// NewFixerProvider creates a new FixerProvider. An empty baseURL selects the
// public endpoint.
func NewFixerProvider(apiKey, baseURL string, client *http.Client) *FixerProvider {
	if baseURL == "" {
		baseURL = defaultFixerBaseURL
	}
	return &FixerProvider{apiKey: apiKey, baseURL: baseURL, client: client}
}

func (p *FixerProvider) Name() string { return "Fixer.io" }

// Available reports whether an access key is configured.
func (p *FixerProvider) Available() bool { return p.apiKey != "" }

// Fetch retrieves the USD-based rate sheet and normalizes it.
func (p *FixerProvider) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := url.Values{}
	query.Set("access_key", p.apiKey)
	query.Set("base", "USD")
	query.Set("symbols", "CNY,EUR,GBP,JPY")

	var resp fixerResponse
	if err := getJSON(ctx, p.client, p.baseURL+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	return p.parse(resp)
}

func (p *FixerProvider) parse(resp fixerResponse) (map[string]decimal.Decimal, error) {
	if !resp.Success {
		return nil, fmt.Errorf("provider error: code=%d type=%s", resp.Error.Code, resp.Error.Type)
	}
	if len(resp.Rates) == 0 {
		return nil, fmt.Errorf("response contains no rates")
	}
	return expandUSDRates(resp.Rates), nil
}
