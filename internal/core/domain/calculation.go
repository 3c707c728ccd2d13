package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseData describes the buy side of a transaction. All monetary fields are
// expressed in Currency's own denomination.
type PurchaseData struct {
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Currency   CurrencyCode    `json:"currency"`
	Freight    decimal.Decimal `json:"freight"`
	OtherCosts decimal.Decimal `json:"otherCosts"`
}

// SellingData describes the sell side of a transaction. Commission and return
// rates are percentages in [0,100]; freight and advertising are per-unit costs,
// other costs are flat.
type SellingData struct {
	UnitPrice              decimal.Decimal `json:"unitPrice"`
	Currency               CurrencyCode    `json:"currency"`
	PlatformCommissionRate decimal.Decimal `json:"platformCommissionRate"`
	ReturnRate             decimal.Decimal `json:"returnRate"`
	InternationalFreight   decimal.Decimal `json:"internationalFreight"`
	AdvertisingCost        decimal.Decimal `json:"advertisingCost"`
	OtherCosts             decimal.Decimal `json:"otherCosts"`
}

// CostBreakdown itemizes total cost in the reference currency.
type CostBreakdown struct {
	PurchaseCost       decimal.Decimal `json:"purchaseCost"`
	PlatformCommission decimal.Decimal `json:"platformCommission"`
	ShippingCost       decimal.Decimal `json:"shippingCost"`
	AdvertisingCost    decimal.Decimal `json:"advertisingCost"`
	ReturnLoss         decimal.Decimal `json:"returnLoss"`
	OtherCosts         decimal.Decimal `json:"otherCosts"`
	TotalCost          decimal.Decimal `json:"totalCost"`
}

// ProfitResults holds the profit figures derived from a calculation, rounded to
// two decimal places.
type ProfitResults struct {
	TotalProfitCNY           decimal.Decimal `json:"totalProfitCny"`
	TotalProfitOriginal      decimal.Decimal `json:"totalProfitOriginal"`
	ProfitRate               decimal.Decimal `json:"profitRate"` // percent
	ProfitPerUnit            decimal.Decimal `json:"profitPerUnit"`
	TotalSalesAmountCNY      decimal.Decimal `json:"totalSalesAmountCny"`
	TotalSalesAmountOriginal decimal.Decimal `json:"totalSalesAmountOriginal"`
}

// PriceRecommendations holds break-even and target-profit unit prices. A zero
// value means the price is undefined for the given commission and return rates.
type PriceRecommendations struct {
	BreakEvenPriceOriginal   decimal.Decimal `json:"breakEvenPriceOriginal"`
	BreakEvenPriceCNY        decimal.Decimal `json:"breakEvenPriceCny"`
	RecommendedPriceOriginal decimal.Decimal `json:"recommendedPriceOriginal"`
}

// SuggestionType classifies an advisory message.
type SuggestionType string

const (
	SuggestionWarning SuggestionType = "warning"
	SuggestionInfo    SuggestionType = "info"
	SuggestionSuccess SuggestionType = "success"
	SuggestionTip     SuggestionType = "tip"
)

// Suggestion is a purely advisory message derived from calculation results.
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Icon    string         `json:"icon"`
	Message string         `json:"message"`
}

// CalculationResult is the full output of a profit calculation.
type CalculationResult struct {
	PurchaseData         PurchaseData         `json:"purchaseData"`
	PurchaseRate         decimal.Decimal      `json:"purchaseRate"`
	SellingData          SellingData          `json:"sellingData"`
	SellingRate          decimal.Decimal      `json:"sellingRate"`
	CostBreakdown        CostBreakdown        `json:"costBreakdown"`
	Results              ProfitResults        `json:"results"`
	PriceRecommendations PriceRecommendations `json:"priceRecommendations"`
	Suggestions          []Suggestion         `json:"suggestions"`
	CalculatedAt         time.Time            `json:"calculatedAt"`
}

// Calculation is a persisted calculation snapshot. Unsaved snapshots are swept
// after seven days by the daily maintenance job.
type Calculation struct {
	CalculationID string            `json:"calculationID"`
	Name          string            `json:"name"`
	Result        CalculationResult `json:"result"`
	IsSaved       bool              `json:"isSaved"`
	AuditFields
}
