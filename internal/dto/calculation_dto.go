package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

// PurchaseDataRequest carries the buy side of a calculation request.
type PurchaseDataRequest struct {
	Quantity   int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unitPrice" binding:"required"`
	Currency   string          `json:"currency" binding:"required,currencycode"`
	Freight    decimal.Decimal `json:"freight"`
	OtherCosts decimal.Decimal `json:"otherCosts"`
}

// SellingDataRequest carries the sell side of a calculation request.
type SellingDataRequest struct {
	UnitPrice              decimal.Decimal `json:"unitPrice" binding:"required"`
	Currency               string          `json:"currency" binding:"required,currencycode"`
	PlatformCommissionRate decimal.Decimal `json:"platformCommissionRate"`
	ReturnRate             decimal.Decimal `json:"returnRate"`
	InternationalFreight   decimal.Decimal `json:"internationalFreight"`
	AdvertisingCost        decimal.Decimal `json:"advertisingCost"`
	OtherCosts             decimal.Decimal `json:"otherCosts"`
}

// CalculateProfitRequest defines the payload for a profit calculation.
// TargetProfitRate defaults to 15 when omitted.
type CalculateProfitRequest struct {
	PurchaseData     PurchaseDataRequest `json:"purchaseData" binding:"required"`
	SellingData      SellingDataRequest  `json:"sellingData" binding:"required"`
	TargetProfitRate *decimal.Decimal    `json:"targetProfitRate"`
	Name             string              `json:"name"`
	Save             bool                `json:"save"`
}

// BatchCalculateProfitRequest carries multiple calculations for comparison.
type BatchCalculateProfitRequest struct {
	Items []CalculateProfitRequest `json:"items" binding:"required,min=1,dive"`
}

// BatchCalculationItemResult is the per-item outcome of a batch calculation.
type BatchCalculationItemResult struct {
	Index   int                       `json:"index"`
	Success bool                      `json:"success"`
	Error   string                    `json:"error,omitempty"`
	Result  *domain.CalculationResult `json:"result,omitempty"`
}

// CalculationResponse defines API responses for persisted calculations.
type CalculationResponse struct {
	CalculationID string                   `json:"calculationID"`
	Name          string                   `json:"name"`
	Result        domain.CalculationResult `json:"result"`
	IsSaved       bool                     `json:"isSaved"`
	CreatedAt     time.Time                `json:"createdAt"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
}

// ToDomainPurchaseData converts the request DTO to the domain type.
func (r PurchaseDataRequest) ToDomainPurchaseData() domain.PurchaseData {
	return domain.PurchaseData{
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		Currency:   domain.CurrencyCode(r.Currency),
		Freight:    r.Freight,
		OtherCosts: r.OtherCosts,
	}
}

// ToDomainSellingData converts the request DTO to the domain type.
func (r SellingDataRequest) ToDomainSellingData() domain.SellingData {
	return domain.SellingData{
		UnitPrice:              r.UnitPrice,
		Currency:               domain.CurrencyCode(r.Currency),
		PlatformCommissionRate: r.PlatformCommissionRate,
		ReturnRate:             r.ReturnRate,
		InternationalFreight:   r.InternationalFreight,
		AdvertisingCost:        r.AdvertisingCost,
		OtherCosts:             r.OtherCosts,
	}
}

// ToCalculationResponse converts a domain.Calculation to CalculationResponse DTO
func ToCalculationResponse(c *domain.Calculation) CalculationResponse {
	return CalculationResponse{
		CalculationID: c.CalculationID,
		Name:          c.Name,
		Result:        c.Result,
		IsSaved:       c.IsSaved,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListCalculationResponse converts a slice of domain.Calculation to response DTOs.
func ToListCalculationResponse(calcs []domain.Calculation) []CalculationResponse {
	responses := make([]CalculationResponse, len(calcs))
	for i := range calcs {
		responses[i] = ToCalculationResponse(&calcs[i])
	}
	return responses
}
