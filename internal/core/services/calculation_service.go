package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	portssvc "github.com/xbordertools/profit_calc_app/internal/core/ports/services"
	"github.com/xbordertools/profit_calc_app/internal/dto"
)

var hundred = decimal.NewFromInt(100)

// DefaultTargetProfitRate is applied when a calculation request omits the
// target profit rate.
var DefaultTargetProfitRate = decimal.NewFromInt(15)

// CalculationService turns purchase and selling inputs plus resolved exchange
// rates into a profit analysis. The pipeline is deterministic and
// side-effect-free; identical inputs always produce identical outputs.
type CalculationService struct {
	rates  portssvc.RateReaderSvc
	logger *slog.Logger
}

// NewCalculationService creates a new CalculationService.
func NewCalculationService(rates portssvc.RateReaderSvc, logger *slog.Logger) *CalculationService {
	return &CalculationService{
		rates:  rates,
		logger: logger,
	}
}

// purchaseCosts carries intermediate purchase-side amounts, unrounded.
type purchaseCosts struct {
	totalOriginal decimal.Decimal
	totalCNY      decimal.Decimal
}

// sellingAmounts carries intermediate sell-side amounts in the reference
// currency, unrounded.
type sellingAmounts struct {
	totalSalesCNY      decimal.Decimal
	totalSalesOriginal decimal.Decimal
	shippingCost       decimal.Decimal
	advertisingCost    decimal.Decimal
	otherCosts         decimal.Decimal
}

// CalculateProfit runs the full pipeline: validate, resolve rates, cost
// breakdown, profit results, recommended prices and suggestions. Intermediate
// amounts stay unrounded; monetary outputs are rounded to two decimal places
// only when the result is assembled.
func (s *CalculationService) CalculateProfit(ctx context.Context, purchase domain.PurchaseData, selling domain.SellingData, targetProfitRate decimal.Decimal) (*domain.CalculationResult, error) {
	if err := validateCalculationInput(purchase, selling); err != nil {
		return nil, err
	}

	purchaseRate, err := s.rates.GetRate(ctx, purchase.Currency, domain.ReferenceCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve purchase rate: %w", err)
	}
	sellingRate, err := s.rates.GetRate(ctx, selling.Currency, domain.ReferenceCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve selling rate: %w", err)
	}

	quantity := decimal.NewFromInt(purchase.Quantity)

	costs := calculatePurchaseCosts(purchase, purchaseRate, quantity)
	amounts := calculateSellingAmounts(selling, sellingRate, quantity)
	breakdown := calculateCostBreakdown(costs, amounts, selling)

	results := calculateResults(amounts, breakdown, quantity, sellingRate)
	prices := calculateRecommendedPrices(costs, selling, sellingRate, quantity, targetProfitRate)
	suggestions := GenerateSuggestions(results, breakdown, selling)

	result := &domain.CalculationResult{
		PurchaseData: purchase,
		PurchaseRate: purchaseRate,
		SellingData:  selling,
		SellingRate:  sellingRate,
		CostBreakdown: domain.CostBreakdown{
			PurchaseCost:       breakdown.PurchaseCost.Round(2),
			PlatformCommission: breakdown.PlatformCommission.Round(2),
			ShippingCost:       breakdown.ShippingCost.Round(2),
			AdvertisingCost:    breakdown.AdvertisingCost.Round(2),
			ReturnLoss:         breakdown.ReturnLoss.Round(2),
			OtherCosts:         breakdown.OtherCosts.Round(2),
			TotalCost:          breakdown.TotalCost.Round(2),
		},
		Results:              results,
		PriceRecommendations: prices,
		Suggestions:          suggestions,
		CalculatedAt:         time.Now().UTC(),
	}

	s.logger.Info("Profit calculation completed",
		slog.String("total_profit_cny", results.TotalProfitCNY.String()),
		slog.String("profit_rate", results.ProfitRate.String()),
	)
	return result, nil
}

// BatchCalculateProfit runs the pipeline for each item, capturing per-item
// outcomes without aborting the batch.
func (s *CalculationService) BatchCalculateProfit(ctx context.Context, items []dto.CalculateProfitRequest) []dto.BatchCalculationItemResult {
	results := make([]dto.BatchCalculationItemResult, 0, len(items))
	for i, item := range items {
		target := DefaultTargetProfitRate
		if item.TargetProfitRate != nil {
			target = *item.TargetProfitRate
		}
		result, err := s.CalculateProfit(ctx, item.PurchaseData.ToDomainPurchaseData(), item.SellingData.ToDomainSellingData(), target)
		if err != nil {
			results = append(results, dto.BatchCalculationItemResult{Index: i, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, dto.BatchCalculationItemResult{Index: i, Success: true, Result: result})
	}
	return results
}

func validateCalculationInput(purchase domain.PurchaseData, selling domain.SellingData) error {
	if purchase.Quantity <= 0 {
		return fmt.Errorf("%w: purchase quantity must be greater than 0", apperrors.ErrValidation)
	}
	if purchase.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: purchase unit price must be greater than 0", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(purchase.Currency) {
		return fmt.Errorf("%w: unsupported purchase currency %q", apperrors.ErrValidation, purchase.Currency)
	}
	if selling.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: selling unit price must be greater than 0", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(selling.Currency) {
		return fmt.Errorf("%w: unsupported selling currency %q", apperrors.ErrValidation, selling.Currency)
	}
	if selling.PlatformCommissionRate.IsNegative() || selling.PlatformCommissionRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: platform commission rate must be between 0 and 100", apperrors.ErrValidation)
	}
	if selling.ReturnRate.IsNegative() || selling.ReturnRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: return rate must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}

func calculatePurchaseCosts(purchase domain.PurchaseData, rate, quantity decimal.Decimal) purchaseCosts {
	totalOriginal := quantity.Mul(purchase.UnitPrice).Add(purchase.Freight).Add(purchase.OtherCosts)
	return purchaseCosts{
		totalOriginal: totalOriginal,
		totalCNY:      totalOriginal.Mul(rate),
	}
}

func calculateSellingAmounts(selling domain.SellingData, rate, quantity decimal.Decimal) sellingAmounts {
	return sellingAmounts{
		totalSalesCNY:      quantity.Mul(selling.UnitPrice).Mul(rate),
		totalSalesOriginal: quantity.Mul(selling.UnitPrice),
		shippingCost:       quantity.Mul(selling.InternationalFreight).Mul(rate),
		advertisingCost:    quantity.Mul(selling.AdvertisingCost).Mul(rate),
		otherCosts:         selling.OtherCosts.Mul(rate),
	}
}

func calculateCostBreakdown(costs purchaseCosts, amounts sellingAmounts, selling domain.SellingData) domain.CostBreakdown {
	commission := amounts.totalSalesCNY.Mul(selling.PlatformCommissionRate.Div(hundred))
	returnLoss := amounts.totalSalesCNY.Mul(selling.ReturnRate.Div(hundred))
	totalCost := costs.totalCNY.
		Add(commission).
		Add(amounts.shippingCost).
		Add(amounts.advertisingCost).
		Add(returnLoss).
		Add(amounts.otherCosts)

	return domain.CostBreakdown{
		PurchaseCost:       costs.totalCNY,
		PlatformCommission: commission,
		ShippingCost:       amounts.shippingCost,
		AdvertisingCost:    amounts.advertisingCost,
		ReturnLoss:         returnLoss,
		OtherCosts:         amounts.otherCosts,
		TotalCost:          totalCost,
	}
}

func calculateResults(amounts sellingAmounts, breakdown domain.CostBreakdown, quantity, sellingRate decimal.Decimal) domain.ProfitResults {
	totalProfitCNY := amounts.totalSalesCNY.Sub(breakdown.TotalCost)
	totalProfitOriginal := totalProfitCNY.Div(sellingRate)

	profitRate := decimal.Zero
	if amounts.totalSalesCNY.IsPositive() {
		profitRate = totalProfitCNY.Div(amounts.totalSalesCNY).Mul(hundred)
	}

	return domain.ProfitResults{
		TotalProfitCNY:           totalProfitCNY.Round(2),
		TotalProfitOriginal:      totalProfitOriginal.Round(2),
		ProfitRate:               profitRate.Round(2),
		ProfitPerUnit:            totalProfitCNY.Div(quantity).Round(2),
		TotalSalesAmountCNY:      amounts.totalSalesCNY.Round(2),
		TotalSalesAmountOriginal: amounts.totalSalesOriginal.Round(2),
	}
}

func calculateRecommendedPrices(costs purchaseCosts, selling domain.SellingData, sellingRate, quantity, targetProfitRate decimal.Decimal) domain.PriceRecommendations {
	// Fixed costs do not scale with the sale price: purchase cost plus the
	// per-unit shipping/advertising outlay and the flat other costs.
	fixedCostsCNY := costs.totalCNY.
		Add(quantity.Mul(selling.InternationalFreight.Add(selling.AdvertisingCost)).Mul(sellingRate)).
		Add(selling.OtherCosts.Mul(sellingRate))

	commissionShare := selling.PlatformCommissionRate.Div(hundred)
	returnShare := selling.ReturnRate.Div(hundred)

	breakEven := decimal.Zero
	// Commission plus return at or above 100% leaves no revenue per sale; the
	// break-even price is undefined and reported as zero.
	denomBreakEven := quantity.Mul(sellingRate).Mul(one.Sub(commissionShare).Sub(returnShare))
	if denomBreakEven.IsPositive() {
		breakEven = fixedCostsCNY.Div(denomBreakEven)
	}

	recommended := decimal.Zero
	denomTarget := quantity.Mul(sellingRate).Mul(one.Sub(commissionShare).Sub(returnShare).Sub(targetProfitRate.Div(hundred)))
	if denomTarget.IsPositive() {
		recommended = fixedCostsCNY.Div(denomTarget)
	}

	return domain.PriceRecommendations{
		BreakEvenPriceOriginal:   breakEven.Round(2),
		BreakEvenPriceCNY:        breakEven.Mul(sellingRate).Round(2),
		RecommendedPriceOriginal: recommended.Round(2),
	}
}
