package services

import (
	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

var (
	lowMarginThreshold  = decimal.NewFromInt(10)
	goodMarginThreshold = decimal.NewFromInt(20)
	returnRateThreshold = decimal.NewFromInt(5)

	commissionShareLimit  = decimal.NewFromFloat(0.15)
	shippingShareLimit    = decimal.NewFromFloat(0.20)
	advertisingShareLimit = decimal.NewFromFloat(0.15)
)

// GenerateSuggestions derives advisory messages from a completed calculation.
// Rules fire independently, except the profit-rate tier which picks exactly
// one. Suggestions are advisory only and never persisted as authoritative
// state.
func GenerateSuggestions(results domain.ProfitResults, breakdown domain.CostBreakdown, selling domain.SellingData) []domain.Suggestion {
	suggestions := []domain.Suggestion{profitTierSuggestion(results)}

	if breakdown.TotalCost.IsPositive() {
		if breakdown.PlatformCommission.Div(breakdown.TotalCost).GreaterThan(commissionShareLimit) {
			suggestions = append(suggestions, domain.Suggestion{
				Type:    domain.SuggestionTip,
				Icon:    "lightbulb-o",
				Message: "Platform commission exceeds 15% of total cost; look into platform promotions to lower the commission tier",
			})
		}
		if breakdown.ShippingCost.Div(breakdown.TotalCost).GreaterThan(shippingShareLimit) {
			suggestions = append(suggestions, domain.Suggestion{
				Type:    domain.SuggestionTip,
				Icon:    "lightbulb-o",
				Message: "Shipping exceeds 20% of total cost; consider a cheaper logistics channel or a higher sale price",
			})
		}
		if breakdown.AdvertisingCost.Div(breakdown.TotalCost).GreaterThan(advertisingShareLimit) {
			suggestions = append(suggestions, domain.Suggestion{
				Type:    domain.SuggestionTip,
				Icon:    "lightbulb-o",
				Message: "Advertising exceeds 15% of total cost; tune ad placement to improve return on spend",
			})
		}
	}

	if selling.ReturnRate.GreaterThan(returnRateThreshold) {
		suggestions = append(suggestions, domain.Suggestion{
			Type:    domain.SuggestionWarning,
			Icon:    "exclamation-triangle",
			Message: "Return rate above 5%; improve product quality or listing accuracy to cut return losses",
		})
	}

	return suggestions
}

// profitTierSuggestion picks exactly one message for the profit level, in
// priority order: loss, low margin, acceptable margin, excellent margin.
func profitTierSuggestion(results domain.ProfitResults) domain.Suggestion {
	switch {
	case results.TotalProfitCNY.IsNegative():
		return domain.Suggestion{
			Type:    domain.SuggestionWarning,
			Icon:    "exclamation-circle",
			Message: "Projected loss on this transaction; raise the sale price or reduce purchase costs",
		}
	case results.ProfitRate.LessThan(lowMarginThreshold):
		return domain.Suggestion{
			Type:    domain.SuggestionInfo,
			Icon:    "info-circle",
			Message: "Profit margin is low (<10%); review the cost structure",
		}
	case results.ProfitRate.LessThan(goodMarginThreshold):
		return domain.Suggestion{
			Type:    domain.SuggestionSuccess,
			Icon:    "check-circle",
			Message: "Profit margin is acceptable (10-20%); current strategy is sustainable",
		}
	default:
		return domain.Suggestion{
			Type:    domain.SuggestionSuccess,
			Icon:    "star",
			Message: "Profit margin is excellent (>20%); consider scaling up promotion",
		}
	}
}
