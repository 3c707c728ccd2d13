package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/core/services"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// quietBreakdown has no cost share large enough to trigger a tip.
func quietBreakdown() domain.CostBreakdown {
	return domain.CostBreakdown{
		PurchaseCost:       dec("900"),
		PlatformCommission: dec("50"),
		ShippingCost:       dec("30"),
		AdvertisingCost:    dec("20"),
		TotalCost:          dec("1000"),
	}
}

func suggestionTypes(suggestions []domain.Suggestion) []domain.SuggestionType {
	types := make([]domain.SuggestionType, len(suggestions))
	for i, s := range suggestions {
		types[i] = s.Type
	}
	return types
}

func TestGenerateSuggestions_ProfitTiers(t *testing.T) {
	cases := []struct {
		name         string
		profit       string
		rate         string
		expectedType domain.SuggestionType
		expectedIcon string
	}{
		{"loss", "-100", "-10", domain.SuggestionWarning, "exclamation-circle"},
		{"low margin", "50", "5", domain.SuggestionInfo, "info-circle"},
		{"acceptable margin", "150", "15", domain.SuggestionSuccess, "check-circle"},
		{"excellent margin", "300", "30", domain.SuggestionSuccess, "star"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := domain.ProfitResults{
				TotalProfitCNY: dec(tc.profit),
				ProfitRate:     dec(tc.rate),
			}

			suggestions := services.GenerateSuggestions(results, quietBreakdown(), domain.SellingData{})

			assert.Len(t, suggestions, 1)
			assert.Equal(t, tc.expectedType, suggestions[0].Type)
			assert.Equal(t, tc.expectedIcon, suggestions[0].Icon)
		})
	}
}

func TestGenerateSuggestions_TierBoundaries(t *testing.T) {
	// Rate exactly at a boundary falls into the tier above it.
	atTen := services.GenerateSuggestions(domain.ProfitResults{TotalProfitCNY: dec("1"), ProfitRate: dec("10")}, quietBreakdown(), domain.SellingData{})
	assert.Equal(t, "check-circle", atTen[0].Icon)

	atTwenty := services.GenerateSuggestions(domain.ProfitResults{TotalProfitCNY: dec("1"), ProfitRate: dec("20")}, quietBreakdown(), domain.SellingData{})
	assert.Equal(t, "star", atTwenty[0].Icon)

	// Zero profit with zero rate is not a loss.
	atZero := services.GenerateSuggestions(domain.ProfitResults{TotalProfitCNY: dec("0"), ProfitRate: dec("0")}, quietBreakdown(), domain.SellingData{})
	assert.Equal(t, "info-circle", atZero[0].Icon)
}

func TestGenerateSuggestions_CostShareTips(t *testing.T) {
	results := domain.ProfitResults{TotalProfitCNY: dec("300"), ProfitRate: dec("30")}
	breakdown := domain.CostBreakdown{
		PurchaseCost:       dec("200"),
		PlatformCommission: dec("200"), // 20% of total, above the 15% limit
		ShippingCost:       dec("300"), // 30% of total, above the 20% limit
		AdvertisingCost:    dec("200"), // 20% of total, above the 15% limit
		TotalCost:          dec("1000"),
	}

	suggestions := services.GenerateSuggestions(results, breakdown, domain.SellingData{})

	types := suggestionTypes(suggestions)
	assert.Equal(t, []domain.SuggestionType{
		domain.SuggestionSuccess,
		domain.SuggestionTip,
		domain.SuggestionTip,
		domain.SuggestionTip,
	}, types)
}

func TestGenerateSuggestions_ReturnRateWarning(t *testing.T) {
	results := domain.ProfitResults{TotalProfitCNY: dec("300"), ProfitRate: dec("30")}
	selling := domain.SellingData{ReturnRate: dec("6")}

	suggestions := services.GenerateSuggestions(results, quietBreakdown(), selling)

	assert.Len(t, suggestions, 2)
	assert.Equal(t, domain.SuggestionWarning, suggestions[1].Type)
	assert.Equal(t, "exclamation-triangle", suggestions[1].Icon)

	// Exactly 5% does not fire the warning.
	selling.ReturnRate = dec("5")
	suggestions = services.GenerateSuggestions(results, quietBreakdown(), selling)
	assert.Len(t, suggestions, 1)
}

func TestGenerateSuggestions_ZeroTotalCost(t *testing.T) {
	results := domain.ProfitResults{TotalProfitCNY: dec("300"), ProfitRate: dec("30")}

	// A zero total cost must not panic or divide; only the tier message fires.
	suggestions := services.GenerateSuggestions(results, domain.CostBreakdown{}, domain.SellingData{})

	assert.Len(t, suggestions, 1)
	assert.Equal(t, domain.SuggestionSuccess, suggestions[0].Type)
}
