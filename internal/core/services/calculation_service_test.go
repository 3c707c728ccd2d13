package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/core/services"
	"github.com/xbordertools/profit_calc_app/internal/dto"
)

// --- Mock RateReaderSvc ---
type MockRateReaderSvc struct {
	mock.Mock
}

func (m *MockRateReaderSvc) GetRate(ctx context.Context, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateReaderSvc) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateReaderSvc) GetAllRates(ctx context.Context) (map[string]dto.RateInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]dto.RateInfo), args.Error(1)
}

// --- Test Suite ---
type CalculationServiceTestSuite struct {
	suite.Suite
	mockRates *MockRateReaderSvc
	service   *services.CalculationService
}

func (suite *CalculationServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockRateReaderSvc)
	suite.service = services.NewCalculationService(suite.mockRates, newTestLogger())
}

// standardScenario is 100 units bought at CNY 10 with CNY 50 freight, sold at
// USD 5 with 10% commission and 2% returns, USD->CNY at 7.2.
func standardScenario() (domain.PurchaseData, domain.SellingData) {
	purchase := domain.PurchaseData{
		Quantity:  100,
		UnitPrice: decimal.NewFromInt(10),
		Currency:  domain.CNY,
		Freight:   decimal.NewFromInt(50),
	}
	selling := domain.SellingData{
		UnitPrice:              decimal.NewFromInt(5),
		Currency:               domain.USD,
		PlatformCommissionRate: decimal.NewFromInt(10),
		ReturnRate:             decimal.NewFromInt(2),
	}
	return purchase, selling
}

func (suite *CalculationServiceTestSuite) mockStandardRates(ctx context.Context) {
	suite.mockRates.On("GetRate", ctx, domain.CNY, domain.CNY).
		Return(decimal.NewFromInt(1), nil)
	suite.mockRates.On("GetRate", ctx, domain.USD, domain.CNY).
		Return(decimal.RequireFromString("7.2"), nil)
}

func (suite *CalculationServiceTestSuite) assertDecimalEq(expected string, actual decimal.Decimal, label string) {
	suite.True(actual.Equal(decimal.RequireFromString(expected)),
		"%s: got %s, want %s", label, actual, expected)
}

func (suite *CalculationServiceTestSuite) TestCalculateProfit_StandardScenario() {
	ctx := context.Background()
	purchase, selling := standardScenario()
	suite.mockStandardRates(ctx)

	result, err := suite.service.CalculateProfit(ctx, purchase, selling, decimal.NewFromInt(15))

	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	suite.assertDecimalEq("1", result.PurchaseRate, "purchase rate")
	suite.assertDecimalEq("7.2", result.SellingRate, "selling rate")

	b := result.CostBreakdown
	suite.assertDecimalEq("1050", b.PurchaseCost, "purchase cost")
	suite.assertDecimalEq("360", b.PlatformCommission, "platform commission")
	suite.assertDecimalEq("72", b.ReturnLoss, "return loss")
	suite.assertDecimalEq("0", b.ShippingCost, "shipping cost")
	suite.assertDecimalEq("0", b.AdvertisingCost, "advertising cost")
	suite.assertDecimalEq("0", b.OtherCosts, "other costs")
	suite.assertDecimalEq("1482", b.TotalCost, "total cost")

	r := result.Results
	suite.assertDecimalEq("3600", r.TotalSalesAmountCNY, "total sales CNY")
	suite.assertDecimalEq("500", r.TotalSalesAmountOriginal, "total sales original")
	suite.assertDecimalEq("2118", r.TotalProfitCNY, "total profit CNY")
	suite.assertDecimalEq("294.17", r.TotalProfitOriginal, "total profit original")
	suite.assertDecimalEq("58.83", r.ProfitRate, "profit rate")
	suite.assertDecimalEq("21.18", r.ProfitPerUnit, "profit per unit")

	p := result.PriceRecommendations
	suite.assertDecimalEq("1.66", p.BreakEvenPriceOriginal, "break-even original")
	suite.assertDecimalEq("11.93", p.BreakEvenPriceCNY, "break-even CNY")
	suite.assertDecimalEq("2", p.RecommendedPriceOriginal, "recommended price")

	// Excellent margin tier plus the commission share tip; no other rule fires.
	suite.Require().Len(result.Suggestions, 2)
	suite.Equal(domain.SuggestionSuccess, result.Suggestions[0].Type)
	suite.Equal("star", result.Suggestions[0].Icon)
	suite.Equal(domain.SuggestionTip, result.Suggestions[1].Type)
}

func (suite *CalculationServiceTestSuite) TestCalculateProfit_Idempotent() {
	ctx := context.Background()
	purchase, selling := standardScenario()
	suite.mockStandardRates(ctx)

	first, err := suite.service.CalculateProfit(ctx, purchase, selling, decimal.NewFromInt(15))
	suite.Require().NoError(err)
	second, err := suite.service.CalculateProfit(ctx, purchase, selling, decimal.NewFromInt(15))
	suite.Require().NoError(err)

	// Everything except the calculation timestamp must be identical.
	first.CalculatedAt = second.CalculatedAt
	suite.Equal(first, second)
}

func (suite *CalculationServiceTestSuite) TestCalculateProfit_BreakEvenGuard() {
	ctx := context.Background()
	purchase, selling := standardScenario()
	// Commission plus return consume all revenue: break-even is undefined.
	selling.PlatformCommissionRate = decimal.NewFromInt(60)
	selling.ReturnRate = decimal.NewFromInt(40)
	suite.mockStandardRates(ctx)

	result, err := suite.service.CalculateProfit(ctx, purchase, selling, decimal.NewFromInt(15))

	suite.Require().NoError(err)
	suite.assertDecimalEq("0", result.PriceRecommendations.BreakEvenPriceOriginal, "break-even original")
	suite.assertDecimalEq("0", result.PriceRecommendations.BreakEvenPriceCNY, "break-even CNY")
	suite.assertDecimalEq("0", result.PriceRecommendations.RecommendedPriceOriginal, "recommended price")
}

func (suite *CalculationServiceTestSuite) TestCalculateProfit_RateResolutionFails() {
	ctx := context.Background()
	purchase, selling := standardScenario()

	suite.mockRates.On("GetRate", ctx, domain.CNY, domain.CNY).
		Return(decimal.NewFromInt(1), nil)
	suite.mockRates.On("GetRate", ctx, domain.USD, domain.CNY).
		Return(decimal.Zero, apperrors.ErrRateNotFound)

	_, err := suite.service.CalculateProfit(ctx, purchase, selling, decimal.NewFromInt(15))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
}

func (suite *CalculationServiceTestSuite) TestCalculateProfit_ValidationErrors() {
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(p *domain.PurchaseData, s *domain.SellingData)
	}{
		{"zero quantity", func(p *domain.PurchaseData, s *domain.SellingData) { p.Quantity = 0 }},
		{"negative purchase price", func(p *domain.PurchaseData, s *domain.SellingData) { p.UnitPrice = decimal.NewFromInt(-1) }},
		{"unsupported purchase currency", func(p *domain.PurchaseData, s *domain.SellingData) { p.Currency = "XXX" }},
		{"zero selling price", func(p *domain.PurchaseData, s *domain.SellingData) { s.UnitPrice = decimal.Zero }},
		{"unsupported selling currency", func(p *domain.PurchaseData, s *domain.SellingData) { s.Currency = "XXX" }},
		{"commission above 100", func(p *domain.PurchaseData, s *domain.SellingData) { s.PlatformCommissionRate = decimal.NewFromInt(101) }},
		{"negative return rate", func(p *domain.PurchaseData, s *domain.SellingData) { s.ReturnRate = decimal.NewFromInt(-1) }},
	}

	for _, tc := range cases {
		purchase, selling := standardScenario()
		tc.mutate(&purchase, &selling)

		_, err := suite.service.CalculateProfit(ctx, purchase, selling, decimal.NewFromInt(15))

		suite.Require().Error(err, tc.name)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}
	suite.mockRates.AssertNotCalled(suite.T(), "GetRate")
}

func (suite *CalculationServiceTestSuite) TestBatchCalculateProfit_MixedOutcomes() {
	ctx := context.Background()
	suite.mockStandardRates(ctx)

	good := dto.CalculateProfitRequest{
		PurchaseData: dto.PurchaseDataRequest{
			Quantity:  100,
			UnitPrice: decimal.NewFromInt(10),
			Currency:  "CNY",
			Freight:   decimal.NewFromInt(50),
		},
		SellingData: dto.SellingDataRequest{
			UnitPrice:              decimal.NewFromInt(5),
			Currency:               "USD",
			PlatformCommissionRate: decimal.NewFromInt(10),
			ReturnRate:             decimal.NewFromInt(2),
		},
	}
	bad := good
	bad.PurchaseData.Quantity = 0

	results := suite.service.BatchCalculateProfit(ctx, []dto.CalculateProfitRequest{good, bad})

	suite.Require().Len(results, 2)

	suite.True(results[0].Success)
	suite.Equal(0, results[0].Index)
	suite.Require().NotNil(results[0].Result)
	// No target supplied: the default 15% applies.
	suite.True(results[0].Result.PriceRecommendations.RecommendedPriceOriginal.Equal(decimal.NewFromInt(2)))

	suite.False(results[1].Success)
	suite.Equal(1, results[1].Index)
	suite.Nil(results[1].Result)
	suite.NotEmpty(results[1].Error)
}

// --- Run Suite ---
func TestCalculationService(t *testing.T) {
	suite.Run(t, new(CalculationServiceTestSuite))
}
