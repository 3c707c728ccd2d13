package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/core/services"
)

// --- Mock RateFetcher ---
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) FetchRates(ctx context.Context) (map[string]decimal.Decimal, domain.RateSource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.RateSource), args.Error(2)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Get(1).(domain.RateSource), args.Error(2)
}

// --- Test Suite ---
type RateRefreshServiceTestSuite struct {
	suite.Suite
	mockFetcher  *MockRateFetcher
	mockRateRepo *MockRatePairRepository
	defaults     map[string]decimal.Decimal
	service      *services.RateRefreshService
}

func (suite *RateRefreshServiceTestSuite) SetupTest() {
	suite.mockFetcher = new(MockRateFetcher)
	suite.mockRateRepo = new(MockRatePairRepository)
	suite.defaults = map[string]decimal.Decimal{
		"USD_CNY": decimal.RequireFromString("7.2"),
		"EUR_CNY": decimal.RequireFromString("7.8"),
	}
	suite.service = services.NewRateRefreshService(suite.mockFetcher, suite.mockRateRepo, suite.defaults, newTestLogger())
}

func (suite *RateRefreshServiceTestSuite) TestRefreshRates_WritesFetchedPairs() {
	ctx := context.Background()
	fetched := map[string]decimal.Decimal{
		"USD_CNY": decimal.RequireFromString("7.25"),
		"EUR_USD": decimal.RequireFromString("1.08"),
	}

	suite.mockFetcher.On("FetchRates", ctx).Return(fetched, domain.RateSourceAPI, nil).Once()

	written := make(map[string]domain.RatePair)
	suite.mockRateRepo.On("UpsertPair", ctx, mock.AnythingOfType("domain.RatePair")).
		Run(func(args mock.Arguments) {
			pair := args.Get(1).(domain.RatePair)
			written[pair.PairKey()] = pair
		}).Return(nil).Times(2)

	err := suite.service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.Len(written, 2)
	suite.True(written["USD_CNY"].Rate.Equal(fetched["USD_CNY"]))
	suite.Equal(domain.RateSourceAPI, written["USD_CNY"].Source)
	suite.True(written["USD_CNY"].IsActive)
	suite.mockFetcher.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateRefreshServiceTestSuite) TestRefreshRates_SkipsMalformedPairs() {
	ctx := context.Background()
	fetched := map[string]decimal.Decimal{
		"USD_CNY": decimal.RequireFromString("7.25"),
		"BAD":     decimal.RequireFromString("1.0"),  // no separator
		"XXX_CNY": decimal.RequireFromString("2.0"),  // unsupported code
		"EUR_CNY": decimal.RequireFromString("-7.8"), // non-positive
	}

	suite.mockFetcher.On("FetchRates", ctx).Return(fetched, domain.RateSourceAPI, nil).Once()
	suite.mockRateRepo.On("UpsertPair", ctx, mock.MatchedBy(func(p domain.RatePair) bool {
		return p.PairKey() == "USD_CNY"
	})).Return(nil).Once()

	err := suite.service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "UpsertPair", 1)
}

func (suite *RateRefreshServiceTestSuite) TestRefreshRates_PartialWriteFailureContinues() {
	ctx := context.Background()
	fetched := map[string]decimal.Decimal{
		"USD_CNY": decimal.RequireFromString("7.25"),
		"EUR_CNY": decimal.RequireFromString("7.8"),
	}

	suite.mockFetcher.On("FetchRates", ctx).Return(fetched, domain.RateSourceAPI, nil).Once()
	suite.mockRateRepo.On("UpsertPair", ctx, mock.MatchedBy(func(p domain.RatePair) bool {
		return p.PairKey() == "USD_CNY"
	})).Return(errors.New("connection reset")).Once()
	suite.mockRateRepo.On("UpsertPair", ctx, mock.MatchedBy(func(p domain.RatePair) bool {
		return p.PairKey() == "EUR_CNY"
	})).Return(nil).Once()

	// One failing pair write never aborts the refresh.
	err := suite.service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateRefreshServiceTestSuite) TestRefreshRates_FetcherError() {
	ctx := context.Background()

	suite.mockFetcher.On("FetchRates", ctx).
		Return(nil, domain.RateSource(""), errors.New("all providers down")).Once()

	err := suite.service.RefreshRates(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateRefresh)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertPair")
}

func (suite *RateRefreshServiceTestSuite) TestRefreshRates_EmptyFetch() {
	ctx := context.Background()

	suite.mockFetcher.On("FetchRates", ctx).
		Return(map[string]decimal.Decimal{}, domain.RateSourceAPI, nil).Once()

	err := suite.service.RefreshRates(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateRefresh)
}

func (suite *RateRefreshServiceTestSuite) TestSeedDefaults_EmptyStore() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListActivePairs", ctx).Return([]domain.RatePair{}, nil).Once()

	written := make(map[string]domain.RatePair)
	suite.mockRateRepo.On("UpsertPair", ctx, mock.AnythingOfType("domain.RatePair")).
		Run(func(args mock.Arguments) {
			pair := args.Get(1).(domain.RatePair)
			written[pair.PairKey()] = pair
		}).Return(nil).Times(len(suite.defaults))

	err := suite.service.SeedDefaults(ctx)

	suite.Require().NoError(err)
	suite.Len(written, len(suite.defaults))
	for key, rate := range suite.defaults {
		suite.True(written[key].Rate.Equal(rate), "pair %s", key)
		suite.Equal(domain.RateSourceDefault, written[key].Source)
	}
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateRefreshServiceTestSuite) TestSeedDefaults_PopulatedStoreIsUntouched() {
	ctx := context.Background()
	existing := []domain.RatePair{
		{FromCurrencyCode: domain.USD, ToCurrencyCode: domain.CNY, Rate: decimal.RequireFromString("7.3"), IsActive: true},
	}

	suite.mockRateRepo.On("ListActivePairs", ctx).Return(existing, nil).Once()

	err := suite.service.SeedDefaults(ctx)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertPair")
}

// --- Run Suite ---
func TestRateRefreshService(t *testing.T) {
	suite.Run(t, new(RateRefreshServiceTestSuite))
}
