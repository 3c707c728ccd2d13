package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/core/services"
)

// --- Mock CalculationRepository ---
type MockCalculationRepository struct {
	mock.Mock
}

func (m *MockCalculationRepository) FindCalculationByID(ctx context.Context, calculationID string) (*domain.Calculation, error) {
	args := m.Called(ctx, calculationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calculation), args.Error(1)
}

func (m *MockCalculationRepository) ListCalculations(ctx context.Context, limit, offset int) ([]domain.Calculation, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Calculation), args.Error(1)
}

func (m *MockCalculationRepository) SaveCalculation(ctx context.Context, calc domain.Calculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *MockCalculationRepository) MarkSaved(ctx context.Context, calculationID string) error {
	args := m.Called(ctx, calculationID)
	return args.Error(0)
}

func (m *MockCalculationRepository) DeleteCalculation(ctx context.Context, calculationID string) error {
	args := m.Called(ctx, calculationID)
	return args.Error(0)
}

func (m *MockCalculationRepository) PurgeUnsaved(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCalculationRepository) RunMaintenance(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite ---
type CalculationHistoryServiceTestSuite struct {
	suite.Suite
	mockCalcRepo *MockCalculationRepository
	service      *services.CalculationHistoryService
}

func (suite *CalculationHistoryServiceTestSuite) SetupTest() {
	suite.mockCalcRepo = new(MockCalculationRepository)
	suite.service = services.NewCalculationHistoryService(suite.mockCalcRepo, newTestLogger())
}

func sampleResult() domain.CalculationResult {
	return domain.CalculationResult{
		Results: domain.ProfitResults{
			TotalProfitCNY: decimal.RequireFromString("2118"),
			ProfitRate:     decimal.RequireFromString("58.83"),
		},
		CalculatedAt: time.Now().UTC(),
	}
}

func (suite *CalculationHistoryServiceTestSuite) TestSaveCalculation() {
	ctx := context.Background()

	var persisted domain.Calculation
	suite.mockCalcRepo.On("SaveCalculation", ctx, mock.AnythingOfType("domain.Calculation")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(domain.Calculation)
		}).Return(nil).Once()

	calc, err := suite.service.SaveCalculation(ctx, "Q3 electronics", sampleResult(), true)

	suite.Require().NoError(err)
	suite.Require().NotNil(calc)
	suite.NotEmpty(calc.CalculationID)
	_, parseErr := uuid.Parse(calc.CalculationID)
	suite.NoError(parseErr)
	suite.Equal("Q3 electronics", calc.Name)
	suite.True(calc.IsSaved)
	suite.Equal(calc.CalculationID, persisted.CalculationID)
	suite.mockCalcRepo.AssertExpectations(suite.T())
}

func (suite *CalculationHistoryServiceTestSuite) TestGetCalculation_NotFound() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockCalcRepo.On("FindCalculationByID", ctx, id).
		Return(nil, apperrors.ErrNotFound).Once()

	calc, err := suite.service.GetCalculation(ctx, id)

	suite.Require().Error(err)
	suite.Nil(calc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCalcRepo.AssertExpectations(suite.T())
}

func (suite *CalculationHistoryServiceTestSuite) TestListCalculations_DefaultsLimitAndOffset() {
	ctx := context.Background()

	suite.mockCalcRepo.On("ListCalculations", ctx, 50, 0).
		Return([]domain.Calculation{}, nil).Once()

	calcs, err := suite.service.ListCalculations(ctx, 0, -3)

	suite.Require().NoError(err)
	suite.NotNil(calcs)
	suite.Empty(calcs)
	suite.mockCalcRepo.AssertExpectations(suite.T())
}

func (suite *CalculationHistoryServiceTestSuite) TestMarkCalculationSaved() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockCalcRepo.On("MarkSaved", ctx, id).Return(nil).Once()

	err := suite.service.MarkCalculationSaved(ctx, id)

	suite.Require().NoError(err)
	suite.mockCalcRepo.AssertExpectations(suite.T())
}

func (suite *CalculationHistoryServiceTestSuite) TestPurgeExpired_UsesRetentionCutoff() {
	ctx := context.Background()

	suite.mockCalcRepo.On("PurgeUnsaved", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		// Cutoff sits seven days back, give or take scheduling slack.
		expected := time.Now().Add(-7 * 24 * time.Hour)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(4), nil).Once()

	removed, err := suite.service.PurgeExpired(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(4), removed)
	suite.mockCalcRepo.AssertExpectations(suite.T())
}

func (suite *CalculationHistoryServiceTestSuite) TestRunStorageMaintenance() {
	ctx := context.Background()

	suite.mockCalcRepo.On("RunMaintenance", ctx).Return(nil).Once()

	err := suite.service.RunStorageMaintenance(ctx)

	suite.Require().NoError(err)
	suite.mockCalcRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCalculationHistoryService(t *testing.T) {
	suite.Run(t, new(CalculationHistoryServiceTestSuite))
}
