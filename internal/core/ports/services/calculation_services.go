package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/dto"
)

// CalculatorSvc runs the profit calculation pipeline. Calculations are pure
// and idempotent; identical inputs always produce identical outputs.
type CalculatorSvc interface {
	// CalculateProfit validates the inputs, resolves rates to the reference
	// currency and produces the full calculation result.
	CalculateProfit(ctx context.Context, purchase domain.PurchaseData, selling domain.SellingData, targetProfitRate decimal.Decimal) (*domain.CalculationResult, error)

	// BatchCalculateProfit runs CalculateProfit per item, capturing per-item
	// success or error without aborting the batch.
	BatchCalculateProfit(ctx context.Context, items []dto.CalculateProfitRequest) []dto.BatchCalculationItemResult
}

// CalculationHistoryReaderSvc defines read operations for stored calculations
type CalculationHistoryReaderSvc interface {
	GetCalculation(ctx context.Context, calculationID string) (*domain.Calculation, error)
	ListCalculations(ctx context.Context, limit, offset int) ([]domain.Calculation, error)
}

// CalculationHistoryWriterSvc defines write operations for stored calculations
type CalculationHistoryWriterSvc interface {
	SaveCalculation(ctx context.Context, name string, result domain.CalculationResult, isSaved bool) (*domain.Calculation, error)
	MarkCalculationSaved(ctx context.Context, calculationID string) error
	DeleteCalculation(ctx context.Context, calculationID string) error

	// PurgeExpired removes unsaved snapshots older than the retention window.
	PurgeExpired(ctx context.Context) (int64, error)

	// RunStorageMaintenance triggers the weekly storage upkeep sweep.
	RunStorageMaintenance(ctx context.Context) error
}

// CalculationHistorySvcFacade combines all calculation-history service interfaces
type CalculationHistorySvcFacade interface {
	CalculationHistoryReaderSvc
	CalculationHistoryWriterSvc
}
