package repositories

import (
	"context"
	"time"

	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

// CalculationReader defines read operations for calculation snapshots
type CalculationReader interface {
	// FindCalculationByID retrieves a single calculation snapshot.
	FindCalculationByID(ctx context.Context, calculationID string) (*domain.Calculation, error)

	// ListCalculations retrieves snapshots newest first.
	ListCalculations(ctx context.Context, limit, offset int) ([]domain.Calculation, error)
}

// CalculationWriter defines write operations for calculation snapshots
type CalculationWriter interface {
	// SaveCalculation persists a new calculation snapshot.
	SaveCalculation(ctx context.Context, calc domain.Calculation) error

	// MarkSaved flags a snapshot as user-saved so the sweep skips it.
	MarkSaved(ctx context.Context, calculationID string) error

	// DeleteCalculation removes a snapshot.
	DeleteCalculation(ctx context.Context, calculationID string) error

	// PurgeUnsaved removes unsaved snapshots created before cutoff and
	// returns the number of rows removed.
	PurgeUnsaved(ctx context.Context, cutoff time.Time) (int64, error)
}

// StorageMaintainer defines the periodic storage maintenance hook.
type StorageMaintainer interface {
	// RunMaintenance performs storage upkeep (analyze/vacuum sweeps).
	RunMaintenance(ctx context.Context) error
}

// CalculationRepositoryFacade combines all calculation repository interfaces
type CalculationRepositoryFacade interface {
	CalculationReader
	CalculationWriter
	StorageMaintainer
}
