package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	portsrepo "github.com/xbordertools/profit_calc_app/internal/core/ports/repositories"
)

// unsavedRetention is how long unsaved calculation snapshots are kept before
// the daily sweep removes them.
const unsavedRetention = 7 * 24 * time.Hour

const defaultListLimit = 50

// CalculationHistoryService manages persisted calculation snapshots. This is
// plumbing around the calculator: snapshots are advisory history, never inputs
// to later calculations.
type CalculationHistoryService struct {
	calcRepo portsrepo.CalculationRepositoryFacade
	logger   *slog.Logger
}

// NewCalculationHistoryService creates a new CalculationHistoryService.
func NewCalculationHistoryService(calcRepo portsrepo.CalculationRepositoryFacade, logger *slog.Logger) *CalculationHistoryService {
	return &CalculationHistoryService{
		calcRepo: calcRepo,
		logger:   logger,
	}
}

// SaveCalculation persists a calculation snapshot.
func (s *CalculationHistoryService) SaveCalculation(ctx context.Context, name string, result domain.CalculationResult, isSaved bool) (*domain.Calculation, error) {
	now := time.Now()
	calc := domain.Calculation{
		CalculationID: uuid.NewString(),
		Name:          name,
		Result:        result,
		IsSaved:       isSaved,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.calcRepo.SaveCalculation(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}
	return &calc, nil
}

// GetCalculation retrieves a single snapshot.
func (s *CalculationHistoryService) GetCalculation(ctx context.Context, calculationID string) (*domain.Calculation, error) {
	calc, err := s.calcRepo.FindCalculationByID(ctx, calculationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return calc, nil
}

// ListCalculations retrieves snapshots newest first.
func (s *CalculationHistoryService) ListCalculations(ctx context.Context, limit, offset int) ([]domain.Calculation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	calcs, err := s.calcRepo.ListCalculations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	if calcs == nil {
		calcs = []domain.Calculation{}
	}
	return calcs, nil
}

// MarkCalculationSaved flags a snapshot as user-saved so the sweep keeps it.
func (s *CalculationHistoryService) MarkCalculationSaved(ctx context.Context, calculationID string) error {
	if err := s.calcRepo.MarkSaved(ctx, calculationID); err != nil {
		return fmt.Errorf("failed to mark calculation saved: %w", err)
	}
	return nil
}

// DeleteCalculation removes a snapshot.
func (s *CalculationHistoryService) DeleteCalculation(ctx context.Context, calculationID string) error {
	if err := s.calcRepo.DeleteCalculation(ctx, calculationID); err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	return nil
}

// PurgeExpired removes unsaved snapshots older than the retention window.
// Scheduled daily.
func (s *CalculationHistoryService) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-unsavedRetention)
	removed, err := s.calcRepo.PurgeUnsaved(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired calculations: %w", err)
	}
	if removed > 0 {
		s.logger.Info("Purged expired temporary calculations", slog.Int64("removed", removed))
	}
	return removed, nil
}

// RunStorageMaintenance performs the weekly storage upkeep sweep.
func (s *CalculationHistoryService) RunStorageMaintenance(ctx context.Context) error {
	if err := s.calcRepo.RunMaintenance(ctx); err != nil {
		return fmt.Errorf("storage maintenance failed: %w", err)
	}
	s.logger.Info("Storage maintenance completed")
	return nil
}
