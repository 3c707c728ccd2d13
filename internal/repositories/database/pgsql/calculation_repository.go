package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/models"
	"github.com/xbordertools/profit_calc_app/internal/utils/mapping"
)

// PgxCalculationRepository persists calculation snapshots with the full result
// stored as a JSONB payload.
type PgxCalculationRepository struct {
	BaseRepository
}

// NewPgxCalculationRepository creates a new PgxCalculationRepository.
func NewPgxCalculationRepository(db *pgxpool.Pool) *PgxCalculationRepository {
	return &PgxCalculationRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveCalculation inserts a new calculation snapshot.
func (r *PgxCalculationRepository) SaveCalculation(ctx context.Context, calc domain.Calculation) error {
	m, err := mapping.ToModelCalculation(calc)
	if err != nil {
		return err
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO calculations (
			calculation_id, name, result, is_saved, created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		m.CalculationID, m.Name, m.ResultJSON, m.IsSaved, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

// FindCalculationByID retrieves a single calculation snapshot.
func (r *PgxCalculationRepository) FindCalculationByID(ctx context.Context, calculationID string) (*domain.Calculation, error) {
	query := `
		SELECT calculation_id, name, result, is_saved, created_at, last_updated_at
		FROM calculations
		WHERE calculation_id = $1;
	`

	var m models.Calculation
	err := r.Pool.QueryRow(ctx, query, calculationID).Scan(
		&m.CalculationID, &m.Name, &m.ResultJSON, &m.IsSaved, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: calculation %s", apperrors.ErrNotFound, calculationID)
		}
		return nil, fmt.Errorf("failed to find calculation %s: %w", calculationID, err)
	}

	calc, err := mapping.ToDomainCalculation(m)
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

// ListCalculations retrieves snapshots newest first.
func (r *PgxCalculationRepository) ListCalculations(ctx context.Context, limit, offset int) ([]domain.Calculation, error) {
	query := `
		SELECT calculation_id, name, result, is_saved, created_at, last_updated_at
		FROM calculations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var calcs []domain.Calculation
	for rows.Next() {
		var m models.Calculation
		err := rows.Scan(&m.CalculationID, &m.Name, &m.ResultJSON, &m.IsSaved, &m.CreatedAt, &m.LastUpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		calc, err := mapping.ToDomainCalculation(m)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculations: %w", err)
	}
	return calcs, nil
}

// MarkSaved flags a snapshot as user-saved.
func (r *PgxCalculationRepository) MarkSaved(ctx context.Context, calculationID string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE calculations SET is_saved = TRUE, last_updated_at = $2
		WHERE calculation_id = $1`,
		calculationID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to mark calculation saved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: calculation %s", apperrors.ErrNotFound, calculationID)
	}
	return nil
}

// DeleteCalculation removes a snapshot.
func (r *PgxCalculationRepository) DeleteCalculation(ctx context.Context, calculationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM calculations WHERE calculation_id = $1`, calculationID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation %s: %w", calculationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: calculation %s", apperrors.ErrNotFound, calculationID)
	}
	return nil
}

// PurgeUnsaved removes unsaved snapshots created before cutoff.
func (r *PgxCalculationRepository) PurgeUnsaved(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM calculations
		WHERE is_saved = FALSE AND created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge unsaved calculations: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RunMaintenance refreshes planner statistics for the hot tables. Runs outside
// a transaction, as VACUUM requires.
func (r *PgxCalculationRepository) RunMaintenance(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, `VACUUM (ANALYZE) calculations, exchange_rates`); err != nil {
		return fmt.Errorf("failed to run storage maintenance: %w", err)
	}
	return nil
}
