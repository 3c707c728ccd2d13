package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/models"
	"github.com/xbordertools/profit_calc_app/internal/utils/mapping"
)

// PgxRatePairRepository implements the rate store on pgxpool. A pair is unique
// on (from_currency_code, to_currency_code); writes upsert in place and rows
// are retired by clearing is_active, never deleted.
type PgxRatePairRepository struct {
	BaseRepository
}

// NewPgxRatePairRepository creates a new PgxRatePairRepository.
func NewPgxRatePairRepository(db *pgxpool.Pool) *PgxRatePairRepository {
	return &PgxRatePairRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// UpsertPair inserts or updates the pair in a single statement so concurrent
// writers for the same pair resolve last-write-wins.
func (r *PgxRatePairRepository) UpsertPair(ctx context.Context, pair domain.RatePair) error {
	m := mapping.ToModelRatePair(pair)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (
			from_currency_code, to_currency_code, rate, source, is_active,
			last_updated_at, created_at
		) VALUES ($1, $2, $3, $4, TRUE, $5, $6)
		ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			is_active = TRUE,
			last_updated_at = EXCLUDED.last_updated_at`,
		m.FromCurrencyCode, m.ToCurrencyCode, m.Rate, m.Source,
		m.LastUpdatedAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate pair %s_%s: %w", m.FromCurrencyCode, m.ToCurrencyCode, err)
	}
	return nil
}

// FindActivePair retrieves the active rate for an exact (from, to) pair.
func (r *PgxRatePairRepository) FindActivePair(ctx context.Context, from, to domain.CurrencyCode) (*domain.RatePair, error) {
	query := `
		SELECT
			from_currency_code, to_currency_code, rate, source, is_active,
			last_updated_at, created_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_active = TRUE;
	`

	var m models.RatePair
	err := r.Pool.QueryRow(ctx, query, string(from), string(to)).Scan(
		&m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.Source,
		&m.IsActive, &m.LastUpdatedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: rate pair %s_%s", apperrors.ErrNotFound, from, to)
		}
		return nil, fmt.Errorf("failed to find rate pair %s_%s: %w", from, to, err)
	}

	pair := mapping.ToDomainRatePair(m)
	return &pair, nil
}

// DeactivatePair retires a pair logically.
func (r *PgxRatePairRepository) DeactivatePair(ctx context.Context, from, to domain.CurrencyCode) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE exchange_rates SET is_active = FALSE
		WHERE from_currency_code = $1 AND to_currency_code = $2`,
		string(from), string(to),
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate rate pair %s_%s: %w", from, to, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: rate pair %s_%s", apperrors.ErrNotFound, from, to)
	}
	return nil
}

// ListActivePairs retrieves all active rate pairs ordered by currency codes.
func (r *PgxRatePairRepository) ListActivePairs(ctx context.Context) ([]domain.RatePair, error) {
	query := `
		SELECT
			from_currency_code, to_currency_code, rate, source, is_active,
			last_updated_at, created_at
		FROM exchange_rates
		WHERE is_active = TRUE
		ORDER BY from_currency_code, to_currency_code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate pairs: %w", err)
	}
	defer rows.Close()

	var pairs []domain.RatePair
	for rows.Next() {
		var m models.RatePair
		err := rows.Scan(
			&m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.Source,
			&m.IsActive, &m.LastUpdatedAt, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate pair: %w", err)
		}
		pairs = append(pairs, mapping.ToDomainRatePair(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate pairs: %w", err)
	}
	return pairs, nil
}
