package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	portsrepo "github.com/xbordertools/profit_calc_app/internal/core/ports/repositories"
)

// RateFetcher produces a canonical "FROM_TO" pair map from whatever external
// source can currently serve one, together with the source label to record.
type RateFetcher interface {
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, domain.RateSource, error)
}

// RateRefreshService orchestrates fetched rate sets into rate-store updates.
// The hourly tick and the manual trigger converge on RefreshRates; pair writes
// are isolated, so one failing upsert never aborts the rest.
type RateRefreshService struct {
	fetcher  RateFetcher
	rateRepo portsrepo.RatePairRepositoryFacade
	defaults map[string]decimal.Decimal
	logger   *slog.Logger
}

// NewRateRefreshService creates a new RateRefreshService. defaults is the
// static table written by SeedDefaults on first start.
func NewRateRefreshService(fetcher RateFetcher, rateRepo portsrepo.RatePairRepositoryFacade, defaults map[string]decimal.Decimal, logger *slog.Logger) *RateRefreshService {
	return &RateRefreshService{
		fetcher:  fetcher,
		rateRepo: rateRepo,
		defaults: defaults,
		logger:   logger,
	}
}

// RefreshRates fetches the freshest available rate set and upserts every pair.
// Safe to call concurrently with scheduled ticks; concurrent writes to the
// same pair resolve last-write-wins.
func (s *RateRefreshService) RefreshRates(ctx context.Context) error {
	s.logger.Info("Starting exchange rate refresh")

	pairs, source, err := s.fetcher.FetchRates(ctx)
	if err != nil || len(pairs) == 0 {
		// Unreachable while the fetcher carries a default table, but the next
		// scheduled tick retries from scratch if it ever happens.
		s.logger.Error("Rate refresh produced no data", slog.Any("error", err))
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrRateRefresh, err)
		}
		return fmt.Errorf("%w: no rate data available", apperrors.ErrRateRefresh)
	}

	updated := s.writePairs(ctx, pairs, source)
	s.logger.Info("Exchange rate refresh finished",
		slog.String("source", string(source)),
		slog.Int("updated", updated),
		slog.Int("total", len(pairs)),
	)
	return nil
}

// SeedDefaults writes the static default table when the store holds no active
// pairs, so rate resolution works before the first successful refresh.
func (s *RateRefreshService) SeedDefaults(ctx context.Context) error {
	existing, err := s.rateRepo.ListActivePairs(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect rate store before seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	updated := s.writePairs(ctx, s.defaults, domain.RateSourceDefault)
	s.logger.Info("Seeded default exchange rates", slog.Int("count", updated))
	return nil
}

// writePairs upserts each pair individually, logging and skipping failures.
func (s *RateRefreshService) writePairs(ctx context.Context, pairs map[string]decimal.Decimal, source domain.RateSource) int {
	now := time.Now()
	updated := 0
	for key, rate := range pairs {
		from, to, ok := domain.SplitPairKey(key)
		if !ok || !domain.IsSupportedCurrency(from) || !domain.IsSupportedCurrency(to) {
			s.logger.Warn("Skipping unrecognized rate pair", slog.String("pair", key))
			continue
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			s.logger.Warn("Skipping non-positive rate", slog.String("pair", key), slog.String("rate", rate.String()))
			continue
		}

		pair := domain.RatePair{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             rate,
			Source:           source,
			IsActive:         true,
			LastUpdatedAt:    now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := s.rateRepo.UpsertPair(ctx, pair); err != nil {
			s.logger.Error("Failed to upsert rate pair",
				slog.String("pair", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		updated++
	}
	return updated
}
