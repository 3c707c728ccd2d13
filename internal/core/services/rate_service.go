package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/apperrors"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	portsrepo "github.com/xbordertools/profit_calc_app/internal/core/ports/repositories"
	"github.com/xbordertools/profit_calc_app/internal/dto"
)

var one = decimal.NewFromInt(1)

// RateService resolves and maintains exchange rates on top of the rate store.
// Reads never block on refresh writes; they always return the latest committed
// value, stale or not.
type RateService struct {
	rateRepo portsrepo.RatePairRepositoryFacade
	logger   *slog.Logger
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RatePairRepositoryFacade, logger *slog.Logger) *RateService {
	return &RateService{
		rateRepo: rateRepo,
		logger:   logger,
	}
}

// GetRate resolves the rate between two supported currencies. Same-currency
// requests short-circuit to 1 without touching storage; when only the reverse
// pair is stored its reciprocal is returned.
func (s *RateService) GetRate(ctx context.Context, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	if err := validateCurrencyPair(from, to); err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return one, nil
	}

	direct, err := s.rateRepo.FindActivePair(ctx, from, to)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up rate %s->%s: %w", from, to, err)
	}

	reverse, err := s.rateRepo.FindActivePair(ctx, to, from)
	if err == nil {
		// Stored rates are strictly positive, so the reciprocal is defined.
		return one.Div(reverse.Rate), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up reverse rate %s->%s: %w", to, from, err)
	}

	return decimal.Zero, fmt.Errorf("%w: %s -> %s", apperrors.ErrRateNotFound, from, to)
}

// Convert converts amount between currencies, rounding to two decimal places
// at this boundary only.
func (s *RateService) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), nil
}

// SetRate upserts the (from, to) pair. The reciprocal pair is never written;
// reverse lookups resolve via inversion at read time.
func (s *RateService) SetRate(ctx context.Context, req dto.SetRateRequest) (*domain.RatePair, error) {
	from := domain.CurrencyCode(req.FromCurrencyCode)
	to := domain.CurrencyCode(req.ToCurrencyCode)
	if err := validateCurrencyPair(from, to); err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	source := domain.RateSource(req.Source)
	if source == "" {
		source = domain.RateSourceManual
	}

	now := time.Now()
	pair := domain.RatePair{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		Source:           source,
		IsActive:         true,
		LastUpdatedAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.rateRepo.UpsertPair(ctx, pair); err != nil {
		return nil, fmt.Errorf("failed to set rate %s->%s: %w", from, to, err)
	}

	s.logger.Info("Exchange rate set",
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("rate", req.Rate.String()),
		slog.String("source", string(source)),
	)
	return &pair, nil
}

// DeactivateRate retires a pair logically, leaving the row in place.
func (s *RateService) DeactivateRate(ctx context.Context, from, to domain.CurrencyCode) error {
	if err := validateCurrencyPair(from, to); err != nil {
		return err
	}
	if err := s.rateRepo.DeactivatePair(ctx, from, to); err != nil {
		return fmt.Errorf("failed to deactivate rate %s->%s: %w", from, to, err)
	}
	return nil
}

// GetAllRates returns every active pair keyed "FROM_TO".
func (s *RateService) GetAllRates(ctx context.Context) (map[string]dto.RateInfo, error) {
	pairs, err := s.rateRepo.ListActivePairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}

	rateMap := make(map[string]dto.RateInfo, len(pairs))
	for _, pair := range pairs {
		rateMap[pair.PairKey()] = dto.RateInfo{
			Rate:          pair.Rate,
			Source:        string(pair.Source),
			LastUpdatedAt: pair.LastUpdatedAt,
		}
	}
	return rateMap, nil
}

func validateCurrencyPair(from, to domain.CurrencyCode) error {
	if !domain.IsSupportedCurrency(from) {
		return fmt.Errorf("%w: unsupported currency code %q", apperrors.ErrValidation, from)
	}
	if !domain.IsSupportedCurrency(to) {
		return fmt.Errorf("%w: unsupported currency code %q", apperrors.ErrValidation, to)
	}
	return nil
}
