package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/dto"
)

// RateReaderSvc defines read operations for exchange rates
type RateReaderSvc interface {
	// GetRate resolves the rate between two supported currencies, using the
	// inverse pair's reciprocal when no direct pair is stored.
	GetRate(ctx context.Context, from, to domain.CurrencyCode) (decimal.Decimal, error)

	// Convert converts amount from one currency to another, rounding the
	// result to two decimal places.
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error)

	// GetAllRates retrieves all active rates keyed "FROM_TO".
	GetAllRates(ctx context.Context) (map[string]dto.RateInfo, error)
}

// RateWriterSvc defines write operations for exchange rates
type RateWriterSvc interface {
	// SetRate upserts the (from, to) pair. The reciprocal pair is never
	// written; reverse lookups resolve by inversion at read time.
	SetRate(ctx context.Context, req dto.SetRateRequest) (*domain.RatePair, error)

	// DeactivateRate retires a pair logically.
	DeactivateRate(ctx context.Context, from, to domain.CurrencyCode) error
}

// RateSvcFacade combines all rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}

// RateRefresherSvc drives the provider-backed refresh of the rate table.
type RateRefresherSvc interface {
	// RefreshRates fetches the freshest rate set and upserts every pair.
	// Shared by the hourly tick and the manual trigger; safe to invoke
	// concurrently.
	RefreshRates(ctx context.Context) error

	// SeedDefaults writes the static default table, used at first start
	// when the store is empty.
	SeedDefaults(ctx context.Context) error
}
