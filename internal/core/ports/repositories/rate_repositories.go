package repositories

import (
	"context"

	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

// RatePairReader defines read operations for exchange rate pairs
type RatePairReader interface {
	// FindActivePair retrieves the active rate for an exact (from, to) pair.
	// Inverse lookup is the resolver's concern, not the store's.
	FindActivePair(ctx context.Context, from, to domain.CurrencyCode) (*domain.RatePair, error)

	// ListActivePairs retrieves all active rate pairs.
	ListActivePairs(ctx context.Context) ([]domain.RatePair, error)
}

// RatePairWriter defines write operations for exchange rate pairs
type RatePairWriter interface {
	// UpsertPair inserts the pair or updates it in place when it already
	// exists. Writes for different pairs are independent.
	UpsertPair(ctx context.Context, pair domain.RatePair) error

	// DeactivatePair retires a pair logically; rows are never deleted.
	DeactivatePair(ctx context.Context, from, to domain.CurrencyCode) error
}

// RatePairRepositoryFacade combines all rate-pair repository interfaces
// This is a facade for clients that need access to all operations
type RatePairRepositoryFacade interface {
	RatePairReader
	RatePairWriter
}
