package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
)

// DefaultFetchTimeout bounds each provider call so one slow provider cannot
// stall the refresh cycle.
const DefaultFetchTimeout = 10 * time.Second

// FallbackFetcher tries providers strictly in priority order, short-circuiting
// on the first non-empty canonical pair map. There is no retry within a
// provider and no parallel fan-out; sequencing bounds total latency and avoids
// wasted calls to lower-priority providers. Exhaustion falls back to the
// static default table, so FetchRates always yields data.
type FallbackFetcher struct {
	providers []Provider
	timeout   time.Duration
	logger    *slog.Logger
}

// NewFallbackFetcher creates a new FallbackFetcher over the ordered provider
// list. A non-positive timeout selects DefaultFetchTimeout.
func NewFallbackFetcher(providers []Provider, timeout time.Duration, logger *slog.Logger) *FallbackFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &FallbackFetcher{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}
}

// FetchRates returns the first provider's non-empty pair map, or the default
// table with source "default" when every provider misses. The returned error
// is always nil; per-provider failures are log-only.
func (f *FallbackFetcher) FetchRates(ctx context.Context) (map[string]decimal.Decimal, domain.RateSource, error) {
	for _, p := range f.providers {
		if !p.Available() {
			f.logger.Debug("Skipping provider without credentials", slog.String("provider", p.Name()))
			continue
		}

		fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
		pairs, err := p.Fetch(fetchCtx)
		cancel()

		if err != nil {
			f.logger.Warn("Provider fetch failed",
				slog.String("provider", p.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if len(pairs) == 0 {
			f.logger.Warn("Provider returned no usable rates", slog.String("provider", p.Name()))
			continue
		}

		f.logger.Info("Fetched exchange rates",
			slog.String("provider", p.Name()),
			slog.Int("pairs", len(pairs)),
		)
		return pairs, domain.RateSourceAPI, nil
	}

	f.logger.Warn("All rate providers failed; falling back to default table")
	return DefaultRates(), domain.RateSourceDefault, nil
}
