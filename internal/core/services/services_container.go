package services

import (
	"log/slog"

	"github.com/shopspring/decimal"
	portsrepo "github.com/xbordertools/profit_calc_app/internal/core/ports/repositories"
	portssvc "github.com/xbordertools/profit_calc_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, fetcher RateFetcher, defaults map[string]decimal.Decimal, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rate = NewRateService(repos.RatePairRepo, logger)
	container.Refresher = NewRateRefreshService(fetcher, repos.RatePairRepo, defaults, logger)
	container.Calculator = NewCalculationService(container.Rate, logger)
	container.History = NewCalculationHistoryService(repos.CalculationRepo, logger)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.RateSvcFacade               = (*RateService)(nil)
	_ portssvc.RateRefresherSvc            = (*RateRefreshService)(nil)
	_ portssvc.CalculatorSvc               = (*CalculationService)(nil)
	_ portssvc.CalculationHistorySvcFacade = (*CalculationHistoryService)(nil)
)
