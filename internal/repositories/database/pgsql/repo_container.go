package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/xbordertools/profit_calc_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories for the service
// container.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RatePairRepo:    NewPgxRatePairRepository(db),
		CalculationRepo: NewPgxCalculationRepository(db),
	}
}

// Compile-time interface checks
var (
	_ portsrepo.RatePairRepositoryFacade    = (*PgxRatePairRepository)(nil)
	_ portsrepo.CalculationRepositoryFacade = (*PgxCalculationRepository)(nil)
)
