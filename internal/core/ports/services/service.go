package services

// ServiceContainer holds all the service interfaces handed to the HTTP layer
// and the background scheduler.
type ServiceContainer struct {
	Rate       RateSvcFacade
	Refresher  RateRefresherSvc
	Calculator CalculatorSvc
	History    CalculationHistorySvcFacade
}
