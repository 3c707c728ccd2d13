package mapping

import (
	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/models"
)

// ToModelRatePair converts a domain RatePair to a model RatePair
func ToModelRatePair(d domain.RatePair) models.RatePair {
	return models.RatePair{
		FromCurrencyCode: string(d.FromCurrencyCode),
		ToCurrencyCode:   string(d.ToCurrencyCode),
		Rate:             d.Rate,
		Source:           string(d.Source),
		IsActive:         d.IsActive,
		LastUpdatedAt:    d.LastUpdatedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainRatePair converts a model RatePair to a domain RatePair
func ToDomainRatePair(m models.RatePair) domain.RatePair {
	return domain.RatePair{
		FromCurrencyCode: domain.CurrencyCode(m.FromCurrencyCode),
		ToCurrencyCode:   domain.CurrencyCode(m.ToCurrencyCode),
		Rate:             m.Rate,
		Source:           domain.RateSource(m.Source),
		IsActive:         m.IsActive,
		LastUpdatedAt:    m.LastUpdatedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
