package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/xbordertools/profit_calc_app/internal/core/domain"
	"github.com/xbordertools/profit_calc_app/internal/models"
)

// ToModelCalculation converts a domain Calculation to a model Calculation,
// serializing the result payload.
func ToModelCalculation(d domain.Calculation) (models.Calculation, error) {
	payload, err := json.Marshal(d.Result)
	if err != nil {
		return models.Calculation{}, fmt.Errorf("failed to marshal calculation result: %w", err)
	}
	return models.Calculation{
		CalculationID: d.CalculationID,
		Name:          d.Name,
		ResultJSON:    payload,
		IsSaved:       d.IsSaved,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}, nil
}

// ToDomainCalculation converts a model Calculation back to a domain Calculation.
func ToDomainCalculation(m models.Calculation) (domain.Calculation, error) {
	var result domain.CalculationResult
	if len(m.ResultJSON) > 0 {
		if err := json.Unmarshal(m.ResultJSON, &result); err != nil {
			return domain.Calculation{}, fmt.Errorf("failed to unmarshal calculation result: %w", err)
		}
	}
	return domain.Calculation{
		CalculationID: m.CalculationID,
		Name:          m.Name,
		Result:        result,
		IsSaved:       m.IsSaved,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}, nil
}
