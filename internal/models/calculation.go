package models

// Calculation mirrors a row of the calculations table. The full calculation
// result is stored as a JSON payload.
type Calculation struct {
	CalculationID string `json:"calculationID"` // Primary Key (UUID)
	Name          string `json:"name"`
	ResultJSON    []byte `json:"-"`
	IsSaved       bool   `json:"isSaved"`
	AuditFields
}
