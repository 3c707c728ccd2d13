package domain

// CurrencyCode is a three-letter code from the fixed supported set.
type CurrencyCode string

const (
	CNY CurrencyCode = "CNY"
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
)

// ReferenceCurrency is the currency in which internal cost and profit aggregates
// are computed before being projected back into the transaction currency.
const ReferenceCurrency = CNY

// Currency describes a supported currency for presentation purposes.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"` // e.g. "USD"
	Symbol       string       `json:"symbol"`       // e.g. "$"
	Name         string       `json:"name"`         // e.g. "US Dollar"
}

// SupportedCurrencies is the fixed catalog of currencies the system accepts.
// Rate operations are rejected for codes outside this set.
var SupportedCurrencies = []Currency{
	{CurrencyCode: CNY, Symbol: "¥", Name: "Chinese Yuan"},
	{CurrencyCode: USD, Symbol: "$", Name: "US Dollar"},
	{CurrencyCode: EUR, Symbol: "€", Name: "Euro"},
	{CurrencyCode: GBP, Symbol: "£", Name: "British Pound"},
	{CurrencyCode: JPY, Symbol: "¥", Name: "Japanese Yen"},
}

// IsSupportedCurrency reports whether code belongs to the supported set.
func IsSupportedCurrency(code CurrencyCode) bool {
	for _, c := range SupportedCurrencies {
		if c.CurrencyCode == code {
			return true
		}
	}
	return false
}

func (c CurrencyCode) String() string {
	return string(c)
}
