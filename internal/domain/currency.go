package domain

// Currency is an ISO 4217 currency code supported by the ledger
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyRUB Currency = "RUB"
)

// ReferenceCurrency is the single currency all balances are held in
const ReferenceCurrency = CurrencyUSD

// MinContributionCents is the smallest accepted contribution, in minor units
// of the wishlist's display currency
const MinContributionCents int64 = 100

// SupportedCurrencies lists the display currencies a wishlist may use
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyRUB}

// Valid reports whether c is a supported currency
func (c Currency) Valid() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}
