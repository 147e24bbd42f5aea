package advisory

import (
	"sort"

	"github.com/aristath/exportadvisor/internal/domain"
)

type currencyPair struct {
	from domain.Currency
	to   domain.Currency
}

// exchangeRates is the fixed conversion table. There is no GBP row.
var exchangeRates = map[currencyPair]float64{
	{domain.CurrencyINR, domain.CurrencyUSD}: 0.012,
	{domain.CurrencyINR, domain.CurrencyEUR}: 0.011,
	{domain.CurrencyINR, domain.CurrencyGBP}: 0.0095,
	{domain.CurrencyUSD, domain.CurrencyINR}: 83.5,
	{domain.CurrencyUSD, domain.CurrencyEUR}: 0.92,
	{domain.CurrencyUSD, domain.CurrencyGBP}: 0.79,
	{domain.CurrencyEUR, domain.CurrencyINR}: 90.8,
	{domain.CurrencyEUR, domain.CurrencyUSD}: 1.09,
	{domain.CurrencyEUR, domain.CurrencyGBP}: 0.86,
}

// ExchangeRate is one row of the fixed rate table
type ExchangeRate struct {
	From domain.Currency `json:"from"`
	To   domain.Currency `json:"to"`
	Rate float64         `json:"rate"`
}

// Rate returns the table rate for a pair and whether the table has it.
// Same-currency pairs report 1 and true.
func Rate(source, target domain.Currency) (float64, bool) {
	if source == target {
		return 1, true
	}
	rate, ok := exchangeRates[currencyPair{source, target}]
	if !ok {
		return 1, false
	}
	return rate, true
}

// ExchangeRates lists the fixed rate table sorted by source then target currency
func ExchangeRates() []ExchangeRate {
	rates := make([]ExchangeRate, 0, len(exchangeRates))
	for pair, rate := range exchangeRates {
		rates = append(rates, ExchangeRate{From: pair.from, To: pair.to, Rate: rate})
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].From != rates[j].From {
			return rates[i].From < rates[j].From
		}
		return rates[i].To < rates[j].To
	})
	return rates
}

// ConvertCurrency converts amount using the fixed rate table.
//
// A pair missing from the table converts at rate 1 without error; check the
// returned Rate (or use Rate) when the distinction matters.
func (e *Engine) ConvertCurrency(amount float64, source, target domain.Currency) CurrencyConversion {
	rate, ok := Rate(source, target)
	if !ok {
		e.log.Debug().
			Str("from", string(source)).
			Str("to", string(target)).
			Msg("Unsupported currency pair, converting at rate 1")
	}

	converted := amount
	if source != target {
		converted = roundedProduct(2, amount, rate)
	}

	return CurrencyConversion{
		Amount:          amount,
		SourceCurrency:  source,
		TargetCurrency:  target,
		Rate:            rate,
		ConvertedAmount: converted,
		ComputedAt:      e.clock(),
	}
}
