// Package bankcap holds the market-capitalization records and the
// currency enrichment applied to them.
package bankcap

import (
	"fmt"
	"math"
	"regexp"

	"bankcap-backend/lib/scrapers/banklist"
)

// Currency is one configured conversion target. Rate is the fixed
// multiplier from USD, supplied by configuration and never fetched.
type Currency struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// Enriched is an extracted record plus one derived value per configured
// currency, aligned with the currency list. A nil MarketCapUSD
// propagates as nil through every derived value.
type Enriched struct {
	Name         string
	MarketCapUSD *float64
	Derived      []*float64
}

var ErrInvalidRate = fmt.Errorf("invalid currency rate")

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrencies rejects a bad rate table before any extraction
// work starts: codes must be 3 uppercase letters, rates positive and
// finite, codes unique.
func ValidateCurrencies(currencies []Currency) error {
	if len(currencies) == 0 {
		return fmt.Errorf("%w: no currencies configured", ErrInvalidRate)
	}
	seen := map[string]bool{}
	for _, c := range currencies {
		if !currencyCodeRegex.MatchString(c.Code) {
			return fmt.Errorf("%w: bad code %q", ErrInvalidRate, c.Code)
		}
		if seen[c.Code] {
			return fmt.Errorf("%w: duplicate code %q", ErrInvalidRate, c.Code)
		}
		seen[c.Code] = true
		if !(c.Rate > 0) || math.IsInf(c.Rate, 0) {
			return fmt.Errorf("%w: %s has rate %v", ErrInvalidRate, c.Code, c.Rate)
		}
	}
	return nil
}

// USDColumn is the name of the extracted value column in every sink.
const USDColumn = "MC_USD_Billion"

// ColumnName names the derived column of a currency, e.g. GBP ->
// MC_GBP_Billion.
func ColumnName(code string) string {
	return fmt.Sprintf("MC_%s_Billion", code)
}

// Columns is the sink column order: Name, the extracted USD value,
// then one derived column per currency in configuration order.
func Columns(currencies []Currency) []string {
	cols := []string{"Name", USDColumn}
	for _, c := range currencies {
		cols = append(cols, ColumnName(c.Code))
	}
	return cols
}

// RoundCurrency rounds to 2 decimal places, half away from zero.
func RoundCurrency(x float64) float64 {
	return math.Round(x*100) / 100
}

// Enrich derives one value per currency for every record. It is a pure
// function of its inputs: the same records and rate table always yield
// the same output. Currencies are assumed validated.
func Enrich(records []banklist.Record, currencies []Currency) []Enriched {
	out := make([]Enriched, 0, len(records))
	for _, r := range records {
		e := Enriched{
			Name:         r.Name,
			MarketCapUSD: r.MarketCapUSD,
			Derived:      make([]*float64, len(currencies)),
		}
		if r.MarketCapUSD != nil {
			for i, c := range currencies {
				v := RoundCurrency(*r.MarketCapUSD * c.Rate)
				e.Derived[i] = &v
			}
		}
		out = append(out, e)
	}
	return out
}
