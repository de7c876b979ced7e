package bankcap

import (
	"testing"

	"bankcap-backend/lib/scrapers/banklist"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

var rates = []Currency{
	{Code: "GBP", Rate: 0.8},
	{Code: "EUR", Rate: 0.93},
	{Code: "INR", Rate: 83.33},
}

// the ten banks of a real page revision, used across the repo's tests
var sampleRecords = []banklist.Record{
	{Name: "JPMorgan Chase", MarketCapUSD: ptr(599.931)},
	{Name: "Bank of America", MarketCapUSD: ptr(298.403)},
	{Name: "Industrial and Commercial Bank of China", MarketCapUSD: ptr(256.439)},
	{Name: "Agricultural Bank of China", MarketCapUSD: ptr(230.254)},
	{Name: "Wells Fargo", MarketCapUSD: ptr(225.530)},
	{Name: "China Construction Bank", MarketCapUSD: ptr(193.110)},
	{Name: "HSBC Holdings", MarketCapUSD: ptr(192.960)},
	{Name: "Bank of China", MarketCapUSD: ptr(183.521)},
	{Name: "Morgan Stanley", MarketCapUSD: ptr(178.523)},
	{Name: "Goldman Sachs", MarketCapUSD: ptr(156.356)},
}

func TestEnrichWorkedExample(t *testing.T) {
	enriched := Enrich(sampleRecords, rates)
	require.Len(t, enriched, 10)

	first := enriched[0]
	require.Equal(t, "JPMorgan Chase", first.Name)
	require.Equal(t, 599.931, *first.MarketCapUSD)
	require.Len(t, first.Derived, 3)
	require.Equal(t, 479.94, *first.Derived[0])
	require.Equal(t, 557.94, *first.Derived[1])
	require.Equal(t, 49992.25, *first.Derived[2])

	last := enriched[9]
	require.Equal(t, "Goldman Sachs", last.Name)
	require.Equal(t, 125.08, *last.Derived[0])
}

func TestEnrichNullPropagation(t *testing.T) {
	records := []banklist.Record{
		{Name: "Some Bank", MarketCapUSD: nil},
		{Name: "Other Bank", MarketCapUSD: ptr(100)},
	}

	enriched := Enrich(records, rates)
	require.Nil(t, enriched[0].MarketCapUSD)
	for _, v := range enriched[0].Derived {
		require.Nil(t, v)
	}
	for _, v := range enriched[1].Derived {
		require.NotNil(t, v)
	}
}

func TestEnrichDeterministic(t *testing.T) {
	a := Enrich(sampleRecords, rates)
	b := Enrich(sampleRecords, rates)
	require.Equal(t, a, b)
}

func TestRoundCurrency(t *testing.T) {
	testCases := []struct {
		in       float64
		expected float64
	}{
		{479.9448, 479.94},
		{557.93583, 557.94},
		// exact half cent rounds away from zero
		{2.375, 2.38},
		{-2.375, -2.38},
		{125.0848, 125.08},
		{100, 100},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, RoundCurrency(test.in), "input: %v", test.in)
	}
}

func TestValidateCurrencies(t *testing.T) {
	require.NoError(t, ValidateCurrencies(rates))

	testCases := []struct {
		name       string
		currencies []Currency
	}{
		{"empty", nil},
		{"zero rate", []Currency{{Code: "GBP", Rate: 0}}},
		{"negative rate", []Currency{{Code: "GBP", Rate: -0.8}}},
		{"lowercase code", []Currency{{Code: "gbp", Rate: 0.8}}},
		{"long code", []Currency{{Code: "GBPX", Rate: 0.8}}},
		{"duplicate code", []Currency{{Code: "GBP", Rate: 0.8}, {Code: "GBP", Rate: 0.9}}},
	}
	for _, test := range testCases {
		err := ValidateCurrencies(test.currencies)
		require.ErrorIs(t, err, ErrInvalidRate, test.name)
	}
}

func TestColumns(t *testing.T) {
	require.Equal(t, []string{
		"Name", "MC_USD_Billion", "MC_GBP_Billion", "MC_EUR_Billion", "MC_INR_Billion",
	}, Columns(rates))
}
