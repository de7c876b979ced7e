package report

import (
	"bytes"
	"context"
	"testing"

	"bankcap-backend/lib/sqliteutil"
	"bankcap-backend/services/bankcap"
	"bankcap-backend/services/bankcap/db"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

var rates = []bankcap.Currency{
	{Code: "GBP", Rate: 0.8},
	{Code: "EUR", Rate: 0.93},
}

func TestReporterRun(t *testing.T) {
	database, err := sqliteutil.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	store := db.NewStore(database)
	rows := []bankcap.Enriched{
		{Name: "JPMorgan Chase", MarketCapUSD: ptr(599.931), Derived: []*float64{ptr(479.94), ptr(557.94)}},
		{Name: "Goldman Sachs", MarketCapUSD: nil, Derived: []*float64{nil, nil}},
	}
	require.NoError(t, store.Replace(context.Background(), "Largest_banks", rates, rows))

	out := bytes.Buffer{}
	var audited []string
	reporter := Reporter{
		Store: store,
		Table: "Largest_banks",
		Out:   &out,
		Audit: func(message string) { audited = append(audited, message) },
	}
	require.NoError(t, reporter.Run(context.Background(), rates))

	rendered := out.String()
	require.Contains(t, rendered, "JPMorgan Chase")
	require.Contains(t, rendered, "479.94")
	// nulls surface explicitly instead of as zeros
	require.Contains(t, rendered, "NULL")
	require.Contains(t, rendered, "AVG(MC_GBP_Billion)")

	require.Equal(t, []string{
		"Query executed: SELECT * FROM Largest_banks",
		"Query executed: SELECT AVG(MC_GBP_Billion) FROM Largest_banks",
		"Query executed: SELECT Name FROM Largest_banks LIMIT 5",
	}, audited)
}
