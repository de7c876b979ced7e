// Package sink serializes the enriched table to flat files.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"bankcap-backend/services/bankcap"
)

// formatValue renders a numeric cell with 2 decimal places, or an empty
// cell for an unavailable value.
func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// WriteCSV writes the enriched table to path, replacing any previous
// file. Column order follows the currency configuration order.
func WriteCSV(path string, currencies []bankcap.Currency, rows []bankcap.Enriched) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(bankcap.Columns(currencies))
	if err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, 0, len(currencies)+2)
		record = append(record, row.Name, formatValue(row.MarketCapUSD))
		for _, v := range row.Derived {
			record = append(record, formatValue(v))
		}
		err = w.Write(record)
		if err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}
