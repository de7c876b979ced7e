// Package report runs the post-load verification queries and renders
// their results for the operator. It reads the already-validated output
// table only; nothing here feeds back into the pipeline.
package report

import (
	"context"
	"fmt"
	"io"

	"bankcap-backend/services/bankcap"
	"bankcap-backend/services/bankcap/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
)

const firstNamesLimit = 5

type Reporter struct {
	Store db.Store
	Table string
	Out   io.Writer
	// Audit, when set, receives one line per executed query for the
	// run's audit log.
	Audit func(message string)
}

func (r Reporter) audit(query string) {
	if r.Audit != nil {
		r.Audit(fmt.Sprintf("Query executed: %s", query))
	}
}

func (r Reporter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(r.Out)
	return t
}

// Run executes the three verification queries in order: the full table,
// the average of the first configured currency column, and the names of
// the first rows by insertion order. A summary of the USD column
// follows.
func (r Reporter) Run(ctx context.Context, currencies []bankcap.Currency) error {
	if len(currencies) == 0 {
		return fmt.Errorf("no currencies configured")
	}

	rows, err := r.Store.SelectAll(ctx, r.Table, currencies)
	if err != nil {
		return fmt.Errorf("select all: %w", err)
	}
	r.audit(fmt.Sprintf("SELECT * FROM %s", r.Table))

	cols := bankcap.Columns(currencies)
	t := r.newTable()
	header := table.Row{}
	for _, c := range cols {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for _, row := range rows {
		tr := table.Row{row.Name, cell(row.MarketCapUSD)}
		for _, v := range row.Derived {
			tr = append(tr, cell(v))
		}
		t.AppendRow(tr)
	}
	t.Render()

	avgColumn := bankcap.ColumnName(currencies[0].Code)
	avg, err := r.Store.Average(ctx, r.Table, avgColumn)
	if err != nil {
		return fmt.Errorf("average %s: %w", avgColumn, err)
	}
	r.audit(fmt.Sprintf("SELECT AVG(%s) FROM %s", avgColumn, r.Table))

	t = r.newTable()
	t.AppendHeader(table.Row{fmt.Sprintf("AVG(%s)", avgColumn)})
	t.AppendRow(table.Row{cell(avg)})
	t.Render()

	names, err := r.Store.FirstNames(ctx, r.Table, firstNamesLimit)
	if err != nil {
		return fmt.Errorf("first names: %w", err)
	}
	r.audit(fmt.Sprintf("SELECT Name FROM %s LIMIT %d", r.Table, firstNamesLimit))

	t = r.newTable()
	t.AppendHeader(table.Row{"Name"})
	for _, name := range names {
		t.AppendRow(table.Row{name})
	}
	t.Render()

	return r.summarize(rows)
}

func cell(v *float64) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%.2f", *v)
}

// summarize prints count/mean/min/max over the available USD values.
func (r Reporter) summarize(rows []bankcap.Enriched) error {
	var usd []float64
	for _, row := range rows {
		if row.MarketCapUSD != nil {
			usd = append(usd, *row.MarketCapUSD)
		}
	}
	if len(usd) == 0 {
		fmt.Fprintf(r.Out, "%s: no values available\n", bankcap.USDColumn)
		return nil
	}

	mean, err := stats.Mean(usd)
	if err != nil {
		return err
	}
	min, err := stats.Min(usd)
	if err != nil {
		return err
	}
	max, err := stats.Max(usd)
	if err != nil {
		return err
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Column", "Rows", "Mean", "Min", "Max"})
	t.AppendRow(table.Row{
		bankcap.USDColumn,
		len(usd),
		fmt.Sprintf("%.3f", mean),
		fmt.Sprintf("%.3f", min),
		fmt.Sprintf("%.3f", max),
	})
	t.Render()
	return nil
}
