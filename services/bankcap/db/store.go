// Package db persists the enriched table to sqlite and serves the
// read-only verification queries.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"bankcap-backend/services/bankcap"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/bankcap/db")

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// table and column names come from configuration, so they are checked
// against a strict identifier shape before being spliced into SQL
func quoteIdent(name string) (string, error) {
	if !identRegex.MatchString(name) {
		return "", fmt.Errorf("invalid sql identifier: %q", name)
	}
	return fmt.Sprintf("%q", name), nil
}

type Store struct {
	db *sqlx.DB
}

func NewStore(database *sqlx.DB) Store {
	return Store{db: database}
}

// Replace drops any prior table of the same name and loads the rows
// fresh, all in one transaction. Prior contents never survive a load.
func (s Store) Replace(ctx context.Context, table string, currencies []bankcap.Currency, rows []bankcap.Enriched) error {
	ctx, span := tracer.Start(ctx, "Replace")
	defer span.End()

	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	qtable, err := quoteIdent(table)
	if err != nil {
		return fail(err)
	}

	cols := bankcap.Columns(currencies)
	defs := make([]string, 0, len(cols))
	quoted := make([]string, 0, len(cols))
	for i, col := range cols {
		qcol, err := quoteIdent(col)
		if err != nil {
			return fail(err)
		}
		quoted = append(quoted, qcol)
		if i == 0 {
			defs = append(defs, qcol+" TEXT NOT NULL")
		} else {
			defs = append(defs, qcol+" REAL")
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fail(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", qtable))
	if err != nil {
		return fail(fmt.Errorf("drop %s: %w", table, err))
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE %s (%s)", qtable, strings.Join(defs, ", "),
	))
	if err != nil {
		return fail(fmt.Errorf("create %s: %w", table, err))
	}

	insert := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		qtable,
		strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)
	stmt, err := tx.PreparexContext(ctx, insert)
	if err != nil {
		return fail(err)
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]any, 0, len(cols))
		args = append(args, row.Name, nullable(row.MarketCapUSD))
		for _, v := range row.Derived {
			args = append(args, nullable(v))
		}
		_, err = stmt.ExecContext(ctx, args...)
		if err != nil {
			return fail(fmt.Errorf("insert into %s: %w", table, err))
		}
	}

	err = tx.Commit()
	if err != nil {
		return fail(err)
	}
	return nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// SelectAll reads the whole table back in insertion order.
func (s Store) SelectAll(ctx context.Context, table string, currencies []bankcap.Currency) ([]bankcap.Enriched, error) {
	qtable, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s", qtable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []bankcap.Enriched
	for rows.Next() {
		var name string
		usd := sql.NullFloat64{}
		derived := make([]sql.NullFloat64, len(currencies))

		dest := make([]any, 0, len(currencies)+2)
		dest = append(dest, &name, &usd)
		for i := range derived {
			dest = append(dest, &derived[i])
		}
		err = rows.Scan(dest...)
		if err != nil {
			return nil, err
		}

		e := bankcap.Enriched{
			Name:         name,
			MarketCapUSD: fromNullable(usd),
			Derived:      make([]*float64, len(currencies)),
		}
		for i, d := range derived {
			e.Derived[i] = fromNullable(d)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func fromNullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// Average computes AVG over one numeric column. The result is null for
// an empty table or an all-null column.
func (s Store) Average(ctx context.Context, table, column string) (*float64, error) {
	qtable, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	qcol, err := quoteIdent(column)
	if err != nil {
		return nil, err
	}

	avg := sql.NullFloat64{}
	err = s.db.GetContext(ctx, &avg, fmt.Sprintf("SELECT AVG(%s) FROM %s", qcol, qtable))
	if err != nil {
		return nil, err
	}
	return fromNullable(avg), nil
}

// FirstNames returns the names of the first n rows by insertion order.
func (s Store) FirstNames(ctx context.Context, table string, n int) ([]string, error) {
	qtable, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}

	var names []string
	err = s.db.SelectContext(ctx, &names, fmt.Sprintf("SELECT Name FROM %s LIMIT ?", qtable), n)
	if err != nil {
		return nil, err
	}
	return names, nil
}
