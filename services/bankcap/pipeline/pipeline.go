// Package pipeline wires the whole run together: fetch, locate,
// extract, enrich, load, verify. It is strictly sequential and stops at
// the first error; there are no retries and no partial recovery.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"bankcap-backend/lib/joblog"
	"bankcap-backend/lib/scrapers/banklist"
	"bankcap-backend/lib/sqliteutil"
	"bankcap-backend/services/bankcap"
	"bankcap-backend/services/bankcap/db"
	"bankcap-backend/services/bankcap/report"
	"bankcap-backend/services/bankcap/sink"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/bankcap/pipeline")

// Config carries every knob of one run. The CLI layers Default() under
// a loaded config with a zero-skipping merge, so an explicit zero (e.g.
// row_limit: 0) is indistinguishable from an omitted field and falls
// back to the default.
type Config struct {
	SourceURL        string             `json:"source_url"`
	SectionAnchorID  string             `json:"section_anchor_id"`
	RowLimit         int                `json:"row_limit"`
	ValueColumnIndex int                `json:"value_column_index"`
	Currencies       []bankcap.Currency `json:"currencies"`
	OutputCSVPath    string             `json:"output_csv_path"`
	// optional, no workbook is written when empty
	OutputXLSXPath  string `json:"output_xlsx_path"`
	OutputDBPath    string `json:"output_db_path"`
	OutputTableName string `json:"output_table_name"`
	LogPath         string `json:"log_path"`
}

// Default mirrors the values the job has always run with.
func Default() Config {
	return Config{
		SourceURL:        "https://en.wikipedia.org/wiki/List_of_largest_banks",
		SectionAnchorID:  "By_market_capitalization",
		RowLimit:         10,
		ValueColumnIndex: 2,
		Currencies: []bankcap.Currency{
			{Code: "GBP", Rate: 0.8},
			{Code: "EUR", Rate: 0.93},
			{Code: "INR", Rate: 83.33},
		},
		OutputCSVPath:   "./Largest_banks_data.csv",
		OutputDBPath:    "Banks.db",
		OutputTableName: "Largest_banks",
		LogPath:         "code_log.txt",
	}
}

// Run executes one complete pipeline invocation, writing query output
// to out. Output files already fully written when a later stage fails
// stay on disk; there is no rollback coupling between destinations.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	// a broken rate table is a configuration error, caught before any
	// network or extraction work happens
	err := bankcap.ValidateCurrencies(cfg.Currencies)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid currency configuration")
		return err
	}

	audit, err := joblog.Open(cfg.LogPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open audit log")
		return fmt.Errorf("open audit log: %w", err)
	}
	defer audit.Close()

	fail := func(stage string, err error) error {
		slog.ErrorContext(ctx, "pipeline stage failed", "stage", stage, "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, stage)
		logErr := audit.Log(fmt.Sprintf("ETL Job Failed during %s: %s", stage, err))
		if logErr != nil {
			slog.ErrorContext(ctx, "failed to write audit log", "err", logErr)
		}
		return fmt.Errorf("%s: %w", stage, err)
	}

	err = audit.Log("ETL Job Started")
	if err != nil {
		return fail("audit", err)
	}

	client := banklist.NewClient()
	err = audit.Log("Preliminaries complete. Initiating ETL process")
	if err != nil {
		return fail("audit", err)
	}

	doc, err := banklist.FetchDocument(ctx, client, cfg.SourceURL)
	if err != nil {
		return fail("fetch", err)
	}

	table, err := banklist.LocateTable(doc, cfg.SectionAnchorID)
	if err != nil {
		return fail("locate", err)
	}

	records, err := banklist.ExtractRecords(ctx, table, cfg.RowLimit, cfg.ValueColumnIndex)
	if err != nil {
		return fail("extract", err)
	}
	slog.InfoContext(ctx, "extraction complete", "records", len(records))
	err = audit.Log("Data extraction from HTML Webpage complete. Initiating Transformation process")
	if err != nil {
		return fail("audit", err)
	}

	enriched := bankcap.Enrich(records, cfg.Currencies)
	err = audit.Log("Data transformation complete. Initiating loading process")
	if err != nil {
		return fail("audit", err)
	}

	err = sink.WriteCSV(cfg.OutputCSVPath, cfg.Currencies, enriched)
	if err != nil {
		return fail("csv", err)
	}
	err = audit.Log("Data saved to CSV file")
	if err != nil {
		return fail("audit", err)
	}

	if cfg.OutputXLSXPath != "" {
		err = sink.WriteXLSX(cfg.OutputXLSXPath, cfg.Currencies, enriched)
		if err != nil {
			return fail("xlsx", err)
		}
		err = audit.Log("Data saved to XLSX file")
		if err != nil {
			return fail("audit", err)
		}
	}

	database, err := sqliteutil.OpenDB(cfg.OutputDBPath)
	if err != nil {
		return fail("db open", err)
	}
	defer database.Close()
	err = audit.Log("SQL Connection initiated")
	if err != nil {
		return fail("audit", err)
	}

	store := db.NewStore(database)
	err = store.Replace(ctx, cfg.OutputTableName, cfg.Currencies, enriched)
	if err != nil {
		return fail("db load", err)
	}
	err = audit.Log("Data loaded to Database as table. Running the query")
	if err != nil {
		return fail("audit", err)
	}

	reporter := report.Reporter{
		Store: store,
		Table: cfg.OutputTableName,
		Out:   out,
		Audit: func(message string) {
			logErr := audit.Log(message)
			if logErr != nil {
				slog.ErrorContext(ctx, "failed to write audit log", "err", logErr)
			}
		},
	}
	err = reporter.Run(ctx, cfg.Currencies)
	if err != nil {
		return fail("report", err)
	}

	err = database.Close()
	if err != nil {
		return fail("db close", err)
	}
	err = audit.Log("SQL Connection closed")
	if err != nil {
		return fail("audit", err)
	}

	return audit.Log("ETL Job Ended")
}
