package commands

import (
	"os"

	"bankcap-backend/lib/serviceutil"
	"bankcap-backend/lib/sqliteutil"
	"bankcap-backend/services/bankcap/db"
	"bankcap-backend/services/bankcap/report"

	"github.com/spf13/cobra"
)

var (
	reportConfig *string
	reportDB     *string
	reportTable  *string
)

func init() {
	reportConfig = reportCmd.Flags().String("config", "config.json5", "The pipeline configuration file.")
	reportDB = reportCmd.Flags().String("db", "", "Override the output database path.")
	reportTable = reportCmd.Flags().String("table", "", "Override the output table name.")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [--db <path/to/Banks.db>] [--table <name>]",
	Short: "Re-runs the verification queries against an existing output database.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(*reportConfig)
		if *reportDB != "" {
			cfg.OutputDBPath = *reportDB
		}
		if *reportTable != "" {
			cfg.OutputTableName = *reportTable
		}

		database, err := sqliteutil.OpenDB(cfg.OutputDBPath)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer database.Close()

		reporter := report.Reporter{
			Store: db.NewStore(database),
			Table: cfg.OutputTableName,
			Out:   os.Stdout,
		}
		err = reporter.Run(cmd.Context(), cfg.Currencies)
		if err != nil {
			serviceutil.Fatal("verification queries failed", err)
		}
	},
}
