package commands

import (
	"log/slog"
	"os"

	"bankcap-backend/lib/configutil"
	"bankcap-backend/lib/serviceutil"
	"bankcap-backend/services/bankcap/pipeline"

	"dario.cat/mergo"
	"github.com/spf13/cobra"
)

var runConfig *string

func init() {
	runConfig = runCmd.Flags().String("config", "config.json5", "The pipeline configuration file.")
	rootCmd.AddCommand(runCmd)
}

func loadConfig(path string) pipeline.Config {
	cfg, err := configutil.Load[pipeline.Config](path)
	if os.IsNotExist(err) {
		slog.Info("no config file found, using defaults", "path", path)
		return pipeline.Default()
	}
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	// unset fields fall back to the defaults the job has always used
	err = mergo.Merge(&cfg, pipeline.Default())
	if err != nil {
		serviceutil.Fatal("failed to merge config defaults", err)
	}
	return cfg
}

var runCmd = &cobra.Command{
	Use:   "run [--config <path/to/config.json5>]",
	Short: "Runs the ETL job: fetch, extract, enrich, load, verify.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(*runConfig)

		err := pipeline.Run(cmd.Context(), cfg, os.Stdout)
		if err != nil {
			serviceutil.Fatal("pipeline run failed", err)
		}
	},
}
