package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mgranica/pdf-reader/config"
	"github.com/mgranica/pdf-reader/pipeline"
)

var (
	configFile  string
	resultsPath string
)

var rootCmd = &cobra.Command{
	Use:   "pdf-reader",
	Short: "Extract tables from a PDF file and save them as CSV",
	Long: `pdf-reader downloads a PDF from the URL named in its configuration,
detects the tables on every page, pairs each table with the title line above
it, and writes one CSV file per table into the results directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		written, err := pipeline.Run(cmd.Context(), cfg, resultsPath)
		if err != nil {
			return err
		}
		log.WithField("tables", written).Info("extraction complete")
		return nil
	},
}

func init() {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	rootCmd.Flags().StringVar(&configFile, "config_file", "config.yml", "path to the YAML configuration file")
	rootCmd.Flags().StringVar(&resultsPath, "results_path", wd, "directory where results will be saved")
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
