package main

import (
	"github.com/spf13/cobra"

	"github.com/markdave123-py/Chunkwise/internal/app"
	"github.com/markdave123-py/Chunkwise/internal/config"
	"github.com/markdave123-py/Chunkwise/internal/core/ingestion_engine"
	"github.com/markdave123-py/Chunkwise/internal/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chunkwise",
		Short:         "Chunk documents into metadata-validated records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level, _ := cmd.Flags().GetString("log-level")
			json, _ := cmd.Flags().GetBool("log-json")
			source, _ := cmd.Flags().GetBool("log-source")
			logger.SetupLogger(level, json, source)
		},
	}

	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Emit JSON logs")
	root.PersistentFlags().Bool("log-source", false, "Include source locations in logs")

	root.AddCommand(
		ChunkCmd(),
		StrategiesCmd(),
	)

	return root
}

// newIngestor builds the same pipeline the API serves, without object storage.
func newIngestor() (*ingestion_engine.DocumentIngestor, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return app.NewIngestor(cfg, nil, nil, logger.GetDefault()), nil
}
