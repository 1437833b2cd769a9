package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/Chunkwise/internal/core/chunking"
	"github.com/markdave123-py/Chunkwise/internal/core/ingestion_engine"
	"github.com/markdave123-py/Chunkwise/internal/logger"
)

func ChunkCmd() *cobra.Command {
	var (
		dir              string
		pattern          string
		strategy         string
		maxSentences     int
		overlap          int
		minLength        int
		versionIncrement bool
	)

	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Chunk every matching file under a directory and print the records as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ing, err := newIngestor()
			if err != nil {
				return err
			}

			files, err := ingestion_engine.ListFiles(dir, pattern)
			if err != nil {
				return err
			}
			logger.GetDefault().Debug("files matched", "dir", dir, "pattern", pattern, "count", len(files))

			var params *chunking.Params
			flags := cmd.Flags()
			if flags.Changed("max-sentences") || flags.Changed("overlap") || flags.Changed("min-length") {
				params = &chunking.Params{}
				if flags.Changed("max-sentences") {
					params.MaxSentencesPerChunk = chunking.Int(maxSentences)
				}
				if flags.Changed("overlap") {
					params.OverlapSentences = chunking.Int(overlap)
				}
				if flags.Changed("min-length") {
					params.MinSentenceLength = chunking.Int(minLength)
				}
			}

			res, err := ing.Process(cmd.Context(), ingestion_engine.IngestRequest{
				Documents:        ingestion_engine.DocumentsFromFiles(files),
				Strategy:         strategy,
				Params:           params,
				VersionIncrement: versionIncrement,
			})
			if err != nil {
				return fmt.Errorf("chunk %s: %w", dir, err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.Records)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to read")
	cmd.Flags().StringVar(&pattern, "pattern", ingestion_engine.DefaultPattern, "Glob pattern relative to --dir (supports **)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Chunking strategy (defaults to DEFAULT_STRATEGY)")
	cmd.Flags().IntVar(&maxSentences, "max-sentences", 5, "Sentences per chunk")
	cmd.Flags().IntVar(&overlap, "overlap", 1, "Sentences shared by consecutive chunks")
	cmd.Flags().IntVar(&minLength, "min-length", 10, "Drop sentences shorter than this many characters")
	cmd.Flags().BoolVar(&versionIncrement, "version-increment", false, "Bump the patch of each chunk's version")

	return cmd
}

func StrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available chunking strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ing, err := newIngestor()
			if err != nil {
				return err
			}
			for _, name := range ing.Strategies() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
