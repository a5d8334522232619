// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/epistolarum/internal/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Strip page furniture from the raw text",
	Long: `Clean runs the noise-stripping passes over the raw text file and writes
the result to --debug for inspection. Nothing is segmented or emitted.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, err := pipeline.Clean(cfg, cmd.OutOrStdout())
	return err
}
