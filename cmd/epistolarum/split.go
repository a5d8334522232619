// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/epistolarum/internal/extract"
	"github.com/pdiddy/epistolarum/internal/pipeline"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Clean, segment and emit epistles from existing raw text",
	Long: `Split reads the raw text produced by a previous extract, cleans it,
finds its Book and Epistle headings, and writes one file per epistle to
--output-dir along with manifest.yaml. Existing files of the same name are
overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.Split(pipelineConfig(), cmd.OutOrStdout())
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline from PDF to epistle files",
	Long: `Run extracts text from the register PDF and then performs split. A
failed extraction stops the run before anything is cleaned or written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		ex, err := extract.ForBackend(cfg.Extraction.Backend)
		if err != nil {
			return err
		}
		_, err = pipeline.Run(cfg, ex, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(runCmd)
}
