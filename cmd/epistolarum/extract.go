// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/epistolarum/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Convert the register PDF to layout-preserving text",
	Long: `Extract converts the input PDF to plain text starting at --first-page,
preserving the physical layout so indentation survives for cleaning. The
pdftotext backend requires poppler-utils on PATH; the native backend reads
the PDF in-process.`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ex, err := extract.ForBackend(cfg.Extraction.Backend)
	if err != nil {
		return err
	}

	in := cfg.Extraction
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "converting %s to text (%s, from page %d)...\n", in.InputPDF, ex.Name(), in.FirstPage)
	if err := ex.Extract(in.InputPDF, in.RawText, in.FirstPage); err != nil {
		return err
	}
	fmt.Fprintf(out, "raw text written to %s\n", in.RawText)
	return nil
}
