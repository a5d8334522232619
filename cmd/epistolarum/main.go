// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the epistolarum CLI, which splits a
// scanned correspondence register into one text file per epistle.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/epistolarum/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the epistolarum CLI.
var rootCmd = &cobra.Command{
	Use:   "epistolarum",
	Short: "Split a scanned letter register into books and epistles",
	Long: `epistolarum turns a scanned correspondence register into one plain-text
file per epistle. The PDF is converted to layout-preserving text, stripped of
page furniture (running headers, page numbers, footnotes, rules), segmented on
its Book and Epistle headings, and written out as epistle_BBB_EEE.txt files
with a manifest.

Each stage is a subcommand: extract, clean, split, and run for all of them.
The catalog subcommand indexes the written files for full-text search.`,
	SilenceUsage: true,
}

// configKeys maps viper keys to the persistent flags that feed them.
var configKeys = map[string]string{
	"input":                  "input",
	"raw":                    "raw",
	"debug":                  "debug",
	"output_dir":             "output-dir",
	"first_page":             "first-page",
	"backend":                "backend",
	"header_markers":         "header-markers",
	"width":                  "width",
	"continuation_indent":    "continuation-indent",
	"continuation_threshold": "continuation-threshold",
	"collapse_blank_lines":   "collapse-blank-lines",
	"catalog_dir":            "catalog-dir",
	"max_results":            "max-results",
}

func init() {
	cobra.OnInitialize(initConfig)

	def := types.DefaultPipelineConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./epistolarum.yaml or ~/.config/epistolarum/config.yaml)")
	flags.String("input", def.Extraction.InputPDF, "scanned register PDF")
	flags.String("raw", def.Extraction.RawText, "extracted raw text file")
	flags.String("debug", def.Clean.DebugText, "cleaned text written for inspection (empty disables)")
	flags.String("output-dir", def.Output.Dir, "directory receiving epistle files and manifest.yaml")
	flags.Int("first-page", def.Extraction.FirstPage, "first PDF page to extract")
	flags.String("backend", string(def.Extraction.Backend), "extraction backend: pdftotext or native")
	flags.StringSlice("header-markers", def.Clean.HeaderMarkers, "substrings identifying running header lines")
	flags.Int("width", def.Output.Width, "zero-padding width of numbers in file names")
	flags.Int("continuation-indent", def.Clean.ContinuationIndent, "leading spaces marking a footnote continuation line")
	flags.Int("continuation-threshold", def.Clean.ContinuationThreshold, "indented lines in a run before it is removed")
	flags.Bool("collapse-blank-lines", def.Clean.CollapseBlankLines, "collapse runs of blank lines after cleaning")
	flags.String("catalog-dir", def.Catalog.Dir, "directory containing the catalog database")
	flags.Int("max-results", def.Catalog.MaxResults, "default maximum number of catalog results")

	for key, name := range configKeys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("epistolarum")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "epistolarum"))
		}
	}

	viper.SetEnvPrefix("EPISTOLARUM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the run configuration from flags, environment
// and config file, in viper's precedence order.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Extraction: types.ExtractionConfig{
			Backend:   types.ExtractionBackend(viper.GetString("backend")),
			InputPDF:  viper.GetString("input"),
			RawText:   viper.GetString("raw"),
			FirstPage: viper.GetInt("first_page"),
		},
		Clean: types.CleanConfig{
			DebugText:             viper.GetString("debug"),
			HeaderMarkers:         viper.GetStringSlice("header_markers"),
			ContinuationIndent:    viper.GetInt("continuation_indent"),
			ContinuationThreshold: viper.GetInt("continuation_threshold"),
			CollapseBlankLines:    viper.GetBool("collapse_blank_lines"),
		},
		Output: types.OutputConfig{
			Dir:   viper.GetString("output_dir"),
			Width: viper.GetInt("width"),
		},
		Catalog: types.CatalogConfig{
			Dir:        viper.GetString("catalog_dir"),
			MaxResults: viper.GetInt("max_results"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
