// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/epistolarum/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index and search the emitted epistle files",
	Long: `Catalog manages a local SQLite index over the files written by split.
Use subcommands to index them, search them, or export the index.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the epistle files listed in manifest.yaml",
	Long: `Index reads manifest.yaml from --output-dir and stores every listed
epistle with full-text indexing. Files whose digest is unchanged are skipped
on subsequent runs; files edited since they were written are rejected.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(context.Background(), cfg.Output.Dir, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d epistle(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search cataloged epistles by text and book",
	Long: `Search matches epistle bodies with a full-text query, optionally
restricted to one book with --book. Results are listed in register order.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.Query == "" && opts.Book == nil {
		return fmt.Errorf("query or filter required: provide a search query or --book")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-7s  %-22s  %s\n", "Book", "Epistle", "File", "Heading")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range results {
		heading := r.Heading
		if len(heading) > 30 {
			heading = heading[:27] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-7d  %-22s  %s\n", r.Book, r.Epistle, r.File, heading)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or a filtered subset) to export.yaml or
export.json in --catalog-dir. Supports the same filters as search.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := pipelineConfig()
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	opts := catalog.QueryOptions{
		Query:      queryText,
		MaxResults: limit,
	}
	if cmd.Flags().Changed("book") {
		book, _ := cmd.Flags().GetInt("book")
		opts.Book = &book
	}
	return opts
}

func init() {
	// Search flags.
	catalogSearchCmd.Flags().String("query", "", "full-text search query")
	catalogSearchCmd.Flags().Int("book", 0, "restrict to one book (0 = epistles before the first book)")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().Int("book", 0, "restrict export to one book")
	catalogExportCmd.Flags().Int("limit", 0, "maximum epistles to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
