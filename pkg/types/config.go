// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ExtractionBackend identifies the PDF-to-text tool.
type ExtractionBackend string

const (
	BackendPdftotext ExtractionBackend = "pdftotext"
	BackendNative    ExtractionBackend = "native"
)

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// Backend selects the extraction tool: pdftotext or native. Empty
	// means pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// InputPDF is the path of the scanned register.
	InputPDF string `json:"input" yaml:"input"`

	// RawText is where the extracted, layout-preserving text is written.
	RawText string `json:"raw" yaml:"raw"`

	// FirstPage is the first PDF page extracted (default 5; pages 1-4 are
	// front matter).
	FirstPage int `json:"first_page" yaml:"first_page"`
}

// CleanConfig holds settings for the noise-stripping stage.
type CleanConfig struct {
	// DebugText is where the cleaned text is persisted for inspection.
	// Empty disables the debug artifact.
	DebugText string `json:"debug" yaml:"debug"`

	// HeaderMarkers are case-insensitive substrings identifying running
	// header lines (default "Philip Schaff").
	HeaderMarkers []string `json:"header_markers" yaml:"header_markers"`

	// ContinuationIndent is the minimum number of leading spaces that marks
	// a footnote continuation line (default 9).
	ContinuationIndent int `json:"continuation_indent" yaml:"continuation_indent"`

	// ContinuationThreshold is the minimum run of indented lines discarded
	// as a footnote continuation block (default 3).
	ContinuationThreshold int `json:"continuation_threshold" yaml:"continuation_threshold"`

	// CollapseBlankLines enables the final blank-run collapsing pass.
	CollapseBlankLines bool `json:"collapse_blank_lines" yaml:"collapse_blank_lines"`
}

// OutputConfig holds settings for the emit stage.
type OutputConfig struct {
	// Dir receives one text file per epistle plus manifest.yaml.
	Dir string `json:"output_dir" yaml:"output_dir"`

	// Width is the zero-padding width of book and epistle numbers in
	// file names (default 3).
	Width int `json:"width" yaml:"width"`
}

// CatalogConfig holds settings for the register catalog.
type CatalogConfig struct {
	// Dir contains register.db and export files.
	Dir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for one pipeline run.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Clean      CleanConfig      `json:"clean" yaml:"clean"`
	Output     OutputConfig     `json:"output" yaml:"output"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
}

// Default configuration values.
const (
	DefaultFirstPage             = 5
	DefaultContinuationIndent    = 9
	DefaultContinuationThreshold = 3
	DefaultWidth                 = 3
	DefaultMaxResults            = 20
	DefaultHeaderMarker          = "Philip Schaff"
)

// DefaultPipelineConfig returns the configuration used when nothing is
// overridden, laid out under letters/epistolarum/.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Extraction: ExtractionConfig{
			Backend:   BackendPdftotext,
			InputPDF:  "letters/epistolarum/Registri_Epistolarum.pdf",
			RawText:   "letters/epistolarum/txt/epistolarum.txt",
			FirstPage: DefaultFirstPage,
		},
		Clean: CleanConfig{
			DebugText:             "letters/epistolarum/txt/epistolarum_clean.txt",
			HeaderMarkers:         []string{DefaultHeaderMarker},
			ContinuationIndent:    DefaultContinuationIndent,
			ContinuationThreshold: DefaultContinuationThreshold,
		},
		Output: OutputConfig{
			Dir:   "letters/epistolarum/txt",
			Width: DefaultWidth,
		},
		Catalog: CatalogConfig{
			Dir:        "letters/epistolarum/index",
			MaxResults: DefaultMaxResults,
		},
	}
}

// Validate reports every invalid setting, joined into one error.
func (c PipelineConfig) Validate() error {
	var errs []error
	if c.Extraction.FirstPage < 1 {
		errs = append(errs, fmt.Errorf("first_page must be >= 1, got %d", c.Extraction.FirstPage))
	}
	switch c.Extraction.Backend {
	case "", BackendPdftotext, BackendNative:
	default:
		errs = append(errs, fmt.Errorf("unsupported backend %q: use pdftotext or native", c.Extraction.Backend))
	}
	if c.Extraction.RawText == "" {
		errs = append(errs, errors.New("raw is required"))
	}
	if c.Clean.ContinuationIndent < 1 {
		errs = append(errs, fmt.Errorf("continuation_indent must be >= 1, got %d", c.Clean.ContinuationIndent))
	}
	if c.Clean.ContinuationThreshold < 1 {
		errs = append(errs, fmt.Errorf("continuation_threshold must be >= 1, got %d", c.Clean.ContinuationThreshold))
	}
	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output_dir is required"))
	}
	if c.Output.Width < 1 {
		errs = append(errs, fmt.Errorf("width must be >= 1, got %d", c.Output.Width))
	}
	return errors.Join(errs...)
}
