// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPipelineConfig(t *testing.T) {
	cfg := DefaultPipelineConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Extraction.FirstPage)
	assert.Equal(t, BackendPdftotext, cfg.Extraction.Backend)
	assert.Equal(t, []string{"Philip Schaff"}, cfg.Clean.HeaderMarkers)
	assert.Equal(t, 9, cfg.Clean.ContinuationIndent)
	assert.Equal(t, 3, cfg.Clean.ContinuationThreshold)
	assert.False(t, cfg.Clean.CollapseBlankLines)
	assert.Equal(t, 3, cfg.Output.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PipelineConfig)
		wantErr []string
	}{
		{
			name:   "native backend",
			mutate: func(c *PipelineConfig) { c.Extraction.Backend = BackendNative },
		},
		{
			name:   "empty backend means pdftotext",
			mutate: func(c *PipelineConfig) { c.Extraction.Backend = "" },
		},
		{
			name:    "unknown backend",
			mutate:  func(c *PipelineConfig) { c.Extraction.Backend = "ocr" },
			wantErr: []string{`unsupported backend "ocr"`},
		},
		{
			name:    "first page",
			mutate:  func(c *PipelineConfig) { c.Extraction.FirstPage = 0 },
			wantErr: []string{"first_page"},
		},
		{
			name: "several problems reported together",
			mutate: func(c *PipelineConfig) {
				c.Output.Dir = ""
				c.Output.Width = -1
				c.Extraction.RawText = ""
				c.Clean.ContinuationIndent = 0
				c.Clean.ContinuationThreshold = 0
			},
			wantErr: []string{"output_dir", "width", "raw", "continuation_indent", "continuation_threshold"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPipelineConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestEpistleHeadingLine(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Epistle IV.\nTo John.", "Epistle IV."},
		{"  Epistle IV.  ", "Epistle IV."},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Epistle{Text: tt.text}.HeadingLine())
	}
}
