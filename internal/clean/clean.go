// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean strips non-content artifacts from layout-preserving text
// extracted from the scanned register: rule lines, running headers, page
// numbers, footnote markers and footnote blocks.
package clean

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/epistolarum/pkg/types"
)

// Stripper applies an ordered list of passes to a whole document.
type Stripper struct {
	// Passes run in slice order, each exactly once.
	Passes []Pass

	// DebugPath receives the cleaned text. Empty skips the artifact.
	DebugPath string
}

// NewStripper builds a stripper with the default passes for cfg.
func NewStripper(cfg types.CleanConfig) *Stripper {
	if cfg.ContinuationIndent <= 0 {
		cfg.ContinuationIndent = types.DefaultContinuationIndent
	}
	if cfg.ContinuationThreshold <= 0 {
		cfg.ContinuationThreshold = types.DefaultContinuationThreshold
	}
	return &Stripper{
		Passes:    DefaultPasses(cfg),
		DebugPath: cfg.DebugText,
	}
}

// Apply runs every pass over text and returns the result. It has no side
// effects.
func (s *Stripper) Apply(text string) string {
	for _, p := range s.Passes {
		text = p.Apply(text)
	}
	return text
}

// Clean runs every pass over text, printing how many bytes each pass
// removed to w, then persists the result to DebugPath.
func (s *Stripper) Clean(text string, w io.Writer) (string, error) {
	for _, p := range s.Passes {
		before := len(text)
		text = p.Apply(text)
		fmt.Fprintf(w, "  %-24s %-8s %7d bytes removed\n", p.Name, p.Action, before-len(text))
	}

	if s.DebugPath != "" {
		if err := writeDebug(s.DebugPath, text); err != nil {
			return "", err
		}
		fmt.Fprintf(w, "  cleaned text written to %s\n", s.DebugPath)
	}
	return text, nil
}

func writeDebug(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating debug directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing cleaned text %s: %w", path, err)
	}
	return nil
}
