// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the register through extraction, cleaning,
// segmentation and emission as one batch. All paths and parameters come
// from an explicit types.PipelineConfig, so runs are independent.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/epistolarum/internal/clean"
	"github.com/pdiddy/epistolarum/internal/emit"
	"github.com/pdiddy/epistolarum/internal/extract"
	"github.com/pdiddy/epistolarum/internal/segment"
	"github.com/pdiddy/epistolarum/pkg/types"
)

// Stage names used in StageError.
const (
	StageConfig  = "config"
	StageExtract = "extract"
	StageRead    = "read"
	StageClean   = "clean"
	StageSegment = "segment"
	StageEmit    = "emit"
)

// StageError attributes a failure to a pipeline stage and the file it was
// working on.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Summary holds the counts reported at the end of a run.
type Summary struct {
	Books    int
	Epistles int
	Written  int
}

// Empty reports whether the run found no epistle headings.
func (s Summary) Empty() bool {
	return s.Epistles == 0
}

// Run executes the full pipeline: the extractor converts the input PDF to
// raw text, which is then cleaned, segmented and emitted. Progress goes
// to w. A failing extractor aborts the run; nothing is cleaned up.
func Run(cfg types.PipelineConfig, ex extract.Extractor, w io.Writer) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, &StageError{Stage: StageConfig, Err: err}
	}

	in := cfg.Extraction
	fmt.Fprintf(w, "converting PDF to text (%s, from page %d)...\n", ex.Name(), in.FirstPage)
	if err := ex.Extract(in.InputPDF, in.RawText, in.FirstPage); err != nil {
		return Summary{}, &StageError{Stage: StageExtract, Path: in.InputPDF, Err: err}
	}

	return Split(cfg, w)
}

// Split runs cleaning, segmentation and emission on the raw text file
// named in cfg, skipping extraction.
func Split(cfg types.PipelineConfig, w io.Writer) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, &StageError{Stage: StageConfig, Err: err}
	}

	text, err := Clean(cfg, w)
	if err != nil {
		return Summary{}, err
	}

	fmt.Fprintln(w, "splitting epistles...")
	res, err := segment.Segment(text)
	if err != nil {
		return Summary{}, &StageError{Stage: StageSegment, Path: cfg.Clean.DebugText, Err: err}
	}
	fmt.Fprintf(w, "found %d book heading(s) and %d epistle heading(s)\n", len(res.Books), len(res.Epistles))
	if res.Empty() {
		fmt.Fprintln(w, "no epistle headings found; nothing written")
		return Summary{Books: len(res.Books)}, nil
	}

	em := emit.New(cfg.Output, cfg.Extraction.InputPDF)
	es, err := em.Emit(res.Epistles, w)
	summary := Summary{Books: es.Books, Epistles: es.Epistles, Written: es.Written}
	if err != nil {
		return summary, &StageError{Stage: StageEmit, Path: cfg.Output.Dir, Err: err}
	}

	fmt.Fprintln(w, "done.")
	return summary, nil
}

// Clean reads the raw text named in cfg and returns it cleaned, writing
// the debug artifact on the way.
func Clean(cfg types.PipelineConfig, w io.Writer) (string, error) {
	raw := cfg.Extraction.RawText
	fmt.Fprintf(w, "reading %s...\n", raw)
	data, err := os.ReadFile(raw)
	if err != nil {
		return "", &StageError{Stage: StageRead, Path: raw, Err: err}
	}

	fmt.Fprintln(w, "cleaning text...")
	text, err := clean.NewStripper(cfg.Clean).Clean(string(data), w)
	if err != nil {
		return "", &StageError{Stage: StageClean, Path: cfg.Clean.DebugText, Err: err}
	}
	return text, nil
}
