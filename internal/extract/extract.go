// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts the register PDF into layout-preserving plain
// text. The pdftotext backend shells out to poppler; the native backend
// reads the PDF in-process.
package extract

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pdiddy/epistolarum/pkg/types"
)

// Extractor writes the text of pdfPath, starting at firstPage, to outPath.
type Extractor interface {
	// Name returns the backend name.
	Name() string

	// Extract converts pdfPath to text at outPath. Any failure is fatal to
	// the pipeline; nothing is retried.
	Extract(pdfPath, outPath string, firstPage int) error
}

// ForBackend returns the extractor for the named backend.
func ForBackend(backend types.ExtractionBackend) (Extractor, error) {
	switch backend {
	case types.BackendPdftotext, "":
		return NewPdftotext(), nil
	case types.BackendNative:
		return &NativeExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported extraction backend %q: use pdftotext or native", backend)
	}
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// prepareOutput makes sure the directory for outPath exists.
func prepareOutput(outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outPath, err)
	}
	return nil
}
