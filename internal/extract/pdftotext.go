// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const binPdftotext = "pdftotext"

// PdftotextExtractor runs poppler's pdftotext in layout mode, which keeps
// the fixed-width column alignment the cleaning passes rely on.
type PdftotextExtractor struct {
	bin  string
	exec executor
}

// NewPdftotext returns an extractor that runs pdftotext from PATH.
func NewPdftotext() *PdftotextExtractor {
	return newPdftotext(defaultExec)
}

func newPdftotext(exec executor) *PdftotextExtractor {
	return &PdftotextExtractor{bin: binPdftotext, exec: exec}
}

func (p *PdftotextExtractor) Name() string { return p.bin }

// Args returns the pdftotext command line for one extraction.
func (p *PdftotextExtractor) Args(pdfPath, outPath string, firstPage int) []string {
	return []string{"-layout", "-f", strconv.Itoa(firstPage), pdfPath, outPath}
}

// Extract runs pdftotext synchronously. A missing binary or a non-zero exit
// is returned as an error; pdftotext warnings are only surfaced on failure.
func (p *PdftotextExtractor) Extract(pdfPath, outPath string, firstPage int) error {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", p.bin, err)
	}
	if err := prepareOutput(outPath); err != nil {
		return err
	}

	var stderr bytes.Buffer
	if err := p.exec.Run(p.bin, p.Args(pdfPath, outPath, firstPage), &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s on %s: %w: %s", p.bin, pdfPath, err, lastLine(msg))
		}
		return fmt.Errorf("running %s on %s: %w", p.bin, pdfPath, err)
	}
	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
