// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// NativeExtractor reads the PDF with a pure-Go parser. It needs no
// external tools but does not reproduce pdftotext's column layout, so the
// indentation-based cleaning passes are less effective on its output.
type NativeExtractor struct{}

func (n *NativeExtractor) Name() string { return "native" }

// Extract writes the plain text of pages firstPage..last to outPath,
// separating pages with a form feed as pdftotext does. Text is NFC
// normalized; superscript digits are left for the cleaning passes.
func (n *NativeExtractor) Extract(pdfPath, outPath string, firstPage int) error {
	f, reader, err := pdflib.Open(pdfPath)
	if err != nil {
		return fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	if firstPage < 1 || firstPage > numPages {
		return fmt.Errorf("first page %d out of range for %s (%d pages)", firstPage, pdfPath, numPages)
	}

	var buf strings.Builder
	for i := firstPage; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return fmt.Errorf("reading page %d of %s: %w", i, pdfPath, err)
		}
		if i > firstPage {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}

	if err := prepareOutput(outPath); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(norm.NFC.String(buf.String())), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
