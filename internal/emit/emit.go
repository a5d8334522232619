// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit writes segmented epistles to one text file each, plus a
// manifest describing what was written.
package emit

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/epistolarum/pkg/types"
)

// ManifestFile is the manifest name inside the output directory.
const ManifestFile = "manifest.yaml"

// RecordError reports a failure to write a single epistle file. Files
// written before it are left in place.
type RecordError struct {
	Book    int
	Epistle int
	Path    string
	Err     error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("writing epistle %d of book %d to %s: %v", e.Epistle, e.Book, e.Path, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Summary holds the outcome of an emit run.
type Summary struct {
	Books    int
	Epistles int
	Written  int
}

// Emitter writes epistles into Dir.
type Emitter struct {
	Dir   string
	Width int

	// Source is recorded in the manifest (typically the input PDF path).
	Source string
}

// New returns an Emitter for cfg, applying the default width.
func New(cfg types.OutputConfig, source string) *Emitter {
	width := cfg.Width
	if width <= 0 {
		width = types.DefaultWidth
	}
	return &Emitter{Dir: cfg.Dir, Width: width, Source: source}
}

// FileName returns the deterministic file name for an epistle, e.g.
// epistle_002_014.txt for book 2, epistle 14 at width 3.
func (e *Emitter) FileName(book, epistle int) string {
	return fmt.Sprintf("epistle_%0*d_%0*d.txt", e.Width, book, e.Width, epistle)
}

// Emit writes every epistle in order, overwriting files of the same name,
// then writes the manifest. A manifest left by an earlier run is removed
// first, so it never describes files this run has replaced. Emit stops at
// the first failing record and returns a *RecordError for it.
func (e *Emitter) Emit(epistles []types.Epistle, w io.Writer) (Summary, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory %s: %w", e.Dir, err)
	}
	manifestPath := filepath.Join(e.Dir, ManifestFile)
	if err := os.Remove(manifestPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Summary{}, fmt.Errorf("removing stale manifest %s: %w", manifestPath, err)
	}

	books := make(map[int]bool)
	for _, ep := range epistles {
		books[ep.Book] = true
	}
	summary := Summary{Books: len(books), Epistles: len(epistles)}

	manifest := types.Manifest{Source: e.Source, Books: summary.Books}
	// written maps a file name to its manifest entry index.
	written := make(map[string]int, len(epistles))
	for _, ep := range epistles {
		name := e.FileName(ep.Book, ep.Number)
		prev, dup := written[name]
		if dup {
			fmt.Fprintf(w, "warning: %s appears more than once; later epistle overwrites it\n", name)
		}
		path := filepath.Join(e.Dir, name)
		data := []byte(ep.Text)

		if err := WriteFileAtomic(path, data); err != nil {
			return summary, &RecordError{Book: ep.Book, Epistle: ep.Number, Path: path, Err: err}
		}
		summary.Written++

		entry := types.ManifestEntry{
			File:    name,
			Book:    ep.Book,
			Epistle: ep.Number,
			Heading: ep.HeadingLine(),
			Bytes:   len(data),
			Digest:  Digest(data),
		}
		if dup {
			manifest.Epistles[prev] = entry
			continue
		}
		written[name] = len(manifest.Epistles)
		manifest.Epistles = append(manifest.Epistles, entry)
	}

	if err := e.writeManifest(manifest); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "wrote %d epistle file(s) across %d book(s) to %s\n", summary.Written, summary.Books, e.Dir)
	return summary, nil
}

func (e *Emitter) writeManifest(m types.Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(e.Dir, ManifestFile)
	if err := WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads the manifest written into dir.
func ReadManifest(dir string) (types.Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return types.Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
