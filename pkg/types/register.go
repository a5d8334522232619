// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// HeadingKind distinguishes the two nested heading families of the register.
type HeadingKind string

const (
	HeadingBook    HeadingKind = "Book"
	HeadingEpistle HeadingKind = "Epistle"
)

// NoBook is the book number given to epistles that precede every Book heading.
const NoBook = 0

// Heading is a structural marker found in cleaned text.
type Heading struct {
	// Kind is Book or Epistle.
	Kind HeadingKind `json:"kind" yaml:"kind"`

	// Numeral is the raw Roman numeral as it appears in the text (e.g. "XIV").
	Numeral string `json:"numeral" yaml:"numeral"`

	// Value is the decoded numeral, always >= 1.
	Value int `json:"value" yaml:"value"`

	// Position is the byte offset of the heading line start in the cleaned text.
	Position int `json:"position" yaml:"position"`
}

// Epistle is a single letter cut from the cleaned register text.
type Epistle struct {
	// Book is the value of the nearest preceding Book heading, or NoBook.
	Book int `json:"book" yaml:"book"`

	// Number is the value of the epistle's own heading.
	Number int `json:"number" yaml:"number"`

	// Position is the byte offset of the epistle heading in the cleaned text.
	Position int `json:"position" yaml:"position"`

	// Text is the trimmed span from the heading to the next epistle heading
	// or the end of the document.
	Text string `json:"text" yaml:"text"`
}

// HeadingLine returns the first line of the epistle text.
func (e Epistle) HeadingLine() string {
	line, _, _ := strings.Cut(e.Text, "\n")
	return strings.TrimSpace(line)
}

// ManifestEntry describes one emitted epistle file.
type ManifestEntry struct {
	// File is the file name relative to the output directory.
	File string `json:"file" yaml:"file"`

	Book    int    `json:"book" yaml:"book"`
	Epistle int    `json:"epistle" yaml:"epistle"`
	Heading string `json:"heading" yaml:"heading"`

	// Bytes is the size of the written file.
	Bytes int `json:"bytes" yaml:"bytes"`

	// Digest is the hex BLAKE3-256 digest of the file contents.
	Digest string `json:"blake3" yaml:"blake3"`
}

// Manifest lists every file written by one emit run, in document order.
type Manifest struct {
	Source   string          `json:"source" yaml:"source"`
	Books    int             `json:"books" yaml:"books"`
	Epistles []ManifestEntry `json:"epistles" yaml:"epistles"`
}
