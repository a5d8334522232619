// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment locates Book and Epistle headings in cleaned register
// text and cuts the text into one record per epistle.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/epistolarum/internal/roman"
	"github.com/pdiddy/epistolarum/pkg/types"
)

var patterns = map[types.HeadingKind]*regexp.Regexp{
	types.HeadingBook:    regexp.MustCompile(`(?mi)^[ \t]*Book\s+([IVXLCDM]+)\.`),
	types.HeadingEpistle: regexp.MustCompile(`(?mi)^[ \t]*Epistle\s+([IVXLCDM]+)\.`),
}

// Result holds the headings and epistles found in one document.
type Result struct {
	Books    []types.Heading
	Epistles []types.Epistle
}

// Empty reports whether no epistle headings were found.
func (r Result) Empty() bool {
	return len(r.Epistles) == 0
}

// BookCount returns the number of distinct book numbers the epistles are
// attributed to, counting NoBook when present.
func (r Result) BookCount() int {
	seen := make(map[int]bool)
	for _, e := range r.Epistles {
		seen[e.Book] = true
	}
	return len(seen)
}

// FindHeadings returns every heading of kind in text, in document order.
// Position is the offset of the heading line, including leading
// indentation. A numeral that fails to decode aborts the scan.
func FindHeadings(text string, kind types.HeadingKind) ([]types.Heading, error) {
	re, ok := patterns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown heading kind %q", kind)
	}

	var headings []types.Heading
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		numeral := text[m[2]:m[3]]
		value, err := roman.Decode(numeral)
		if err != nil {
			return nil, fmt.Errorf("decoding %s heading at offset %d: %w", kind, m[0], err)
		}
		headings = append(headings, types.Heading{
			Kind:     kind,
			Numeral:  numeral,
			Value:    value,
			Position: m[0],
		})
	}
	return headings, nil
}

// Segment scans text for Book and Epistle headings and slices it into
// epistles. Zero epistle headings yields an empty Result and no error.
func Segment(text string) (Result, error) {
	books, err := FindHeadings(text, types.HeadingBook)
	if err != nil {
		return Result{}, err
	}
	epistles, err := FindHeadings(text, types.HeadingEpistle)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Books:    books,
		Epistles: Split(text, epistles, books),
	}, nil
}

// Split cuts text at each epistle heading. Epistle i spans from its own
// heading to the next epistle heading, the last one to the end of text;
// each span is trimmed. Both heading slices must be in document order.
func Split(text string, epistles, books []types.Heading) []types.Epistle {
	out := make([]types.Epistle, 0, len(epistles))
	bookCursor, book := 0, types.NoBook

	for i, h := range epistles {
		bookCursor, book = advanceBook(books, bookCursor, book, h.Position)

		end := len(text)
		if i+1 < len(epistles) {
			end = epistles[i+1].Position
		}
		out = append(out, types.Epistle{
			Book:     book,
			Number:   h.Value,
			Position: h.Position,
			Text:     strings.TrimSpace(text[h.Position:end]),
		})
	}
	return out
}

// advanceBook moves the cursor past every book heading at or before pos and
// returns the new cursor with the value of the last heading passed. When
// nothing is passed, current is returned unchanged.
func advanceBook(books []types.Heading, cursor, current, pos int) (int, int) {
	for cursor < len(books) && books[cursor].Position <= pos {
		current = books[cursor].Value
		cursor++
	}
	return cursor, current
}
