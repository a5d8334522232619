// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import "strings"

type continuationState int

const (
	stateScanning continuationState = iota
	stateBuffering
)

// continuationFilter drops footnote text that overflowed onto a later page.
// Such text shows up as a run of deeply indented lines without a numeral.
// While scanning, lines pass straight through. An indented line switches
// to buffering; the run is decided once a boundary line or the end of input
// is seen: runs shorter than threshold are kept verbatim, longer ones are
// discarded whole.
type continuationFilter struct {
	indent    string
	threshold int

	state   continuationState
	pending []string
	out     []string
}

func newContinuationFilter(indent, threshold int) *continuationFilter {
	return &continuationFilter{
		indent:    strings.Repeat(" ", indent),
		threshold: threshold,
	}
}

// indented reports whether line starts with at least the configured number
// of spaces and carries text. Whitespace-only lines end a run.
func (f *continuationFilter) indented(line string) bool {
	return strings.HasPrefix(line, f.indent) && strings.TrimSpace(line) != ""
}

func (f *continuationFilter) feed(line string) {
	if f.indented(line) {
		f.pending = append(f.pending, line)
		f.state = stateBuffering
		return
	}
	if f.state == stateBuffering {
		f.flush()
	}
	f.out = append(f.out, line)
}

// flush resolves the pending run and returns to scanning.
func (f *continuationFilter) flush() {
	if len(f.pending) < f.threshold {
		f.out = append(f.out, f.pending...)
	}
	f.pending = f.pending[:0]
	f.state = stateScanning
}

func (f *continuationFilter) result() string {
	if f.state == stateBuffering {
		f.flush()
	}
	return strings.Join(f.out, "\n")
}

// StripContinuations removes every run of threshold or more consecutive
// lines indented by at least indent spaces. Shorter runs and all other
// lines are kept in their original order.
func StripContinuations(text string, indent, threshold int) string {
	f := newContinuationFilter(indent, threshold)
	for _, line := range strings.Split(text, "\n") {
		f.feed(line)
	}
	return f.result()
}
