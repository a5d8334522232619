// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"regexp"
	"strings"

	"github.com/pdiddy/epistolarum/pkg/types"
)

// Action describes what a pass does with the text it matches.
type Action string

const (
	// ActionDelete removes the matched text. Line-scoped deletions keep the
	// newline, leaving an empty line behind.
	ActionDelete Action = "delete"
	// ActionBlank replaces the matched text with spaces of equal length.
	ActionBlank Action = "blank"
	// ActionCollapse replaces a multi-line match with a single newline.
	ActionCollapse Action = "collapse"
)

// Pass is one text transformation of the noise stripper. Apply is a pure
// function of its input and runs exactly once per Clean call.
type Pass struct {
	Name   string
	Rule   string
	Action Action
	Apply  func(string) string
}

// Pass names, in default order.
const (
	PassRules                 = "rules"
	PassSuperscripts          = "superscripts"
	PassRunningHeaders        = "running-headers"
	PassPageNumbers           = "page-numbers"
	PassFootnoteBlocks        = "footnote-blocks"
	PassContinuedNumerals     = "continued-numerals"
	PassFootnoteContinuations = "footnote-continuations"
	PassCollapseBlankLines    = "collapse-blank-lines"
)

var (
	ruleLine       = regexp.MustCompile(`(?m)^[ \t]*[-—=_]{3,}[ \t]*$`)
	pageNumberLine = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)

	// A footnote block starts with a line of exactly seven spaces, a 1-4
	// digit numeral, a space and text. It runs through the following
	// non-blank lines and ends at a blank line. Consecutive blocks match as
	// one.
	footnoteBlock = regexp.MustCompile(`(?:\n|\A)(?: {7}\d{1,4} .*\n(?:[ \t]*\S.*\n)*[ \t]*\n)+`)

	// Markers can repeat ("12b12b", "12b 13b"); the whole leading run is
	// blanked so a second pass finds nothing.
	continuedNumeral = regexp.MustCompile(`(?m)^(?: *\d{1,3}b)+`)
	blankRun         = regexp.MustCompile(`\n(?:\s*\n){2,}`)
)

// superscriptDigits are the glyphs used as footnote markers.
const superscriptDigits = "⁰¹²³⁴⁵⁶⁷⁸⁹"

// DefaultPasses returns the stripper passes in the order they must run.
// Superscript markers go before footnote detection because they change
// what footnote lines look like.
func DefaultPasses(cfg types.CleanConfig) []Pass {
	passes := []Pass{
		RulesPass(),
		SuperscriptsPass(),
		RunningHeadersPass(cfg.HeaderMarkers),
		PageNumbersPass(),
		FootnoteBlocksPass(),
		ContinuedNumeralsPass(),
		FootnoteContinuationsPass(cfg.ContinuationIndent, cfg.ContinuationThreshold),
	}
	if cfg.CollapseBlankLines {
		passes = append(passes, CollapseBlankLinesPass())
	}
	return passes
}

// RulesPass deletes horizontal rule lines.
func RulesPass() Pass {
	return Pass{
		Name:   PassRules,
		Rule:   "whole line of 3+ '-', '—', '=' or '_'",
		Action: ActionDelete,
		Apply: func(s string) string {
			return ruleLine.ReplaceAllString(s, "")
		},
	}
}

// SuperscriptsPass deletes superscript digits anywhere in the text.
func SuperscriptsPass() Pass {
	return Pass{
		Name:   PassSuperscripts,
		Rule:   "any of " + superscriptDigits,
		Action: ActionDelete,
		Apply: func(s string) string {
			return strings.Map(func(r rune) rune {
				if strings.ContainsRune(superscriptDigits, r) {
					return -1
				}
				return r
			}, s)
		},
	}
}

// RunningHeadersPass deletes every line containing one of markers,
// compared case-insensitively. Empty markers are ignored.
func RunningHeadersPass(markers []string) Pass {
	var quoted []string
	for _, m := range markers {
		if m = strings.TrimSpace(m); m != "" {
			quoted = append(quoted, regexp.QuoteMeta(m))
		}
	}

	p := Pass{
		Name:   PassRunningHeaders,
		Rule:   "line containing " + strings.Join(markers, " | "),
		Action: ActionDelete,
		Apply:  func(s string) string { return s },
	}
	if len(quoted) == 0 {
		return p
	}

	re := regexp.MustCompile(`(?mi)^.*(?:` + strings.Join(quoted, "|") + `).*$`)
	p.Apply = func(s string) string {
		return re.ReplaceAllString(s, "")
	}
	return p
}

// PageNumbersPass deletes lines holding nothing but a number.
func PageNumbersPass() Pass {
	return Pass{
		Name:   PassPageNumbers,
		Rule:   "line of digits only",
		Action: ActionDelete,
		Apply: func(s string) string {
			return pageNumberLine.ReplaceAllString(s, "")
		},
	}
}

// FootnoteBlocksPass collapses runs of inline footnote blocks to a newline.
func FootnoteBlocksPass() Pass {
	return Pass{
		Name:   PassFootnoteBlocks,
		Rule:   "7 spaces + 1-4 digits + text, through following non-blank lines, to a blank line",
		Action: ActionCollapse,
		Apply: func(s string) string {
			return footnoteBlock.ReplaceAllString(s, "\n")
		},
	}
}

// ContinuedNumeralsPass blanks runs of "12b"-style page-break markers at
// line start.
// Line length is preserved for layout-sensitive steps that follow.
func ContinuedNumeralsPass() Pass {
	return Pass{
		Name:   PassContinuedNumerals,
		Rule:   "line start, one or more of: optional spaces, 1-3 digits, 'b'",
		Action: ActionBlank,
		Apply: func(s string) string {
			return continuedNumeral.ReplaceAllStringFunc(s, func(m string) string {
				return strings.Repeat(" ", len(m))
			})
		},
	}
}

// FootnoteContinuationsPass discards runs of threshold or more lines that
// are each indented by at least indent spaces.
func FootnoteContinuationsPass(indent, threshold int) Pass {
	return Pass{
		Name:   PassFootnoteContinuations,
		Rule:   "run of indented lines at or above the threshold",
		Action: ActionDelete,
		Apply: func(s string) string {
			return StripContinuations(s, indent, threshold)
		},
	}
}

// CollapseBlankLinesPass replaces three or more line breaks, with only
// whitespace between them, by a single newline.
func CollapseBlankLinesPass() Pass {
	return Pass{
		Name:   PassCollapseBlankLines,
		Rule:   "3+ line breaks separated by whitespace",
		Action: ActionCollapse,
		Apply: func(s string) string {
			return blankRun.ReplaceAllString(s, "\n")
		},
	}
}
