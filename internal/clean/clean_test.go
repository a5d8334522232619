// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/epistolarum/pkg/types"
)

func defaultCleanConfig() types.CleanConfig {
	return types.DefaultPipelineConfig().Clean
}

func TestRulesPass(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dashes", "a\n-----\nb", "a\n\nb"},
		{"underscores with trailing space", "a\n___  \nb", "a\n\nb"},
		{"equals indented", "a\n   ====\nb", "a\n\nb"},
		{"em dashes", "a\n———\nb", "a\n\nb"},
		{"two dashes kept", "a\n--\nb", "a\n--\nb"},
		{"rule inside text kept", "a --- b\n", "a --- b\n"},
		{"spaced em dashes kept", "— — —\n", "— — —\n"},
	}
	p := RulesPass()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Apply(tt.in))
		})
	}
}

func TestSuperscriptsPass(t *testing.T) {
	p := SuperscriptsPass()
	assert.Equal(t, "word and  end", p.Apply("word¹ and²³ ⁴⁰⁵⁶⁷⁸⁹ end"))
	assert.Equal(t, "plain 123", p.Apply("plain 123"))
}

func TestRunningHeadersPass(t *testing.T) {
	t.Run("case-insensitive substring", func(t *testing.T) {
		p := RunningHeadersPass([]string{"Philip Schaff"})
		in := "x\n  NPNF2-13. PHILIP SCHAFF  \ny\nphilip schaff, ed.\nz"
		assert.Equal(t, "x\n\ny\n\nz", p.Apply(in))
	})

	t.Run("multiple markers", func(t *testing.T) {
		p := RunningHeadersPass([]string{"Schaff", "Gregory the Great (a.b)"})
		in := "keep\nSchaff\nGregory the Great (a.b) p. 3\nGregory the Great (aXb)"
		assert.Equal(t, "keep\n\n\nGregory the Great (aXb)", p.Apply(in))
	})

	t.Run("no markers is identity", func(t *testing.T) {
		p := RunningHeadersPass([]string{"", "  "})
		assert.Equal(t, "Philip Schaff\n", p.Apply("Philip Schaff\n"))
	})
}

func TestPageNumbersPass(t *testing.T) {
	p := PageNumbersPass()
	assert.Equal(t, "text\n\n12a\nIV\n", p.Apply("text\n  123  \n12a\nIV\n"))
	assert.Equal(t, "\n", p.Apply("7\n"))
}

func TestFootnoteBlocksPass(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single block with continuation",
			in:   "Body line.\n       1 First note text\ncontinues here\n\nNext para.\n",
			want: "Body line.\nNext para.\n",
		},
		{
			name: "consecutive blocks collapse to one newline",
			in:   "Body line.\n       1 First note\n   indented more\n\n       2 Second note\n\nNext para.\n",
			want: "Body line.\nNext para.\n",
		},
		{
			name: "block at start of text",
			in:   "       12 Note at top\n\nBody",
			want: "\nBody",
		},
		{
			name: "eight spaces is not a footnote",
			in:   "x\n        1 not a note\n\ny",
			want: "x\n        1 not a note\n\ny",
		},
		{
			name: "five digit numeral is not a footnote",
			in:   "x\n       12345 not a note\n\ny",
			want: "x\n       12345 not a note\n\ny",
		},
		{
			name: "unterminated block is kept",
			in:   "x\n       1 dangling note\nmore",
			want: "x\n       1 dangling note\nmore",
		},
	}
	p := FootnoteBlocksPass()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Apply(tt.in))
		})
	}
}

func TestContinuedNumeralsPass(t *testing.T) {
	p := ContinuedNumeralsPass()
	in := "  12b rest\n123b\n1234b\nx 12b\n7b"
	want := strings.Repeat(" ", 5) + " rest\n" + strings.Repeat(" ", 4) + "\n1234b\nx 12b\n  "
	got := p.Apply(in)
	assert.Equal(t, want, got)
	assert.Equal(t, len(in), len(got), "blanking preserves length")
}

func TestContinuedNumeralsPassRepeatedMarkers(t *testing.T) {
	p := ContinuedNumeralsPass()
	tests := []struct {
		in   string
		want string
	}{
		{"12b12b text\n", strings.Repeat(" ", 6) + " text\n"},
		{"12b 13b text\n", strings.Repeat(" ", 7) + " text\n"},
		{"   12b1b2b\n", strings.Repeat(" ", 10) + "\n"},
		{"12b x 13b\n", strings.Repeat(" ", 3) + " x 13b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := p.Apply(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, p.Apply(got))
		})
	}
}

func TestDefaultPasses(t *testing.T) {
	names := func(ps []Pass) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	cfg := defaultCleanConfig()
	assert.Equal(t, []string{
		PassRules,
		PassSuperscripts,
		PassRunningHeaders,
		PassPageNumbers,
		PassFootnoteBlocks,
		PassContinuedNumerals,
		PassFootnoteContinuations,
	}, names(DefaultPasses(cfg)))

	cfg.CollapseBlankLines = true
	got := names(DefaultPasses(cfg))
	assert.Equal(t, PassCollapseBlankLines, got[len(got)-1])
}

const sampleRaw = "Book I.\n" +
	"-----\n" +
	"Epistle I.\n" +
	"To the bishop¹ greetings.\n" +
	"NPNF2-12 Philip Schaff\n" +
	"42\n" +
	"       1 A footnote.\n" +
	"continued note\n" +
	"\n" +
	"Second paragraph.\n" +
	"          overflow one\n" +
	"          overflow two\n" +
	"          overflow three\n" +
	"Epistle II.\n" +
	"  12b Closing.\n"

const sampleClean = "Book I.\n" +
	"\n" +
	"Epistle I.\n" +
	"To the bishop greetings.\n" +
	"\n" +
	"\n" +
	"Second paragraph.\n" +
	"Epistle II.\n" +
	"      Closing.\n"

func TestStripperApply(t *testing.T) {
	s := NewStripper(defaultCleanConfig())
	assert.Equal(t, sampleClean, s.Apply(sampleRaw))
}

func TestStripperSuperscriptBeforeFootnotes(t *testing.T) {
	s := NewStripper(defaultCleanConfig())
	in := "Text.\n       ³12 Note text\n\nMore"
	assert.Equal(t, "Text.\nMore", s.Apply(in))

	// Run out of order, the marker hides the footnote.
	reordered := &Stripper{Passes: []Pass{FootnoteBlocksPass(), SuperscriptsPass()}}
	assert.Equal(t, "Text.\n       12 Note text\n\nMore", reordered.Apply(in))
}

func TestStripperCollapseBlankLines(t *testing.T) {
	cfg := defaultCleanConfig()
	cfg.CollapseBlankLines = true
	s := NewStripper(cfg)
	assert.Equal(t, "a\nb\n\nc", s.Apply("a\n\n  \n\nb\n\nc"))
}

func TestIdempotentPasses(t *testing.T) {
	passes := []Pass{
		RulesPass(),
		SuperscriptsPass(),
		RunningHeadersPass([]string{types.DefaultHeaderMarker}),
		PageNumbersPass(),
		ContinuedNumeralsPass(),
	}
	inputs := []string{
		sampleRaw,
		"12b12b text\n",
		"  7b 8b 9b\nbody\n",
		"----\n————\n42\nPHILIP SCHAFF\n¹²x\n",
	}
	for _, p := range passes {
		t.Run(p.Name, func(t *testing.T) {
			for _, in := range inputs {
				once := p.Apply(in)
				assert.Equal(t, once, p.Apply(once), "%q", in)
			}
		})
	}

	t.Run("whole stripper on its own output", func(t *testing.T) {
		s := &Stripper{Passes: passes}
		for _, in := range inputs {
			once := s.Apply(in)
			assert.Equal(t, once, s.Apply(once), "%q", in)
		}
	})
}

// A page number hidden behind a continued-numeral marker is only exposed
// once the marker is blanked, after the page-number pass has already run.
func TestStripperMarkerBeforePageNumber(t *testing.T) {
	s := &Stripper{Passes: []Pass{PageNumbersPass(), ContinuedNumeralsPass()}}
	once := s.Apply("12b 5\n")
	assert.Equal(t, "    5\n", once)
	assert.Equal(t, "\n", s.Apply(once))
}

func TestStripperClean(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultCleanConfig()
	cfg.DebugText = filepath.Join(dir, "nested", "clean.txt")
	s := NewStripper(cfg)

	var log bytes.Buffer
	got, err := s.Clean(sampleRaw, &log)
	require.NoError(t, err)
	assert.Equal(t, sampleClean, got)

	data, err := os.ReadFile(cfg.DebugText)
	require.NoError(t, err)
	assert.Equal(t, sampleClean, string(data))

	for _, name := range []string{PassRules, PassFootnoteContinuations} {
		assert.Contains(t, log.String(), name)
	}
	assert.Contains(t, log.String(), "cleaned text written to")
}

func TestStripperCleanWithoutDebugPath(t *testing.T) {
	cfg := defaultCleanConfig()
	cfg.DebugText = ""
	s := NewStripper(cfg)

	var log bytes.Buffer
	got, err := s.Clean(sampleRaw, &log)
	require.NoError(t, err)
	assert.Equal(t, sampleClean, got)
	assert.NotContains(t, log.String(), "cleaned text written to")
}

func TestStripperCleanDebugWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := &Stripper{DebugPath: filepath.Join(blocker, "clean.txt")}
	var log bytes.Buffer
	_, err := s.Clean("text", &log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), blocker)
}
