package lsp

import (
	"sort"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/pkglens/pkglens/internal/manifest"
)

// lineMap converts between byte offsets into a document snapshot and LSP
// positions, which count lines and UTF-16 code units.
type lineMap struct {
	text   string
	starts []int // byte offset of each line start
}

func newLineMap(text string) *lineMap {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineMap{text: text, starts: starts}
}

// Position converts a byte offset to an LSP position. Offsets outside the
// text are clamped.
func (lm *lineMap) Position(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(lm.text) {
		offset = len(lm.text)
	}
	line := sort.Search(len(lm.starts), func(i int) bool { return lm.starts[i] > offset }) - 1

	col := uint32(0)
	for _, r := range lm.text[lm.starts[line]:offset] {
		col += utf16Len(r)
	}
	return protocol.Position{Line: uint32(line), Character: col}
}

// Offset converts an LSP position to a byte offset, clamping past-end
// positions to the end of the line.
func (lm *lineMap) Offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(lm.starts) {
		return len(lm.text)
	}
	end := len(lm.text)
	if line+1 < len(lm.starts) {
		end = lm.starts[line+1] - 1 // stop before the newline
	}

	offset := lm.starts[line]
	remaining := pos.Character
	for offset < end && remaining > 0 {
		r, size := utf8.DecodeRuneInString(lm.text[offset:end])
		units := utf16Len(r)
		if units > remaining {
			break
		}
		remaining -= units
		offset += size
	}
	return offset
}

// Range converts a span to an LSP range against this snapshot.
func (lm *lineMap) Range(span manifest.Span) protocol.Range {
	return protocol.Range{
		Start: lm.Position(span.Start),
		End:   lm.Position(span.End),
	}
}

func utf16Len(r rune) uint32 {
	if r > 0xFFFF {
		return 2 // surrogate pair
	}
	return 1
}
