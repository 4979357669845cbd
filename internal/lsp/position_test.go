package lsp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/pkglens/pkglens/internal/manifest"
)

func TestLineMapASCII(t *testing.T) {
	text := "name = \"Foo\"\n[deps]\nBar = \"xyz\"\n"
	lm := newLineMap(text)

	tests := []struct {
		name   string
		offset int
		pos    protocol.Position
	}{
		{"start of document", 0, protocol.Position{Line: 0, Character: 0}},
		{"mid first line", 5, protocol.Position{Line: 0, Character: 5}},
		{"start of second line", 13, protocol.Position{Line: 1, Character: 0}},
		{"Bar", strings.Index(text, "Bar"), protocol.Position{Line: 2, Character: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pos, lm.Position(tt.offset))
			assert.Equal(t, tt.offset, lm.Offset(tt.pos))
		})
	}
}

func TestLineMapMultiByte(t *testing.T) {
	// The package name holds a 4-byte rune that LSP counts as two UTF-16
	// code units.
	text := "name = \"\U0001F600pkg\"\n"
	lm := newLineMap(text)

	offset := strings.Index(text, "pkg")
	pos := lm.Position(offset)
	assert.Equal(t, uint32(0), pos.Line)
	assert.Equal(t, uint32(10), pos.Character) // 8 before the quote content, then 2 for the emoji

	assert.Equal(t, offset, lm.Offset(pos))
}

func TestLineMapClamping(t *testing.T) {
	text := "name = \"Foo\"\n"
	lm := newLineMap(text)

	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, lm.Position(-1))
	assert.Equal(t, len(text), lm.Offset(protocol.Position{Line: 99, Character: 0}))

	// Past-end character clamps to the end of the line, before the newline.
	offset := lm.Offset(protocol.Position{Line: 0, Character: 999})
	assert.Equal(t, len(text)-1, offset)
}

func TestLineMapRange(t *testing.T) {
	text := "name = \"Foo\"\n[deps]\nBar = \"xyz\"\n"
	lm := newLineMap(text)

	start := strings.Index(text, "Bar")
	span := manifest.Span{Start: start, End: start + len(`Bar = "xyz"`)}

	r := lm.Range(span)
	require.Equal(t, uint32(2), r.Start.Line)
	assert.Equal(t, uint32(0), r.Start.Character)
	assert.Equal(t, uint32(2), r.End.Line)
	assert.Equal(t, uint32(len(`Bar = "xyz"`)), r.End.Character)
}
