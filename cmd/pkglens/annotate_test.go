package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkglens/pkglens/internal/manifest"
)

const reportManifest = `name = "Example"
version = "1.2.3"

[deps]
Zebra = "1111-uuid"
Alpha = "2222-uuid"
Mid = "3333-uuid"

[compat]
Alpha = "^2.0"
`

// disableColor makes report output byte-stable for assertions.
func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestWriteReportEntryOrder(t *testing.T) {
	disableColor(t)

	m, err := manifest.Parse(reportManifest)
	require.NoError(t, err)

	var buf bytes.Buffer
	writeReport(&buf, m)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Example v1.2.3"))
	assert.Contains(t, out, "[deps]")
	assert.Contains(t, out, "[compat]")

	// Entries are reported in document order, not map order.
	zebra := strings.Index(out, "Zebra")
	alpha := strings.Index(out, "Alpha")
	mid := strings.Index(out, "Mid")
	require.NotEqual(t, -1, zebra)
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, mid)
	assert.Less(t, zebra, alpha)
	assert.Less(t, alpha, mid)

	// The compat section repeats Alpha after the deps entries.
	compat := strings.Index(out, "[compat]")
	assert.Less(t, mid, compat)
	assert.Contains(t, out[compat:], "Alpha")
}

func TestAnnotateCommand(t *testing.T) {
	disableColor(t)

	path := filepath.Join(t.TempDir(), "Project.toml")
	require.NoError(t, os.WriteFile(path, []byte(reportManifest), 0o644))

	var buf bytes.Buffer
	annotateCmd.SetOut(&buf)
	t.Cleanup(func() { annotateCmd.SetOut(nil) })

	require.NoError(t, annotateCmd.RunE(annotateCmd, []string{path}))

	out := buf.String()
	assert.Contains(t, out, `Zebra = "1111-uuid"`)
	assert.Less(t, strings.Index(out, "Zebra"), strings.Index(out, "Alpha"))
}

func TestAnnotateCommandMalformed(t *testing.T) {
	disableColor(t)

	path := filepath.Join(t.TempDir(), "Broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"Broken\n"), 0o644))

	err := annotateCmd.RunE(annotateCmd, []string{path})
	require.Error(t, err)

	var perr *manifest.ParseError
	assert.ErrorAs(t, err, &perr)
}
