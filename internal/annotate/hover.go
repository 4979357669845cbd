package annotate

import (
	"fmt"
	"strings"

	"github.com/pkglens/pkglens/internal/manifest"
	"github.com/pkglens/pkglens/internal/registry"
)

// fieldLabels describe the recognized top-level fields.
var fieldLabels = map[string]string{
	"name":    "Package name",
	"uuid":    "Package UUID",
	"version": "Package version",
}

// sectionLabels describe the section headers.
var sectionLabels = map[manifest.SectionKind]string{
	manifest.SectionDeps:    "Direct dependencies",
	manifest.SectionExtras:  "Optional dependencies",
	manifest.SectionCompat:  "Version compatibility constraints",
	manifest.SectionTargets: "Target-specific dependency groups",
}

// fieldMarkdown builds the tooltip for a top-level field.
func fieldMarkdown(key, value string) string {
	var b strings.Builder
	b.WriteString("```toml\n")
	fmt.Fprintf(&b, "%s = %q\n", key, value)
	b.WriteString("```\n")
	if label, ok := fieldLabels[key]; ok {
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}

// sectionMarkdown builds the tooltip for a section header.
func sectionMarkdown(kind manifest.SectionKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "```toml\n[%s]\n```\n", kind)
	if label, ok := sectionLabels[kind]; ok {
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}

// entryHintMarkdown builds the static tooltip shown while the registry
// service is not ready.
func entryHintMarkdown(loc manifest.FieldLocation, hint string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "```toml\n%s = %q\n```\n\n", loc.Key, loc.Value)
	b.WriteString(hint)
	b.WriteString("\n")
	return b.String()
}

// entryMetadataMarkdown builds the live tooltip for a dependency entry. All
// three metadata fields are rendered verbatim.
func entryMetadataMarkdown(loc manifest.FieldLocation, meta *registry.DependencyMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "```toml\n%s = %q\n```\n\n", loc.Key, loc.Value)
	fmt.Fprintf(&b, "Latest version: **%s**\n\n", meta.LatestVersion)
	fmt.Fprintf(&b, "Registry: %s\n\n", meta.Registry)
	fmt.Fprintf(&b, "[%s](%s)\n", meta.URL, meta.URL)
	return b.String()
}
