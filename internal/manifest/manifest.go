// Package manifest parses package-manifest documents and answers span
// queries against the original source text. Parsing is position-preserving:
// every field, section header, and dependency entry keeps the byte range it
// was read from, so lookups never re-scan the document.
package manifest

// SectionKind identifies one of the named dependency tables a manifest
// may contain.
type SectionKind string

const (
	// SectionDeps holds direct dependencies (name -> identifier).
	SectionDeps SectionKind = "deps"
	// SectionExtras holds optional dependencies.
	SectionExtras SectionKind = "extras"
	// SectionCompat holds version-constraint declarations.
	SectionCompat SectionKind = "compat"
	// SectionTargets holds target-specific dependency groups.
	SectionTargets SectionKind = "targets"
)

// Sections lists all recognized section kinds in the order the annotation
// dispatcher resolves them.
var Sections = []SectionKind{SectionDeps, SectionExtras, SectionCompat, SectionTargets}

// DependencyTable maps a dependency name to its identifier string. The
// identifier is opaque to this package: a UUID, a version constraint, or an
// extra name depending on the section.
type DependencyTable map[string]string

// Span is a half-open byte interval [Start, End) into one specific document
// snapshot. A Span is only meaningful against the exact text it was computed
// from; applying it to a mutated document is undefined.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the byte offset falls inside the span.
// Containment is inclusive of Start and exclusive of End.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// FieldKind categorizes what a FieldLocation points at.
type FieldKind int

const (
	// KindTopLevelField is a top-level key/value pair such as name or uuid.
	KindTopLevelField FieldKind = iota
	// KindSectionHeader is a bracketed section header such as [deps].
	KindSectionHeader
	// KindDependencyEntry is a key/value pair inside a section.
	KindDependencyEntry
)

// String returns the string representation of the field kind.
func (k FieldKind) String() string {
	switch k {
	case KindTopLevelField:
		return "field"
	case KindSectionHeader:
		return "section"
	case KindDependencyEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// FieldLocation ties a semantic element of the manifest to the span it
// occupies in the source text. For fields and entries the span covers the
// full `key = "value"` occurrence; for section headers it covers the
// bracketed header token.
type FieldLocation struct {
	Kind    FieldKind
	Key     string
	Value   string
	Section SectionKind // set for section headers and entries
	Span    Span
}

// Manifest is the parsed representation of one manifest document snapshot.
// It is immutable once produced by Parse; re-parsing supersedes it wholesale.
type Manifest struct {
	Name     string
	UUID     string
	Version  string
	Sections map[SectionKind]DependencyTable

	text      string
	locations []FieldLocation
	bodies    map[SectionKind]Span
}

// Text returns the source snapshot the manifest was parsed from.
func (m *Manifest) Text() string {
	return m.text
}

// Locations returns every located element in source-text order.
func (m *Manifest) Locations() []FieldLocation {
	out := make([]FieldLocation, len(m.locations))
	copy(out, m.locations)
	return out
}

// Table returns the dependency table for a section kind. Absent sections
// yield a nil table, not an error.
func (m *Manifest) Table(kind SectionKind) DependencyTable {
	return m.Sections[kind]
}
