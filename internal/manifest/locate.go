package manifest

import "sort"

// LocateField returns the span of the top-level `key = "value"` pair.
// The boolean is false (NotFound) when no such pair was seen, or when the
// requested value does not match the one in the source; NotFound is a
// sentinel, never an error.
func (m *Manifest) LocateField(key, value string) (Span, bool) {
	for _, loc := range m.locations {
		if loc.Kind == KindTopLevelField && loc.Key == key && loc.Value == value {
			return loc.Span, true
		}
	}
	return Span{}, false
}

// LocateSectionHeader returns the span of the bracketed header token for
// the section kind.
func (m *Manifest) LocateSectionHeader(kind SectionKind) (Span, bool) {
	for _, loc := range m.locations {
		if loc.Kind == KindSectionHeader && loc.Section == kind {
			return loc.Span, true
		}
	}
	return Span{}, false
}

// LocateSectionBody returns the half-open interval between the section's
// header token and the next header token (or end of text).
func (m *Manifest) LocateSectionBody(kind SectionKind) (Span, bool) {
	span, ok := m.bodies[kind]
	return span, ok
}

// LocateEntry returns the span of the `key = "value"` pair inside the given
// section.
func (m *Manifest) LocateEntry(kind SectionKind, key, value string) (Span, bool) {
	for _, loc := range m.locations {
		if loc.Kind == KindDependencyEntry && loc.Section == kind && loc.Key == key && loc.Value == value {
			return loc.Span, true
		}
	}
	return Span{}, false
}

// EntryLocations returns the located entries of one section in source-text
// order.
func (m *Manifest) EntryLocations(kind SectionKind) []FieldLocation {
	var out []FieldLocation
	for _, loc := range m.locations {
		if loc.Kind == KindDependencyEntry && loc.Section == kind {
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Span.Start < out[j].Span.Start })
	return out
}
