package manifest

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// document mirrors the manifest dialect for typed decoding.
type document struct {
	Name    string            `toml:"name"`
	UUID    string            `toml:"uuid"`
	Version string            `toml:"version"`
	Deps    map[string]string `toml:"deps"`
	Extras  map[string]string `toml:"extras"`
	Compat  map[string]string `toml:"compat"`
	Targets map[string]string `toml:"targets"`
}

// Parse turns raw manifest text into a Manifest. It fails with *ParseError
// when the text is not well-formed (including duplicate tables or duplicate
// keys, which the decoder rejects) or when the required name field is
// missing. Absent optional sections are simply left out of Sections.
//
// Parse also records the source span of every field, section header, and
// entry it saw, so the Locate methods can answer without re-scanning.
func Parse(text string) (*Manifest, error) {
	var doc document
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, asParseError(err)
	}
	if doc.Name == "" {
		return nil, &ParseError{Message: `missing required field "name"`}
	}

	m := &Manifest{
		Name:     doc.Name,
		UUID:     doc.UUID,
		Version:  doc.Version,
		Sections: make(map[SectionKind]DependencyTable),
		text:     text,
	}
	for kind, table := range map[SectionKind]map[string]string{
		SectionDeps:    doc.Deps,
		SectionExtras:  doc.Extras,
		SectionCompat:  doc.Compat,
		SectionTargets: doc.Targets,
	} {
		if table != nil {
			m.Sections[kind] = table
		}
	}

	m.locations, m.bodies = scan(text)
	return m, nil
}

// asParseError converts a decoder error into a *ParseError, extracting the
// row/column when the decoder provides one.
func asParseError(err error) error {
	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		return &ParseError{Line: row, Column: col, Message: de.Error()}
	}
	return &ParseError{Message: err.Error()}
}
