package manifest

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// header is a bracketed section line noted during scanning. Unknown section
// names still bound the body of the section before them, so all headers are
// kept here even though only recognized kinds become FieldLocations.
type header struct {
	name string
	span Span
}

// scanner walks the raw document once and records a span for every element
// it recognizes. It is deliberately tolerant: lines it cannot shape (arrays,
// multi-line strings, bare values) are skipped rather than rejected, since
// Parse has already validated the document through the decoder.
type scanner struct {
	src     string
	pos     int
	top     bool        // still above the first section header
	section SectionKind // current section, valid when known is true
	known   bool        // current section is a recognized kind

	locations []FieldLocation
	headers   []header
}

// scan locates every field, section header, and entry in the text and
// computes section body spans. The body of a section is the half-open
// interval from the end of its header token to the start of the next header
// token, or end of text.
func scan(text string) ([]FieldLocation, map[SectionKind]Span) {
	s := &scanner{src: text, top: true}
	for s.pos < len(s.src) {
		s.scanLine()
	}

	bodies := make(map[SectionKind]Span)
	for i, h := range s.headers {
		kind, ok := sectionKind(h.name)
		if !ok {
			continue
		}
		end := len(text)
		if i+1 < len(s.headers) {
			end = s.headers[i+1].span.Start
		}
		bodies[kind] = Span{Start: h.span.End, End: end}
	}
	return s.locations, bodies
}

// scanLine consumes exactly one line, including its terminator.
func (s *scanner) scanLine() {
	start := s.pos
	end := start
	for end < len(s.src) && s.src[end] != '\n' {
		end++
	}
	next := end
	if next < len(s.src) {
		next++ // consume the newline
	}
	defer func() { s.pos = next }()

	i := start
	for i < end && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i >= end || s.src[i] == '#' {
		return
	}

	if s.src[i] == '[' {
		s.scanHeader(i, end)
		return
	}
	s.scanKeyValue(i, end)
}

// scanHeader records a [section] header token. The span covers the brackets.
func (s *scanner) scanHeader(i, end int) {
	closing := strings.IndexByte(s.src[i:end], ']')
	if closing < 0 {
		return
	}
	closing += i
	name := strings.TrimSpace(s.src[i+1 : closing])
	span := Span{Start: i, End: closing + 1}
	s.headers = append(s.headers, header{name: name, span: span})

	kind, ok := sectionKind(name)
	s.top, s.section, s.known = false, kind, ok
	if ok {
		s.locations = append(s.locations, FieldLocation{
			Kind:    KindSectionHeader,
			Key:     name,
			Section: kind,
			Span:    span,
		})
	}
}

// scanKeyValue records a single-line `key = "value"` pair. The span runs
// from the first byte of the key to the closing quote of the value, so the
// spanned text is the literal occurrence callers can assert against.
func (s *scanner) scanKeyValue(i, end int) {
	keyStart := i
	key, i, ok := s.scanKey(i, end)
	if !ok {
		return
	}
	for i < end && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i >= end || s.src[i] != '=' {
		return
	}
	i++
	for i < end && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	value, valueEnd, ok := s.scanString(i, end)
	if !ok {
		return
	}

	loc := FieldLocation{
		Kind:  KindTopLevelField,
		Key:   key,
		Value: value,
		Span:  Span{Start: keyStart, End: valueEnd},
	}
	if !s.top {
		if !s.known {
			return // entry of an unrecognized section
		}
		loc.Kind = KindDependencyEntry
		loc.Section = s.section
	}
	s.locations = append(s.locations, loc)
}

// scanKey reads a bare or quoted key starting at i and returns its decoded
// form and the position just past it.
func (s *scanner) scanKey(i, end int) (string, int, bool) {
	if s.src[i] == '"' || s.src[i] == '\'' {
		key, after, ok := s.scanString(i, end)
		return key, after, ok
	}
	start := i
	for i < end && isBareKeyByte(s.src[i]) {
		i++
	}
	if i == start {
		return "", i, false
	}
	return s.src[start:i], i, true
}

// scanString reads a quoted string starting at i. It returns the decoded
// value and the offset just past the closing quote. Basic (double-quoted)
// strings honor backslash escapes; literal (single-quoted) strings do not.
func (s *scanner) scanString(i, end int) (string, int, bool) {
	if i >= end {
		return "", i, false
	}
	quote := s.src[i]
	if quote != '"' && quote != '\'' {
		return "", i, false
	}
	i++
	var b strings.Builder
	for i < end {
		c := s.src[i]
		if c == quote {
			return b.String(), i + 1, true
		}
		if quote == '"' && c == '\\' && i+1 < end {
			decoded, width := decodeEscape(s.src[i+1 : end])
			b.WriteString(decoded)
			i += 1 + width
			continue
		}
		b.WriteByte(c)
		i++
	}
	return "", i, false // unterminated
}

// decodeEscape decodes the escape sequence following a backslash and
// returns the decoded text plus the number of input bytes consumed.
func decodeEscape(rest string) (string, int) {
	switch rest[0] {
	case '"':
		return `"`, 1
	case '\\':
		return `\`, 1
	case 'n':
		return "\n", 1
	case 't':
		return "\t", 1
	case 'r':
		return "\r", 1
	case 'b':
		return "\b", 1
	case 'f':
		return "\f", 1
	case 'u', 'U':
		width := 4
		if rest[0] == 'U' {
			width = 8
		}
		if len(rest) > width {
			if v, err := strconv.ParseUint(rest[1:1+width], 16, 32); err == nil && utf8.ValidRune(rune(v)) {
				return string(rune(v)), 1 + width
			}
		}
	}
	// Unknown escape: keep it verbatim so the decoded value still reflects
	// the source bytes.
	return "\\" + rest[:1], 1
}

func isBareKeyByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

func sectionKind(name string) (SectionKind, bool) {
	switch SectionKind(name) {
	case SectionDeps, SectionExtras, SectionCompat, SectionTargets:
		return SectionKind(name), true
	}
	return "", false
}
