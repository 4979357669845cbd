// Package annotate maps semantic elements of a parsed manifest to
// interactive annotation descriptors: per-entry action lenses for the whole
// document, and a single tooltip descriptor for a cursor position.
package annotate

import (
	"context"

	"go.uber.org/zap"

	"github.com/pkglens/pkglens/internal/manifest"
	"github.com/pkglens/pkglens/internal/registry"
)

// Action names the commands the host surface can execute.
type Action string

const (
	// ActionUpdateDependency updates one dependency. Fire and forget.
	ActionUpdateDependency Action = "pkglens.updateDependency"
	// ActionQueryRegistries triggers the registry bootstrap.
	ActionQueryRegistries Action = "pkglens.queryRegistries"
)

// Annotation is an actionable range in the document.
type Annotation struct {
	Span      manifest.Span
	Title     string
	Action    Action
	Arguments []string
}

// Descriptor is the tooltip content for one resolved position.
type Descriptor struct {
	Span     manifest.Span
	Kind     manifest.FieldKind
	Markdown string
}

// Dispatcher resolves annotation queries against a parsed manifest. The
// registry service gates whether dependency tooltips carry live metadata.
type Dispatcher struct {
	registry *registry.Service
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher backed by the given registry service.
func NewDispatcher(svc *registry.Service, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{registry: svc, logger: logger}
}

// AnnotationsForDocument enumerates the actionable dependency entries of
// the deps section: exactly one update annotation per entry, in source-text
// order.
func (d *Dispatcher) AnnotationsForDocument(m *manifest.Manifest) []Annotation {
	if m == nil {
		return nil
	}

	var out []Annotation
	for _, loc := range m.EntryLocations(manifest.SectionDeps) {
		out = append(out, Annotation{
			Span:      loc.Span,
			Title:     "Update",
			Action:    ActionUpdateDependency,
			Arguments: []string{loc.Key, loc.Value},
		})
	}
	return out
}

// entrySections is the fixed resolution order for per-entry tooltips.
var entrySections = []manifest.SectionKind{
	manifest.SectionDeps,
	manifest.SectionExtras,
	manifest.SectionCompat,
}

// AnnotationAt resolves a single byte offset to at most one descriptor.
// Resolution order: uuid, name, version fields, then section headers, then
// entries of deps, extras, compat. The first span containing the offset
// wins; containment is inclusive of start, exclusive of end. A nil
// descriptor with a nil error means no annotation is available there.
func (d *Dispatcher) AnnotationAt(ctx context.Context, m *manifest.Manifest, offset int) (*Descriptor, error) {
	if m == nil {
		return nil, nil
	}

	for _, f := range []struct{ key, value string }{
		{"uuid", m.UUID},
		{"name", m.Name},
		{"version", m.Version},
	} {
		if f.value == "" {
			continue
		}
		if span, ok := m.LocateField(f.key, f.value); ok && span.Contains(offset) {
			return &Descriptor{
				Span:     span,
				Kind:     manifest.KindTopLevelField,
				Markdown: fieldMarkdown(f.key, f.value),
			}, nil
		}
	}

	for _, kind := range manifest.Sections {
		if span, ok := m.LocateSectionHeader(kind); ok && span.Contains(offset) {
			return &Descriptor{
				Span:     span,
				Kind:     manifest.KindSectionHeader,
				Markdown: sectionMarkdown(kind),
			}, nil
		}
	}

	for _, kind := range entrySections {
		for _, loc := range m.EntryLocations(kind) {
			if !loc.Span.Contains(offset) {
				continue
			}
			md, err := d.entryMarkdown(ctx, loc)
			if err != nil {
				return nil, err
			}
			return &Descriptor{
				Span:     loc.Span,
				Kind:     manifest.KindDependencyEntry,
				Markdown: md,
			}, nil
		}
	}

	return nil, nil
}

// entryMarkdown builds the tooltip body for a dependency entry, gated on
// registry readiness: a static hint while the service is not ready, one
// live query per access once it is.
func (d *Dispatcher) entryMarkdown(ctx context.Context, loc manifest.FieldLocation) (string, error) {
	switch d.registry.State() {
	case registry.Uninitialized:
		return entryHintMarkdown(loc, "Run **Query registries** to enable live version lookup."), nil
	case registry.Loading:
		return entryHintMarkdown(loc, "_Loading registry metadata..._"), nil
	}

	meta, err := d.registry.FetchMetadata(ctx, loc.Key, loc.Value)
	if err != nil {
		d.logger.Debug("metadata fetch failed",
			zap.String("dependency", loc.Key),
			zap.Error(err),
		)
		return "", err
	}
	return entryMetadataMarkdown(loc, meta), nil
}
