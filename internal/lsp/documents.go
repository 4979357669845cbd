package lsp

import (
	"sync"

	"github.com/pkglens/pkglens/internal/manifest"
)

// document is one cached manifest snapshot. When parsing failed, Manifest
// is nil and ParseErr holds the failure; annotation queries then return
// nothing rather than partial results.
type document struct {
	URI      string
	Text     string
	Version  int
	Manifest *manifest.Manifest
	ParseErr error
	Lines    *lineMap
}

// documentStore caches open documents keyed by URI.
type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[string]*document)}
}

// Set parses a document snapshot and caches it, superseding any previous
// snapshot for the URI.
func (s *documentStore) Set(uri, text string, version int) *document {
	doc := &document{
		URI:     uri,
		Text:    text,
		Version: version,
		Lines:   newLineMap(text),
	}
	m, err := manifest.Parse(text)
	if err != nil {
		doc.ParseErr = err
	} else {
		doc.Manifest = m
	}

	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Get retrieves a cached document.
func (s *documentStore) Get(uri string) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Close removes a document from the cache.
func (s *documentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}
