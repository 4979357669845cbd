package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStoreSetAndGet(t *testing.T) {
	store := newDocumentStore()

	doc := store.Set("file:///Project.toml", "name = \"Foo\"\n", 1)
	require.NotNil(t, doc.Manifest)
	assert.NoError(t, doc.ParseErr)
	assert.Equal(t, "Foo", doc.Manifest.Name)

	got, ok := store.Get("file:///Project.toml")
	require.True(t, ok)
	assert.Same(t, doc, got)
}

func TestDocumentStoreParseFailure(t *testing.T) {
	store := newDocumentStore()

	// A malformed snapshot is cached with its error; annotation queries
	// will see no manifest rather than partial results.
	doc := store.Set("file:///Project.toml", "name = \"broken\n", 1)
	assert.Nil(t, doc.Manifest)
	assert.Error(t, doc.ParseErr)
}

func TestDocumentStoreSupersede(t *testing.T) {
	store := newDocumentStore()

	store.Set("file:///Project.toml", "name = \"One\"\n", 1)
	store.Set("file:///Project.toml", "name = \"Two\"\n", 2)

	doc, ok := store.Get("file:///Project.toml")
	require.True(t, ok)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, "Two", doc.Manifest.Name)
}

func TestDocumentStoreClose(t *testing.T) {
	store := newDocumentStore()

	store.Set("file:///Project.toml", "name = \"Foo\"\n", 1)
	store.Close("file:///Project.toml")

	_, ok := store.Get("file:///Project.toml")
	assert.False(t, ok)
}

func TestDependencyArgs(t *testing.T) {
	name, identifier, err := dependencyArgs([]interface{}{"Bar", "xyz"})
	require.NoError(t, err)
	assert.Equal(t, "Bar", name)
	assert.Equal(t, "xyz", identifier)

	_, _, err = dependencyArgs([]interface{}{"Bar"})
	assert.Error(t, err)

	_, _, err = dependencyArgs([]interface{}{1, 2})
	assert.Error(t, err)
}
