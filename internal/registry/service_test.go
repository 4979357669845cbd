package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
)

func TestServiceFetchMetadataDefaultRegistry(t *testing.T) {
	conn := fakeServiceConn(t, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		return reply(ctx, DependencyMetadata{
			LatestVersion: "1.0.0",
			URL:           "http://x",
		}, nil)
	})
	svc := NewService(NewClient(&staticLauncher{conn: conn}, nil), "General", nil)

	meta, err := svc.FetchMetadata(context.Background(), "Bar", "xyz")
	require.NoError(t, err)
	assert.Equal(t, "General", meta.Registry)
}

func TestServiceFetchMetadataKeepsReportedRegistry(t *testing.T) {
	conn := fakeServiceConn(t, echoHandler(t))
	svc := NewService(NewClient(&staticLauncher{conn: conn}, nil), "Fallback", nil)

	meta, err := svc.FetchMetadata(context.Background(), "Bar", "xyz")
	require.NoError(t, err)
	assert.Equal(t, "General", meta.Registry)
}
