package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

// MethodPkgVersions is the RPC method for per-dependency version lookups.
const MethodPkgVersions = "lens/pkgVersions"

// DependencyMetadata is the live version information the metadata service
// reports for one dependency. It is fetched per request and never cached;
// repeated queries re-issue the call.
type DependencyMetadata struct {
	LatestVersion string `json:"latestVersion"`
	URL           string `json:"url"`
	Registry      string `json:"registry"`
}

// pkgVersionsParams is the wire shape of a lens/pkgVersions request.
type pkgVersionsParams struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// Launcher starts the external metadata service session on demand. It must
// be idempotent: repeated calls return the same live connection. Process
// lifecycle belongs to the launcher, not to this client.
type Launcher interface {
	EnsureSessionStarted(ctx context.Context) (jsonrpc2.Conn, error)
}

// Client issues metadata queries over a lazily established JSON-RPC
// connection. There is no retry and no caching: a failed call surfaces the
// error to the caller and leaves everything else untouched. Abandoning an
// in-flight call is safe; cancel the context and drop the result.
type Client struct {
	launcher Launcher
	logger   *zap.Logger

	mu   sync.Mutex
	conn jsonrpc2.Conn
}

// NewClient creates a metadata query client on top of a launcher.
func NewClient(launcher Launcher, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{launcher: launcher, logger: logger}
}

// Connect makes sure a live service session exists, starting one if absent.
func (c *Client) Connect(ctx context.Context) error {
	_, err := c.session(ctx)
	return err
}

// FetchMetadata fetches live version metadata for one dependency. The
// session is bootstrapped lazily before the first request.
func (c *Client) FetchMetadata(ctx context.Context, name, identifier string) (*DependencyMetadata, error) {
	conn, err := c.session(ctx)
	if err != nil {
		return nil, fmt.Errorf("metadata service unavailable: %w", err)
	}

	reqID := uuid.NewString()
	c.logger.Debug("querying package versions",
		zap.String("request_id", reqID),
		zap.String("name", name),
		zap.String("identifier", identifier),
	)

	var meta DependencyMetadata
	if _, err := conn.Call(ctx, MethodPkgVersions, pkgVersionsParams{Name: name, Identifier: identifier}, &meta); err != nil {
		c.logger.Debug("package versions query failed",
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch metadata for %q: %w", name, err)
	}
	return &meta, nil
}

// session returns the live connection, asking the launcher for one when
// none exists yet.
func (c *Client) session(ctx context.Context) (jsonrpc2.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn, nil
	}
	conn, err := c.launcher.EnsureSessionStarted(ctx)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return conn, nil
}
