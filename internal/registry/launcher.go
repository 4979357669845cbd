package registry

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/google/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

// CommandLauncher starts the metadata service as a subprocess and speaks
// JSON-RPC over its stdio. EnsureSessionStarted is idempotent: the process
// is spawned once and the same connection is handed back afterwards.
type CommandLauncher struct {
	command string
	args    []string
	logger  *zap.Logger

	mu        sync.Mutex
	conn      jsonrpc2.Conn
	sessionID string
}

// NewCommandLauncher creates a launcher for the given service command.
func NewCommandLauncher(command string, args []string, logger *zap.Logger) *CommandLauncher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandLauncher{command: command, args: args, logger: logger}
}

// EnsureSessionStarted spawns the service if it is not running and returns
// the JSON-RPC connection to it.
func (l *CommandLauncher) EnsureSessionStarted(ctx context.Context) (jsonrpc2.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn != nil {
		return l.conn, nil
	}
	if l.command == "" {
		return nil, fmt.Errorf("no metadata service command configured")
	}

	cmd := exec.Command(l.command, l.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("start metadata service: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("start metadata service: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start metadata service %q: %w", l.command, err)
	}

	// One id per service process; request logs carry their own ids.
	l.sessionID = uuid.NewString()
	l.logger.Info("metadata service started",
		zap.String("session_id", l.sessionID),
		zap.String("command", l.command),
		zap.Int("pid", cmd.Process.Pid),
	)

	stream := jsonrpc2.NewStream(pipeConn{reader: stdout, writer: stdin})
	conn := jsonrpc2.NewConn(stream)
	// The connection outlives the bootstrap call, so it is not tied to ctx.
	conn.Go(context.Background(), func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	})

	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Warn("metadata service exited",
				zap.String("session_id", l.sessionID),
				zap.Error(err),
			)
		}
	}()

	l.conn = conn
	return conn, nil
}

// pipeConn joins the subprocess stdout/stdin pipes into one ReadWriteCloser
// for the JSON-RPC stream.
type pipeConn struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (p pipeConn) Read(b []byte) (int, error) {
	return p.reader.Read(b)
}

func (p pipeConn) Write(b []byte) (int, error) {
	return p.writer.Write(b)
}

func (p pipeConn) Close() error {
	if err := p.writer.Close(); err != nil {
		return err
	}
	return p.reader.Close()
}
