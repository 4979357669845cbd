package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
)

func TestReadinessString(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
}

func TestTrackerTransitions(t *testing.T) {
	var tr Tracker
	assert.Equal(t, Uninitialized, tr.State())

	require.True(t, tr.Begin())
	assert.Equal(t, Loading, tr.State())

	// A second trigger while loading must not begin another bootstrap.
	assert.False(t, tr.Begin())

	tr.MarkReady()
	assert.Equal(t, Ready, tr.State())

	// Ready is terminal.
	assert.False(t, tr.Begin())
	tr.Fail()
	assert.Equal(t, Ready, tr.State())
}

func TestTrackerFailReverts(t *testing.T) {
	var tr Tracker
	require.True(t, tr.Begin())

	tr.Fail()
	assert.Equal(t, Uninitialized, tr.State())

	// The next trigger may retry.
	assert.True(t, tr.Begin())
}

// countingLauncher counts session starts and optionally fails the first
// attempts.
type countingLauncher struct {
	starts   atomic.Int32
	failures atomic.Int32
	conn     jsonrpc2.Conn
}

func (l *countingLauncher) EnsureSessionStarted(ctx context.Context) (jsonrpc2.Conn, error) {
	l.starts.Add(1)
	if l.failures.Load() > 0 {
		l.failures.Add(-1)
		return nil, errors.New("service refused to start")
	}
	return l.conn, nil
}

func TestEnsureReadySingleBootstrap(t *testing.T) {
	launcher := &countingLauncher{conn: fakeServiceConn(t, echoHandler(t))}
	svc := NewService(NewClient(launcher, nil), "General", nil)

	// Trigger concurrently; exactly one bootstrap may run.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.EnsureReady(context.Background())
		}()
	}
	wg.Wait()

	// Losers return without blocking, so only the winner may still be
	// mid-bootstrap; drive one more trigger to observe the final state.
	require.Eventually(t, func() bool { return svc.State() == Ready }, testWait, testTick)
	assert.Equal(t, int32(1), launcher.starts.Load())
}

func TestEnsureReadyFailureAllowsRetry(t *testing.T) {
	launcher := &countingLauncher{conn: fakeServiceConn(t, echoHandler(t))}
	launcher.failures.Store(1)
	svc := NewService(NewClient(launcher, nil), "General", nil)

	err := svc.EnsureReady(context.Background())
	require.Error(t, err)
	assert.Equal(t, Uninitialized, svc.State())

	// The failed bootstrap left no session behind; a later trigger retries.
	require.NoError(t, svc.EnsureReady(context.Background()))
	assert.Equal(t, Ready, svc.State())
	assert.Equal(t, int32(2), launcher.starts.Load())
}
