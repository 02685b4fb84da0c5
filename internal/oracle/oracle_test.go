// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package oracle

import (
	"context"
	"net"
	"net/rpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScorer is a local Scorer used to drive the net/rpc server side
// without spawning a real plugin process.
type fakeScorer struct {
	weight float64
	err    error
}

func (f *fakeScorer) ScorePredicate(_ context.Context, sym string, args []string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.weight, nil
}

// dialRPCClient wires an rpcServer wrapping impl to an rpcClient over an
// in-memory net.Pipe, exercising the same gob-over-net/rpc path a real
// plugin connection uses without needing an external binary.
func dialRPCClient(t *testing.T, impl Scorer) *rpcClient {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("Plugin", &rpcServer{impl: impl}))

	clientConn, serverConn := net.Pipe()
	go server.ServeConn(serverConn)
	t.Cleanup(func() { clientConn.Close() })

	return &rpcClient{client: rpc.NewClient(clientConn)}
}

func TestRPCClientScorePredicateRoundTrips(t *testing.T) {
	c := dialRPCClient(t, &fakeScorer{weight: 0.87})

	weight, err := c.ScorePredicate(context.Background(), "broda", []string{"mi", "ta"})
	require.NoError(t, err)
	assert.InDelta(t, 0.87, weight, 1e-9)
}

func TestRPCClientPropagatesServerError(t *testing.T) {
	c := dialRPCClient(t, &fakeScorer{err: assertError{"model unavailable"}})

	_, err := c.ScorePredicate(context.Background(), "broda", nil)
	assert.ErrorContains(t, err, "model unavailable")
}

func TestRPCClientHonorsContextCancellation(t *testing.T) {
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("Plugin", &rpcServer{impl: &blockingScorer{}}))
	clientConn, serverConn := net.Pipe()
	go server.ServeConn(serverConn)
	t.Cleanup(func() {
		clientConn.Close()
		serverConn.Close()
	})

	c := &rpcClient{client: rpc.NewClient(clientConn)}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ScorePredicate(ctx, "broda", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// blockingScorer sleeps past any client-side deadline before returning,
// to exercise ScorePredicate's context cancellation path without
// leaking a goroutine blocked forever: net/rpc never propagates the
// client's context to the server handler, so the handler here finishes
// on its own schedule regardless of what the client gave up waiting on.
type blockingScorer struct{}

func (blockingScorer) ScorePredicate(context.Context, string, []string) (float64, error) {
	time.Sleep(100 * time.Millisecond)
	return 0, nil
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
