// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package oracle

import (
	"context"
	"fmt"
	"net/rpc"

	hashiplug "github.com/hashicorp/go-plugin"
)

// oraclePlugin implements go-plugin's net/rpc Plugin interface for a
// Scorer. The oracle boundary is a single scalar-in-scalar-out call,
// for which go-plugin's net/rpc transport is enough and, unlike its
// gRPC transport, needs no generated protobuf stubs.
type oraclePlugin struct {
	// Impl is set only when this process is serving a Scorer (the
	// plugin binary side); the host process that dispenses this
	// plugin never sets it and only ever exercises Client.
	Impl Scorer
}

// Server returns the net/rpc-dispatchable server wrapping Impl, called
// when this process is the plugin binary being served.
func (p *oraclePlugin) Server(*hashiplug.MuxBroker) (interface{}, error) {
	return &rpcServer{impl: p.Impl}, nil
}

// Client returns a Scorer that dispatches calls over c, called on the
// host side once the plugin process is connected.
func (p *oraclePlugin) Client(_ *hashiplug.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &rpcClient{client: c}, nil
}

// scoreRequest is the net/rpc argument shape for the single exported
// RPC method, gob-encoded transparently by net/rpc.
type scoreRequest struct {
	Sym  string
	Args []string
}

// rpcServer adapts a local Scorer to net/rpc's exported-method calling
// convention, run inside the plugin binary process.
type rpcServer struct {
	impl Scorer
}

// ScorePredicate is exported so net/rpc can dispatch "Plugin.ScorePredicate".
func (s *rpcServer) ScorePredicate(req scoreRequest, resp *float64) error {
	weight, err := s.impl.ScorePredicate(context.Background(), req.Sym, req.Args)
	if err != nil {
		return err
	}
	*resp = weight
	return nil
}

// rpcClient adapts an *rpc.Client into the Scorer interface, run inside
// the host process.
type rpcClient struct {
	client *rpc.Client
}

var _ Scorer = (*rpcClient)(nil)

// ScorePredicate dispatches to the plugin process. ctx cancellation is
// honored on a best-effort basis: net/rpc itself has no cancellation
// hook, so a canceled context only stops this call from waiting on a
// response that's already in flight at the plugin.
func (c *rpcClient) ScorePredicate(ctx context.Context, sym string, args []string) (float64, error) {
	type result struct {
		weight float64
		err    error
	}
	done := make(chan result, 1)
	go func() {
		var weight float64
		err := c.client.Call("Plugin.ScorePredicate", scoreRequest{Sym: sym, Args: args}, &weight)
		done <- result{weight: weight, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("oracle: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return 0, fmt.Errorf("oracle: score predicate %s: %w", sym, r.err)
		}
		return r.weight, nil
	}
}
