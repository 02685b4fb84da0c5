// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package oracle

import (
	"fmt"
	"os/exec"

	hashiplug "github.com/hashicorp/go-plugin"
)

// Host launches and supervises an external oracle plugin process,
// exposing it as a Scorer for the lifetime of the Host.
type Host struct {
	client *hashiplug.Client
	scorer Scorer
}

// NewHost launches the executable at execPath as an oracle plugin and
// dispenses its Scorer. The returned Host owns the plugin process:
// call Close to terminate it.
func NewHost(execPath string) (*Host, error) {
	client := hashiplug.NewClient(&hashiplug.ClientConfig{
		HandshakeConfig:  HandshakeConfig,
		Plugins:          PluginMap,
		Cmd:              exec.Command(execPath), // #nosec G204 -- execPath is an operator-configured oracle binary path, not user input
		AllowedProtocols: []hashiplug.Protocol{hashiplug.ProtocolNetRPC},
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("oracle: connect to plugin %s: %w", execPath, err)
	}

	raw, err := rpcClient.Dispense(pluginKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("oracle: dispense plugin %s: %w", execPath, err)
	}

	scorer, ok := raw.(Scorer)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("oracle: plugin %s does not implement Scorer", execPath)
	}

	return &Host{client: client, scorer: scorer}, nil
}

// Scorer returns the Scorer dispensed from the plugin process.
func (h *Host) Scorer() Scorer { return h.scorer }

// Close terminates the plugin process.
func (h *Host) Close() {
	h.client.Kill()
}
