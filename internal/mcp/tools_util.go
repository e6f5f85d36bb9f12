// tools_util.go provides helper functions bridging MCP requests to the
// action router.
//
// Design: the MCP layer does no parameter validation of its own. The
// raw argument map is handed to the router, whose typed getters produce
// the same missing-parameter and type errors for every transport. This
// keeps the CLI and MCP surfaces byte-for-byte consistent in their
// error envelopes, which matters because LLMs learn the error shapes.

package mcp

import (
	"encoding/json"

	"github.com/jpl-au/writerd/internal/action"
	"github.com/mark3labs/mcp-go/mcp"
)

// getParams extracts the argument map from an MCP request as router
// parameters. The "action" key is stripped because it selects the
// handler rather than parameterising it.
func getParams(req mcp.CallToolRequest) action.Params {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return action.Params{}
	}
	p := make(action.Params, len(args))
	for k, v := range args {
		if k == "action" {
			continue
		}
		p[k] = v
	}
	return p
}

// jsonResult serialises the router envelope as pretty-printed JSON and
// wraps it in an MCP text result for return to the LLM client.
//
// Pretty-printing costs a few tokens but LLMs parse structured output
// more reliably when it is formatted for readability, and it makes the
// envelopes legible when inspecting logs.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
