package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewStreamServer exposes every tool registered on router through an MCP SDK server.
// Calls go through Router.Invoke, so validation and error kinds match the HTTP API.
func NewStreamServer(router *Router) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)

	for _, info := range router.List() {
		server.AddTool(&sdkmcp.Tool{
			Name:        info.Name,
			Description: info.Description,
			InputSchema: info.Parameters,
		}, streamHandler(router, info.Name))
	}

	return server
}

func newStreamHandler(router *Router) http.Handler {
	server := NewStreamServer(router)
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
}

func streamHandler(router *Router, name string) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		result, err := router.Invoke(ctx, name, args)
		if err != nil {
			return errorResult(PublicMessage(err)), nil
		}

		raw, err := json.Marshal(result)
		if err != nil {
			return errorResult("Internal server error"), nil
		}

		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{
				&sdkmcp.TextContent{Text: string(raw)},
			},
			StructuredContent: json.RawMessage(raw),
		}, nil
	}
}

// errorResult returns a text-only ToolResult flagged as an error
func errorResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}
