package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolInfo describes an MCP tool and its parameter schema
type ToolInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"` // JSON schema of type object
}

// ListToolsResponse is the body of GET /mcp/v1/tools
type ListToolsResponse struct {
	Tools []ToolInfo `json:"tools"`
}

// InvokeRequest is the body of POST /mcp/v1/invoke
type InvokeRequest struct {
	Name       string          `json:"name"`
	Parameters json.RawMessage `json:"parameters,omitempty"` // forwarded to the tool unchanged
}

// ErrorResponse is returned for every failed invocation
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"` // always "error"
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// successBody flattens a tool payload into a JSON object and tags it with "status": "success"
func successBody(payload any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}

	body := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("tool result is not a JSON object: %w", err)
	}
	if body == nil {
		body = make(map[string]json.RawMessage)
	}

	body["status"] = json.RawMessage(`"` + statusSuccess + `"`)
	return body, nil
}
