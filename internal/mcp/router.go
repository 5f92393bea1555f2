package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
)

// Tool represents an MCP tool implementation.
type Tool interface {
	Name() string
	Description() string
	// Parameters is a JSON Schema of type object describing the accepted parameters
	Parameters() *jsonschema.Schema
	Execute(ctx context.Context, params json.RawMessage) (any, error)
}

// Recorder observes finished invocations.
type Recorder interface {
	ObserveInvocation(tool string, kind string, elapsed time.Duration)
}

type entry struct {
	tool     Tool
	resolved *jsonschema.Resolved
}

// Router stores and dispatches MCP tools.
type Router struct {
	mu     sync.RWMutex
	tools  map[string]entry
	logger *logging.Logger
	rec    Recorder
}

// RouterOption configures Router
type RouterOption func(*Router)

func WithLogger(logger *logging.Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithRecorder(rec Recorder) RouterOption {
	return func(r *Router) {
		r.rec = rec
	}
}

// NewRouter creates an empty router instance.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		tools:  make(map[string]entry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool to the router registry.
func (r *Router) Register(tool Tool) error {
	name := tool.Name()
	schema := tool.Parameters()
	if schema == nil || schema.Type != "object" {
		return fmt.Errorf("tool %q: parameters schema must be of type object", name)
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("tool %q: resolve schema: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[name]; ok {
		return fmt.Errorf("tool %q already registered", name)
	}

	r.tools[name] = entry{tool: tool, resolved: resolved}
	return nil
}

// List exposes tool descriptors sorted by name.
func (r *Router) List() []ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ToolInfo, 0, len(r.tools))
	for _, e := range r.tools {
		out = append(out, ToolInfo{
			Name:        e.tool.Name(),
			Description: e.tool.Description(),
			Parameters:  e.tool.Parameters(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Invoke validates params against the tool schema and executes it.
// Every returned error carries an *Error.
func (r *Router) Invoke(ctx context.Context, name string, params json.RawMessage) (result any, err error) {
	start := time.Now()
	defer func() {
		r.observe(ctx, name, start, err)
	}()

	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, UnknownTool(name)
	}

	params, err = normalizeParams(params)
	if err != nil {
		return nil, err
	}
	if err := validate(e, params); err != nil {
		return nil, err
	}

	result, err = r.execute(ctx, e.tool, params)
	if err != nil {
		var classified *Error
		if !errors.As(err, &classified) {
			err = Internal(err)
		}
		return nil, err
	}
	return result, nil
}

func (r *Router) execute(ctx context.Context, tool Tool, params json.RawMessage) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool panicked",
				"tool", tool.Name(),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			result = nil
			err = Internal(fmt.Errorf("panic: %v", rec))
		}
	}()

	return tool.Execute(ctx, params)
}

func (r *Router) observe(ctx context.Context, name string, start time.Time, err error) {
	elapsed := time.Since(start)
	kind := "ok"
	if err != nil {
		kind = string(KindOf(err))
	}

	if r.rec != nil {
		r.rec.ObserveInvocation(name, kind, elapsed)
	}

	fields := []any{
		"tool", name,
		"request_id", logging.RequestID(ctx),
		"outcome", kind,
		"duration_ms", float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil && KindOf(err).HTTPStatus() >= 500 {
		r.logger.Error("tool invocation failed", append(fields, "err", err)...)
		return
	}
	r.logger.Info("tool invoked", fields...)
}

func normalizeParams(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}"), nil
	}
	return trimmed, nil
}

func validate(e entry, params json.RawMessage) error {
	var args map[string]any
	if err := json.Unmarshal(params, &args); err != nil {
		return InvalidParameter("parameters must be a JSON object")
	}

	for _, field := range e.tool.Parameters().Required {
		v, ok := args[field]
		if !ok || v == nil || v == "" {
			return MissingParameter(field)
		}
	}

	if err := e.resolved.Validate(args); err != nil {
		msg := "invalid parameters"
		if m := propertyPath.FindStringSubmatch(err.Error()); m != nil {
			msg = "invalid value for " + m[1]
		}
		return &Error{Kind: KindInvalidParameter, Message: msg, Err: err}
	}
	return nil
}

// propertyPath picks the top-level property out of a schema validation error
var propertyPath = regexp.MustCompile(`/properties/([^/:\s]+)`)
