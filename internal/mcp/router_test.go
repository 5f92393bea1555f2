package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

type fakeTool struct {
	name   string
	schema *jsonschema.Schema
	exec   func(ctx context.Context, params json.RawMessage) (any, error)
}

func (f *fakeTool) Name() string                   { return f.name }
func (f *fakeTool) Description() string            { return "fake " + f.name }
func (f *fakeTool) Parameters() *jsonschema.Schema { return f.schema }
func (f *fakeTool) Execute(ctx context.Context, params json.RawMessage) (any, error) {
	return f.exec(ctx, params)
}

func echoTool(name string) *fakeTool {
	minimum := 0.0
	return &fakeTool{
		name: name,
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id":    {Type: "string"},
				"kind":  {Type: "string", Enum: []any{"a", "b"}},
				"limit": {Type: "integer", Minimum: &minimum},
			},
			Required: []string{"id"},
		},
		exec: func(_ context.Context, params json.RawMessage) (any, error) {
			return map[string]any{"params": params}, nil
		},
	}
}

type countingRecorder struct {
	outcomes []string
}

func (c *countingRecorder) ObserveInvocation(_ string, kind string, _ time.Duration) {
	c.outcomes = append(c.outcomes, kind)
}

func TestRegisterRejectsDuplicatesAndBadSchemas(t *testing.T) {
	r := NewRouter()
	if err := r.Register(echoTool("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(echoTool("echo")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}

	bad := echoTool("bad")
	bad.schema = &jsonschema.Schema{Type: "string"}
	if err := r.Register(bad); err == nil {
		t.Fatalf("expected non-object schema to be rejected")
	}
}

func TestListIsSorted(t *testing.T) {
	r := NewRouter()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(echoTool(name)); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	got := r.List()
	if len(got) != 3 || got[0].Name != "alpha" || got[2].Name != "zeta" {
		t.Fatalf("unexpected listing %+v", got)
	}
	if got[0].Parameters == nil || got[0].Parameters.Required[0] != "id" {
		t.Fatalf("descriptor lost its schema")
	}
}

func TestInvokeClassifiesFailures(t *testing.T) {
	r := NewRouter()
	_ = r.Register(echoTool("echo"))

	tests := []struct {
		name   string
		tool   string
		params string
		kind   Kind
		msg    string
	}{
		{name: "unknown tool", tool: "nope", params: `{}`, kind: KindUnknownTool, msg: "Unknown tool: nope"},
		{name: "missing required", tool: "echo", params: `{}`, kind: KindMissingParameter, msg: "id is required"},
		{name: "empty required", tool: "echo", params: `{"id": ""}`, kind: KindMissingParameter, msg: "id is required"},
		{name: "null params", tool: "echo", params: `null`, kind: KindMissingParameter, msg: "id is required"},
		{name: "not an object", tool: "echo", params: `[1,2]`, kind: KindInvalidParameter},
		{name: "wrong type", tool: "echo", params: `{"id": 5}`, kind: KindInvalidParameter, msg: "invalid value for id"},
		{name: "enum mismatch", tool: "echo", params: `{"id": "x", "kind": "c"}`, kind: KindInvalidParameter, msg: "invalid value for kind"},
		{name: "below minimum", tool: "echo", params: `{"id": "x", "limit": -1}`, kind: KindInvalidParameter, msg: "invalid value for limit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Invoke(context.Background(), tc.tool, json.RawMessage(tc.params))
			if err == nil {
				t.Fatalf("expected error")
			}
			if KindOf(err) != tc.kind {
				t.Fatalf("kind = %s, want %s (%v)", KindOf(err), tc.kind, err)
			}
			if tc.msg != "" && PublicMessage(err) != tc.msg {
				t.Fatalf("message = %q, want %q", PublicMessage(err), tc.msg)
			}
			if KindOf(err).HTTPStatus() != 400 {
				t.Fatalf("client errors must map to 400")
			}
		})
	}
}

func TestInvokeForwardsParamsUnchanged(t *testing.T) {
	r := NewRouter()
	_ = r.Register(echoTool("echo"))

	params := `{"id":"x","kind":"a","extra":true}`
	out, err := r.Invoke(context.Background(), "echo", json.RawMessage(params))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	got := out.(map[string]any)["params"].(json.RawMessage)
	if string(got) != params {
		t.Fatalf("params changed: %s", got)
	}
}

func TestInvokeRecoversPanicsAndWrapsUnclassifiedErrors(t *testing.T) {
	rec := &countingRecorder{}
	r := NewRouter(WithRecorder(rec))

	panicky := echoTool("panicky")
	panicky.exec = func(context.Context, json.RawMessage) (any, error) {
		panic("boom")
	}
	plain := echoTool("plain")
	plain.exec = func(context.Context, json.RawMessage) (any, error) {
		return nil, errors.New("db exploded")
	}
	typed := echoTool("typed")
	typed.exec = func(context.Context, json.RawMessage) (any, error) {
		return nil, NotFound("Job with ID %s not found", "x")
	}
	for _, tool := range []Tool{panicky, plain, typed} {
		_ = r.Register(tool)
	}

	params := json.RawMessage(`{"id":"x"}`)

	_, err := r.Invoke(context.Background(), "panicky", params)
	if KindOf(err) != KindInternal {
		t.Fatalf("panic not converted to internal: %v", err)
	}

	_, err = r.Invoke(context.Background(), "plain", params)
	if KindOf(err) != KindInternal || PublicMessage(err) != "Internal server error" {
		t.Fatalf("plain error not converted to internal: %v", err)
	}

	_, err = r.Invoke(context.Background(), "typed", params)
	if KindOf(err) != KindNotFound || KindOf(err).HTTPStatus() != 404 {
		t.Fatalf("typed error not passed through: %v", err)
	}

	want := []string{"internal", "internal", "not_found"}
	if len(rec.outcomes) != len(want) {
		t.Fatalf("recorded %v", rec.outcomes)
	}
	for i := range want {
		if rec.outcomes[i] != want[i] {
			t.Fatalf("recorded %v, want %v", rec.outcomes, want)
		}
	}
}

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindUnknownTool:      400,
		KindMissingParameter: 400,
		KindInvalidParameter: 400,
		KindNotFound:         404,
		KindNotInitialized:   500,
		KindUpstream:         500,
		KindInternal:         500,
	}
	for kind, want := range cases {
		if got := kind.HTTPStatus(); got != want {
			t.Fatalf("%s -> %d, want %d", kind, got, want)
		}
	}
}
