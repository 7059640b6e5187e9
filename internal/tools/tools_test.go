package tools

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubTool struct {
	name       string
	required   []string
	output     any
	err        error
	lastParams map[string]any
	calls      int
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub" }
func (s *stubTool) Required() []string  { return s.required }

func (s *stubTool) Execute(_ context.Context, params map[string]any) (any, error) {
	s.calls++
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

func TestRegistryExecute(t *testing.T) {
	stub := &stubTool{name: "echo", required: []string{"keywords"}, output: "done"}

	registry := NewRegistry(zap.NewNop())
	registry.Register(stub)

	params := map[string]any{"keywords": []any{"go"}}

	result, err := registry.Execute(context.Background(), "echo", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success || result.Error != "" {
		t.Fatalf("unexpected envelope: %+v", result)
	}

	if result.Data != "done" {
		t.Fatalf("unexpected data payload: %v", result.Data)
	}

	if result.Metadata.Tool != "echo" || result.Metadata.Timestamp == "" {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}

	if stub.calls != 1 || stub.lastParams["keywords"] == nil {
		t.Fatalf("expected tool to receive parameters, calls=%d", stub.calls)
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	registry := NewRegistry(zap.NewNop())

	result, err := registry.Execute(context.Background(), "nope", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success {
		t.Fatal("expected failed envelope for unknown tool")
	}

	if result.Error != "Tool 'nope' not found" {
		t.Fatalf("unexpected envelope error: %q", result.Error)
	}

	if result.Metadata.Tool != "nope" {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}
}

func TestRegistryMissingRequiredParameter(t *testing.T) {
	stub := &stubTool{name: "echo", required: []string{"keywords"}}

	registry := NewRegistry(zap.NewNop())
	registry.Register(stub)

	result, err := registry.Execute(context.Background(), "echo", map[string]any{"location": "Berlin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success || result.Error != "Invalid parameters for tool 'echo'" {
		t.Fatalf("unexpected envelope: %+v", result)
	}

	if stub.calls != 0 {
		t.Fatalf("expected tool not to run, calls=%d", stub.calls)
	}
}

func TestRegistryToolFailureLandsInEnvelope(t *testing.T) {
	stub := &stubTool{name: "echo", err: errors.New("upstream down")}

	registry := NewRegistry(zap.NewNop())
	registry.Register(stub)

	result, err := registry.Execute(context.Background(), "echo", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success || result.Error != "upstream down" {
		t.Fatalf("unexpected envelope: %+v", result)
	}
}

func TestRegistryCanceledContext(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	registry.Register(&stubTool{name: "echo"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := registry.Execute(ctx, "echo", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestRegistryNames(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	registry.Register(&stubTool{name: "beta"})
	registry.Register(&stubTool{name: "alpha"})
	registry.Register(&stubTool{name: "beta"})

	names := registry.Names()
	if len(names) != 2 || names[0] != "beta" || names[1] != "alpha" {
		t.Fatalf("unexpected names: %v", names)
	}
}
