package tools

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Tool executes one named operation against an external system.
type Tool interface {
	Name() string
	Description() string
	// Required lists the parameter keys that must be present.
	Required() []string
	Execute(ctx context.Context, params map[string]any) (any, error)
}

// Result is the uniform envelope every tool execution returns. Tool-level
// failures are reported inside the envelope, not as errors.
type Result struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data,omitempty"`
	Error    string   `json:"error,omitempty"`
	Metadata Metadata `json:"metadata"`
}

// Metadata identifies which tool produced a result and when.
type Metadata struct {
	Tool      string `json:"tool"`
	Timestamp string `json:"timestamp"`
}

// Registry dispatches tool executions by name.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool. Registering the same name again replaces the tool.
func (r *Registry) Register(tool Tool) {
	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Names lists registered tools in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Execute validates the parameters and runs the named tool. Unknown tools,
// missing parameters and tool failures all land in a failed envelope; the
// error return fires only for context cancellation.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tool, ok := r.tools[name]
	if !ok {
		return failed(name, fmt.Sprintf("Tool '%s' not found", name)), nil
	}

	for _, key := range tool.Required() {
		if _, present := params[key]; !present {
			return failed(name, fmt.Sprintf("Invalid parameters for tool '%s'", name)), nil
		}
	}

	r.logger.Debug("executing tool",
		zap.String("tool", name),
		zap.Int("parameters", len(params)),
	)

	data, err := tool.Execute(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Error("tool execution failed",
			zap.String("tool", name),
			zap.Error(err),
		)
		return failed(name, err.Error()), nil
	}

	return &Result{
		Success:  true,
		Data:     data,
		Metadata: metadata(name),
	}, nil
}

func failed(name, message string) *Result {
	return &Result{
		Success:  false,
		Error:    message,
		Metadata: metadata(name),
	}
}

func metadata(name string) Metadata {
	return Metadata{
		Tool:      name,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
