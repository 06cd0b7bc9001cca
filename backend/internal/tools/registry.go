package tools

import (
	"context"
	"encoding/json"

	"resume-chatbot/backend/internal/adapter"
	apperrors "resume-chatbot/backend/pkg/errors"
)

// Executor runs one tool call. It receives the raw JSON argument
// payload from the model and returns text to fold back into the
// conversation.
type Executor func(ctx context.Context, args json.RawMessage) (string, error)

// Registry is the static catalogue of tool descriptors and their
// executors, built once at startup and never mutated afterwards.
type Registry struct {
	descriptors []adapter.Tool
	executors   map[string]Executor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
	}
}

// Register adds a tool and its executor. Registration order is the
// order Describe reports.
func (r *Registry) Register(descriptor adapter.Tool, executor Executor) {
	r.descriptors = append(r.descriptors, descriptor)
	r.executors[descriptor.Function.Name] = executor
}

// Describe returns the descriptors exposed verbatim to the model
// provider as the available-tools list
func (r *Registry) Describe() []adapter.Tool {
	return r.descriptors
}

// Resolve returns the executor for a tool name, or ErrUnknownTool
// when the model asked for something that was never registered
func (r *Registry) Resolve(name string) (Executor, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, apperrors.NewUnknownToolError(name)
	}
	return executor, nil
}
