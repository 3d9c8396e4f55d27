/*-------------------------------------------------------------------------
 *
 * registry.go
 *    Tool registration and execution
 *
 * The registry holds the support tools exposed to the model. Each
 * tool declares a JSON Schema for its arguments; the registry decodes
 * and validates model-supplied arguments before dispatch and records
 * execution metrics.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/registry.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vinovator/shopsmart-retail-agent/internal/llm"
	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
)

const defaultToolTimeout = 30 * time.Second

/* Tool is one callable support operation */
type Tool interface {
	Name() string
	Description() string
	Schema() map[string]interface{}
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

/* Registry manages tool registration and execution */
type Registry struct {
	handlers map[string]Tool
	timeout  time.Duration
	mu       sync.RWMutex
}

/* NewRegistry creates an empty tool registry */
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Tool),
		timeout:  defaultToolTimeout,
	}
}

/* Register adds a tool to the registry */
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[tool.Name()] = tool
}

/* Specs returns the tool schemas to advertise to the model, in stable
 * name order */
func (r *Registry) Specs() []llm.ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]llm.ToolSpec, 0, len(names))
	for _, name := range names {
		tool := r.handlers[name]
		params, err := json.Marshal(tool.Schema())
		if err != nil {
			continue
		}
		specs = append(specs, llm.ToolSpec{
			Type: "function",
			Function: llm.FunctionSpec{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  params,
			},
		})
	}
	return specs
}

/* Execute decodes the raw JSON arguments, validates them against the
 * tool's schema, and runs the tool under a per-call timeout */
func (r *Registry) Execute(ctx context.Context, name string, arguments string) (string, error) {
	r.mu.RLock()
	tool, exists := r.handlers[name]
	available := make([]string, 0, len(r.handlers))
	if !exists {
		for k := range r.handlers {
			available = append(available, k)
		}
	}
	r.mu.RUnlock()

	if !exists {
		sort.Strings(available)
		return "", fmt.Errorf("tool execution failed: tool_name='%s', handler_not_found=true, available_handlers=[%v]",
			name, available)
	}

	args := map[string]interface{}{}
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("tool execution failed: tool_name='%s', malformed_arguments=true, error=%w", name, err)
		}
	}

	if err := ValidateArgs(args, tool.Schema()); err != nil {
		argKeys := make([]string, 0, len(args))
		for k := range args {
			argKeys = append(argKeys, k)
		}
		return "", fmt.Errorf("tool validation failed: tool_name='%s', args_count=%d, arg_keys=[%v], validation_error='%v'",
			name, len(args), argKeys, err)
	}

	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	execCtx = metrics.WithToolNameLogContext(execCtx, name)

	start := time.Now()
	result, err := tool.Execute(execCtx, args)
	if err != nil {
		metrics.RecordToolExecution(name, "error", time.Since(start))
		return "", fmt.Errorf("tool execution failed: tool_name='%s', error=%w", name, err)
	}
	metrics.RecordToolExecution(name, "success", time.Since(start))

	metrics.DebugWithContext(execCtx, "tool executed", map[string]interface{}{
		"tool_name":     name,
		"result_length": len(result),
	})
	return result, nil
}
