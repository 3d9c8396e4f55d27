/*-------------------------------------------------------------------------
 *
 * runtime_test.go
 *    Tests for the agent execution loop
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/agent/runtime_test.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vinovator/shopsmart-retail-agent/internal/llm"
)

/* fakeChatClient replays a scripted sequence of model responses */
type fakeChatClient struct {
	responses []*llm.Response
	calls     int
	messages  [][]llm.Message
}

func (f *fakeChatClient) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (*llm.Response, error) {
	f.messages = append(f.messages, messages)
	if f.calls >= len(f.responses) {
		return nil, fmt.Errorf("unexpected call %d", f.calls)
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

/* fakeExecutor records tool calls and returns canned results */
type fakeExecutor struct {
	results map[string]string
	err     error
	calls   []string
	gotCtx  context.Context
}

func (f *fakeExecutor) Specs() []llm.ToolSpec { return nil }

func (f *fakeExecutor) Execute(ctx context.Context, name string, arguments string) (string, error) {
	f.calls = append(f.calls, name)
	f.gotCtx = ctx
	if f.err != nil {
		return "", f.err
	}
	return f.results[name], nil
}

/* TestExecuteDirectAnswer tests a turn with no tool calls */
func TestExecuteDirectAnswer(t *testing.T) {
	client := &fakeChatClient{responses: []*llm.Response{
		{Content: "Hello! How can I help?", Usage: llm.Usage{TotalTokens: 12}},
	}}
	runtime := NewRuntime(client, &fakeExecutor{}, 6)

	state, err := runtime.Execute(context.Background(), uuid.New(), "hi")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if state.FinalAnswer != "Hello! How can I help?" {
		t.Errorf("FinalAnswer = %q", state.FinalAnswer)
	}
	if state.ToolRounds != 0 {
		t.Errorf("ToolRounds = %d, want 0", state.ToolRounds)
	}
	if state.TokensUsed != 12 {
		t.Errorf("TokensUsed = %d, want 12", state.TokensUsed)
	}
}

/* TestExecuteToolRound tests one tool round followed by an answer */
func TestExecuteToolRound(t *testing.T) {
	customerID := uuid.New()
	client := &fakeChatClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: llm.FunctionCall{Name: "get_customer_profile", Arguments: "{}"},
		}}},
		{Content: "You are a VIP customer, Alice."},
	}}
	executor := &fakeExecutor{results: map[string]string{
		"get_customer_profile": "Customer Name: Alice, VIP Status: true",
	}}
	runtime := NewRuntime(client, executor, 6)

	state, err := runtime.Execute(context.Background(), customerID, "am I a VIP?")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if state.FinalAnswer != "You are a VIP customer, Alice." {
		t.Errorf("FinalAnswer = %q", state.FinalAnswer)
	}
	if state.ToolRounds != 1 {
		t.Errorf("ToolRounds = %d, want 1", state.ToolRounds)
	}
	if len(executor.calls) != 1 || executor.calls[0] != "get_customer_profile" {
		t.Errorf("executor calls = %v", executor.calls)
	}

	/* Customer ID must flow into the tool context */
	gotID, ok := GetCustomerIDFromContext(executor.gotCtx)
	if !ok || gotID != customerID {
		t.Errorf("customer ID in tool context = %v, %v", gotID, ok)
	}

	/* Second call must include the tool result message */
	second := client.messages[1]
	last := second[len(second)-1]
	if last.Role != llm.RoleTool || last.ToolCallID != "call_1" {
		t.Errorf("last message = %+v, want tool result for call_1", last)
	}
}

/* TestExecuteUnknownTool tests that executor errors abort the turn */
func TestExecuteUnknownTool(t *testing.T) {
	client := &fakeChatClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: llm.FunctionCall{Name: "no_such_tool", Arguments: "{}"},
		}}},
	}}
	executor := &fakeExecutor{err: fmt.Errorf("tool execution failed: tool_name='no_such_tool', handler_not_found=true")}
	runtime := NewRuntime(client, executor, 6)

	_, err := runtime.Execute(context.Background(), uuid.New(), "help")
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if !strings.Contains(err.Error(), "no_such_tool") {
		t.Errorf("error = %v, want tool name included", err)
	}
}

/* TestExecuteRoundLimit tests the bounded tool-round loop */
func TestExecuteRoundLimit(t *testing.T) {
	toolResp := &llm.Response{ToolCalls: []llm.ToolCall{{
		ID:       "call_n",
		Type:     "function",
		Function: llm.FunctionCall{Name: "list_recent_orders", Arguments: "{}"},
	}}}
	/* Model keeps asking for tools; after the limit the runtime asks
	 * for a final answer without tools */
	client := &fakeChatClient{responses: []*llm.Response{
		toolResp, toolResp, toolResp,
		{Content: "Here is what I found."},
	}}
	executor := &fakeExecutor{results: map[string]string{"list_recent_orders": "No recent orders found"}}
	runtime := NewRuntime(client, executor, 2)

	state, err := runtime.Execute(context.Background(), uuid.New(), "orders?")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if state.FinalAnswer != "Here is what I found." {
		t.Errorf("FinalAnswer = %q", state.FinalAnswer)
	}
	if state.ToolRounds != 2 {
		t.Errorf("ToolRounds = %d, want 2", state.ToolRounds)
	}
}

/* TestExecuteEmptyMessage tests input validation */
func TestExecuteEmptyMessage(t *testing.T) {
	runtime := NewRuntime(&fakeChatClient{}, &fakeExecutor{}, 6)
	if _, err := runtime.Execute(context.Background(), uuid.New(), ""); err == nil {
		t.Error("expected error for empty message")
	}
}
