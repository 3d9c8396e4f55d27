/*-------------------------------------------------------------------------
 *
 * runtime.go
 *    Agent runtime and execution engine
 *
 * Orchestrates one chat turn: builds the message history, calls the
 * model, executes any requested tools, and loops until the model
 * produces a final answer or the tool-round limit is reached.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/agent/runtime.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vinovator/shopsmart-retail-agent/internal/llm"
	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
)

const maxMessageLength = 100000

/* ChatClient is the model transport the runtime talks to */
type ChatClient interface {
	Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (*llm.Response, error)
}

/* ToolExecutor resolves and runs tools requested by the model */
type ToolExecutor interface {
	Specs() []llm.ToolSpec
	Execute(ctx context.Context, name string, arguments string) (string, error)
}

/* ExecutionState captures what happened during one chat turn */
type ExecutionState struct {
	CustomerID  uuid.UUID
	UserMessage string
	ToolRounds  int
	ToolCalls   []llm.ToolCall
	FinalAnswer string
	TokensUsed  int
}

/* Runtime drives the tool-calling conversation loop */
type Runtime struct {
	client        ChatClient
	tools         ToolExecutor
	prompt        *PromptBuilder
	maxToolRounds int
}

func NewRuntime(client ChatClient, tools ToolExecutor, maxToolRounds int) *Runtime {
	if maxToolRounds <= 0 {
		maxToolRounds = 6
	}
	return &Runtime{
		client:        client,
		tools:         tools,
		prompt:        NewPromptBuilder(),
		maxToolRounds: maxToolRounds,
	}
}

/* Execute runs one chat turn for the given customer. Conversation
 * state is request scoped: the history lives only for the duration of
 * this call. */
func (r *Runtime) Execute(ctx context.Context, customerID uuid.UUID, userMessage string) (*ExecutionState, error) {
	if userMessage == "" {
		return nil, fmt.Errorf("agent execution failed: customer_id='%s', user_message_empty=true", customerID.String())
	}
	if len(userMessage) > maxMessageLength {
		return nil, fmt.Errorf("agent execution failed: customer_id='%s', user_message_too_large=true, length=%d, max_length=%d",
			customerID.String(), len(userMessage), maxMessageLength)
	}

	state := &ExecutionState{
		CustomerID:  customerID,
		UserMessage: userMessage,
	}

	toolCtx := WithCustomerID(ctx, customerID)
	specs := r.tools.Specs()

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: r.prompt.Build()},
		{Role: llm.RoleUser, Content: userMessage},
	}

	for round := 0; ; round++ {
		resp, err := r.client.Chat(ctx, messages, specs)
		if err != nil {
			return nil, fmt.Errorf("agent execution failed at LLM call: customer_id='%s', round=%d, error=%w",
				customerID.String(), round, err)
		}
		state.TokensUsed += resp.Usage.TotalTokens

		if len(resp.ToolCalls) == 0 {
			state.FinalAnswer = resp.Content
			return state, nil
		}

		if round >= r.maxToolRounds {
			metrics.WarnWithContext(ctx, "tool round limit reached", map[string]interface{}{
				"customer_id": customerID.String(),
				"max_rounds":  r.maxToolRounds,
			})
			/* Ask the model for a final answer without offering tools */
			final, err := r.client.Chat(ctx, messages, nil)
			if err != nil {
				return nil, fmt.Errorf("agent execution failed at final LLM call: customer_id='%s', error=%w",
					customerID.String(), err)
			}
			state.TokensUsed += final.Usage.TotalTokens
			state.FinalAnswer = final.Content
			return state, nil
		}

		state.ToolRounds++
		state.ToolCalls = append(state.ToolCalls, resp.ToolCalls...)

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result, err := r.tools.Execute(toolCtx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				/* Unknown tools and malformed arguments abort the
				 * turn. Domain conditions (missing order, already
				 * refunded) come back as tool text, not errors. */
				return nil, fmt.Errorf("agent execution failed at tool execution: customer_id='%s', tool_name='%s', round=%d, error=%w",
					customerID.String(), call.Function.Name, round, err)
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}
}
