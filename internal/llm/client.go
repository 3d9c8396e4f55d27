/*-------------------------------------------------------------------------
 *
 * client.go
 *    OpenAI-compatible chat completions client
 *
 * Speaks the chat completions wire format with tool calling. The
 * client is transport only: it sends a message history plus tool
 * schemas and returns either assistant text or a set of tool calls.
 * Transient failures (429 and 5xx) are retried with capped exponential
 * backoff, honoring Retry-After when the server provides one.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/llm/client.go
 *
 *-------------------------------------------------------------------------
 */

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
)

/* ErrUnavailable is returned when the model endpoint cannot be reached
 * or keeps failing after retries */
var ErrUnavailable = errors.New("llm service unavailable")

/* Role constants for chat messages */
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

/* Message is one entry in the chat history */
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

/* ToolCall is a model-requested tool invocation */
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

/* FunctionCall carries the tool name and raw JSON arguments */
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

/* ToolSpec describes a callable tool to the model */
type ToolSpec struct {
	Type     string       `json:"type"`
	Function FunctionSpec `json:"function"`
}

/* FunctionSpec is the function portion of a tool spec */
type FunctionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

/* Usage reports token consumption for one completion */
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

/* Response is the decoded result of one completion call */
type Response struct {
	Content   string
	ToolCalls []ToolCall
	Usage     Usage
}

/* Config configures the chat completions client */
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

/* Client is an OpenAI-compatible chat completions client */
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	client     *http.Client
	maxRetries int
}

func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: t},
		maxRetries: 3,
	}, nil
}

/* Model returns the configured model name */
func (c *Client) Model() string { return c.model }

type chatRequest struct {
	Model    string     `json:"model"`
	Messages []Message  `json:"messages"`
	Tools    []ToolSpec `json:"tools,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

/* Chat sends the message history and tool schemas to the model and
 * returns the assistant's reply */
func (c *Client) Chat(ctx context.Context, messages []Message, tools []ToolSpec) (*Response, error) {
	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	data, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: error=%w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to build chat request: error=%w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < c.maxRetries {
				sleepWithContext(ctx, retryDelay(attempt))
				continue
			}
			break
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, perr := strconv.Atoi(ra); perr == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("chat completions failed: status='%s'", resp.Status)
			if attempt < c.maxRetries {
				sleepWithContext(ctx, delay)
				continue
			}
			break
		}

		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			_ = resp.Body.Close()
			return nil, fmt.Errorf("chat completions failed: status='%s', body='%s'", resp.Status, string(body))
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries {
				sleepWithContext(ctx, retryDelay(attempt))
				continue
			}
			break
		}

		var out chatResponse
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, fmt.Errorf("failed to decode chat response: error=%w", err)
		}
		if len(out.Choices) == 0 {
			return nil, fmt.Errorf("%w: empty choices in chat response", ErrUnavailable)
		}

		msg := out.Choices[0].Message
		metrics.RecordLLMCall(c.model, "success", out.Usage.PromptTokens, out.Usage.CompletionTokens)
		return &Response{
			Content:   msg.Content,
			ToolCalls: msg.ToolCalls,
			Usage:     out.Usage,
		}, nil
	}

	metrics.RecordLLMCall(c.model, "error", 0, 0)
	return nil, fmt.Errorf("%w: error=%v", ErrUnavailable, lastErr)
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
