/*-------------------------------------------------------------------------
 *
 * prompt.go
 *    System prompt construction
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/agent/prompt.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"fmt"
	"time"
)

/* PromptBuilder assembles the system prompt for the support persona */
type PromptBuilder struct {
	now func() time.Time
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{now: time.Now}
}

/* Build returns the system prompt. The current date is included so the
 * model can reason about delivery windows and order recency. */
func (b *PromptBuilder) Build() string {
	return fmt.Sprintf(
		"You are a helpful customer support assistant from 'ShopSmart'. "+
			"You have access to the customer's order history and product catalog. "+
			"Always be polite and professional. "+
			"Use the provided tools to lookup information before answering the customer. "+
			"Today's date is %s",
		b.now().Format("2006-01-02"))
}
