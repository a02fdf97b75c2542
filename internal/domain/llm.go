// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package domain

import "context"

// LLM chat roles.
const (
	LLMRoleSystem    = "system"
	LLMRoleUser      = "user"
	LLMRoleAssistant = "assistant"
)

// LLMMessage is one entry in an ordered chat-completion conversation.
type LLMMessage struct {
	Role    string
	Content string
}

// LLMClient issues chat completions against the LLM provider. Implementations
// return the first output message's text content; an empty response is
// reported as empty content, not an error, so callers decide its severity.
type LLMClient interface {
	ChatCompletion(ctx context.Context, model string, messages []LLMMessage) (string, error)
}
