package shared

import "time"

// TokenUsage captures token counts reported by a model call.
type TokenUsage struct {
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// AgentMeta describes one external structuring call for metrics.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}
