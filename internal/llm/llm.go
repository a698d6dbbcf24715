package llm

import (
	"context"
)

// Message roles.
const (
	SystemRole    = "system"
	UserRole      = "user"
	AssistantRole = "assistant"
)

// Message is a single entry of a text generation request.
type Message struct {
	Role    string
	Content string
}

// CreateTextGenerationRequest holds a text generation request.
type CreateTextGenerationRequest struct {
	Model       string
	Messages    []*Message
	MaxTokens   int
	Temperature float32
}

// Client is the interface to a conversational text-generation service.
// The caller sends text and gets text back; any service failure surfaces
// as an ordinary error.
type Client interface {
	CreateTextGeneration(context.Context, *CreateTextGenerationRequest) (string, error)
}
