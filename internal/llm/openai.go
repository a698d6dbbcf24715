package llm

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// OpenAIClient for openai.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient instantiates and returns a new client.
func NewOpenAIClient(apiKey, apiHost string) *OpenAIClient {
	openAIConfig := openai.DefaultConfig(apiKey)
	openAIConfig.BaseURL = apiHost
	client := openai.NewClientWithConfig(openAIConfig)
	return &OpenAIClient{client: client}
}

// Get the underlying openai client.
func (c *OpenAIClient) Get() *openai.Client {
	return c.client
}

// CreateTextGeneration sends a chat completion request and returns the generated text.
func (c *OpenAIClient) CreateTextGeneration(ctx context.Context, request *CreateTextGenerationRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(request.Messages))
	for _, message := range request.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: message.Role, Content: message.Content})
	}
	openAIRequest := openai.ChatCompletionRequest{
		Model:       request.Model,
		Messages:    messages,
		MaxTokens:   request.MaxTokens,
		Temperature: request.Temperature,
	}
	response, err := c.client.CreateChatCompletion(ctx, openAIRequest)
	if err != nil {
		return "", errors.Wrap(err, "creating chat completion")
	}
	if len(response.Choices) == 0 {
		return "", errors.Errorf("ChatCompletionResponse returned no choice: %+v", response)
	}
	return response.Choices[0].Message.Content, nil
}
