// Package completion turns a transcript into one generated reply through an
// OpenAI-compatible chat completion endpoint.
package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/iamwavecut/telegram-persona-bot/internal/history"
)

const (
	Temperature = 1.1
	MaxTokens   = 512
)

type Client struct {
	api   *openai.Client
	model string
}

func New(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Complete sends the whole transcript and returns the text of the first
// choice. Failures are returned as *Error.
func (c *Client) Complete(ctx context.Context, turns []history.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
			Name:    turn.Name,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
		N:           1,
		Stream:      false,
	})
	if err != nil {
		return "", Classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindMalformed, Err: ErrNoChoices}
	}
	return resp.Choices[0].Message.Content, nil
}

var ErrNoChoices = errors.New("completion response has no choices")
