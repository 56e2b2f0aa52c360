// Package ai narrates analytics output through an OpenAI-compatible
// API. It is an optional enrichment: the rule-based insights never
// depend on it, and a nil *Client skips narration entirely.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

// New builds a client. baseURL may be empty for the default endpoint.
func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

const systemPrompt = `You are a personal finance assistant. You receive a list of ` +
	`computed observations about one user's spending for a period. Rewrite them ` +
	`as a single short, friendly paragraph. Do not invent numbers; only use the ` +
	`figures provided.`

// Narrate turns the rule-based insight strings into one paragraph.
// Calling on a nil client returns an empty narrative.
func (c *Client) Narrate(ctx context.Context, insights []string) (string, error) {
	if c == nil || len(insights) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: strings.Join(insights, "\n")},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
