package ai

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultModel = string(anthropic.ModelClaudeSonnet4_0)

// TextCompleter is the external text-completion capability. The gateway
// treats it as a black box: one prompt in, one text reply out.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnthropicCompleter implements TextCompleter on the Anthropic Messages API.
type AnthropicCompleter struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicCompleter builds a completer with its configuration fixed at
// construction time. Model may be empty to use the default.
func NewAnthropicCompleter(apiKey, model string) *AnthropicCompleter {
	if model == "" {
		model = defaultModel
	}
	return &AnthropicCompleter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// Complete submits the prompt as a single user message and concatenates
// the text blocks of the reply.
func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
