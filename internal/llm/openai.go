package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = openai.ChatModelGPT4o

// OpenAI adapts the chat completions API to the Provider interface.
type OpenAI struct {
	client  openai.Client
	model   string
	haveKey bool
}

func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAI {
	apiKey = strings.TrimSpace(apiKey)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	p := &OpenAI{model: strings.TrimSpace(model), haveKey: apiKey != ""}
	if p.haveKey {
		p.client = openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(timeout),
		)
	}
	return p
}

func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	if !p.haveKey {
		return "", ErrNotConfigured
	}

	model := p.model
	if model == "" {
		model = defaultOpenAIModel
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return out, nil
}
