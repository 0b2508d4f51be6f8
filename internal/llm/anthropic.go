package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = anthropic.ModelClaude3_7SonnetLatest
	defaultAnthropicMaxTokens = 2048
)

// Anthropic adapts the messages API to the Provider interface.
type Anthropic struct {
	client  anthropic.Client
	model   string
	haveKey bool
}

func NewAnthropic(apiKey, model string, timeout time.Duration) *Anthropic {
	apiKey = strings.TrimSpace(apiKey)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	p := &Anthropic{model: strings.TrimSpace(model), haveKey: apiKey != ""}
	if p.haveKey {
		p.client = anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(timeout),
		)
	}
	return p
}

func (p *Anthropic) Name() string { return "anthropic" }

func (p *Anthropic) Generate(ctx context.Context, req Request) (string, error) {
	if !p.haveKey {
		return "", ErrNotConfigured
	}

	model := p.model
	if model == "" {
		model = string(defaultAnthropicModel)
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: generate: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return out, nil
}
